package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Deribit client configuration

[client]
# API key pair. DERIBIT_CLIENT_ID and DERIBIT_CLIENT_SECRET override these.
client_id = ""
client_secret = ""
# Use test.deribit.com. DERIBIT_TESTNET overrides this.
testnet = true
timeout = "30s"
max_retries = 3
# Requests per second, 0 uses the exchange default
rate_limit = 0
user_agent = "deribit-common/1.0"

[websocket]
ping_interval = "30s"
pong_timeout = "10s"
reconnect_attempts = 5
reconnect_delay = "5s"
# Bytes
max_message_size = 1048576
compression = true

[http]
# 0 uses the client default
pool_size = 0
keep_alive = "30s"
http2 = true
gzip = true

[fix]
sender_comp_id = ""
target_comp_id = "DERIBITSERVER"
heartbeat_interval = "30s"
cancel_on_disconnect = false

[logging]
# trace, debug, info, warn, error, disabled
level = "info"
console = true
file = false
max_size = 100
max_backups = 7
max_age = 30
`

// WriteTemplate writes a commented deribit.toml into configDir and returns its
// path. The file holds credentials, so it is created owner-only. An existing
// file is left untouched.
func WriteTemplate(configDir string) (string, error) {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, FileName+".toml")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return path, nil
		}
		return "", fmt.Errorf("writing config template: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(configTemplate); err != nil {
		return "", fmt.Errorf("writing config template: %w", err)
	}
	return path, nil
}
