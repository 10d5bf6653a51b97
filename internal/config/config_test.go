package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"deribit-common/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".toml"), []byte(body), 0600))
	return dir
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Client.Testnet)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 3, cfg.Client.MaxRetries)
	assert.Equal(t, 1024*1024, cfg.WebSocket.MaxMessageSize)
	assert.Equal(t, "DERIBITSERVER", cfg.FIX.TargetCompID)
	assert.Equal(t, 30*time.Second, cfg.FIX.HeartbeatInterval)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.Equal(t, "https://test.deribit.com", cfg.BaseURL())
	assert.Equal(t, "https://test.deribit.com/api/v2", cfg.APIURL())
	assert.Equal(t, "wss://test.deribit.com/ws/api/v2", cfg.WSURL())
	assert.Equal(t, "test.deribit.com:9881", cfg.FIXAddress())
}

func TestLoadFromFile(t *testing.T) {
	dir := writeConfig(t, `
[client]
client_id = "abc123"
client_secret = "supersecretvalue"
testnet = false
timeout = "15s"

[websocket]
ping_interval = "20s"
pong_timeout = "5s"

[fix]
sender_comp_id = "MYDESK"
cancel_on_disconnect = true

[logging]
level = "debug"
`)
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.False(t, cfg.Client.Testnet)
	assert.True(t, cfg.HasCredentials())
	assert.Equal(t, 15*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 20*time.Second, cfg.WebSocket.PingInterval)
	assert.Equal(t, 5*time.Second, cfg.WebSocket.PongTimeout)
	assert.Equal(t, 5, cfg.WebSocket.ReconnectAttempts)
	assert.Equal(t, "MYDESK", cfg.FIX.SenderCompID)
	assert.True(t, cfg.FIX.CancelOnDisconnect)
	assert.Equal(t, "debug", cfg.Logging.Level)

	assert.Equal(t, "https://www.deribit.com/api/v2", cfg.APIURL())
	assert.Equal(t, "wss://www.deribit.com/ws/api/v2", cfg.WSURL())
	assert.Equal(t, "www.deribit.com:9881", cfg.FIXAddress())
}

func TestEnvironmentOverrides(t *testing.T) {
	dir := writeConfig(t, `
[client]
client_id = "from-file"
client_secret = "file-secret"
testnet = true
`)
	t.Setenv("DERIBIT_CLIENT_ID", "from-env")
	t.Setenv("DERIBIT_CLIENT_SECRET", "env-secret")
	t.Setenv("DERIBIT_TESTNET", "false")
	t.Setenv("DERIBIT_WEBSOCKET_RECONNECT_ATTEMPTS", "9")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Client.ClientID)
	assert.Equal(t, "env-secret", cfg.Client.ClientSecret)
	assert.False(t, cfg.Client.Testnet)
	assert.Equal(t, 9, cfg.WebSocket.ReconnectAttempts)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Client.Timeout = 0
	cfg.Client.RateLimit = 500
	cfg.WebSocket.PongTimeout = time.Minute
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	require.Error(t, err)
	problems := multierr.Errors(err)
	require.Len(t, problems, 4)

	fields := make([]string, 0, len(problems))
	for _, p := range problems {
		var valErr *errors.ValidationError
		require.True(t, errors.As(p, &valErr))
		assert.Equal(t, errors.InvalidArguments, valErr.Kind)
		fields = append(fields, valErr.Field)
	}
	assert.Equal(t, []string{"client.timeout", "client.rate_limit", "websocket.pong_timeout", "logging.level"}, fields)
}

func TestValidateRequiresCredentialPair(t *testing.T) {
	cfg := Default()
	cfg.Client.ClientID = "abc"
	cfg.Client.ClientSecret = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.False(t, cfg.HasCredentials())
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := writeConfig(t, `
[client]
timeout = "-1s"
`)
	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	assert.Equal(t, errors.CategoryValidation, errors.CategoryOf(err))

	broken := writeConfig(t, "[client\ntimeout = ")
	_, err = Load(broken)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestStringMasksSecrets(t *testing.T) {
	cfg := Default()
	cfg.Client.ClientID = "abcdefghijkl"
	cfg.Client.ClientSecret = "supersecretvalue"

	s := cfg.String()
	assert.NotContains(t, s, "supersecretvalue")
	assert.NotContains(t, s, "abcdefghijkl")
	assert.Contains(t, s, "supe********alue")
	assert.Contains(t, s, "test.deribit.com:9881")
}

func TestWriteTemplate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path, err := WriteTemplate(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "deribit.toml"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Client.Testnet)
	assert.Equal(t, Default().WebSocket, cfg.WebSocket)

	require.NoError(t, os.WriteFile(path, []byte("[client]\ntestnet = false\n"), 0600))
	again, err := WriteTemplate(dir)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[client]\ntestnet = false\n", string(data))
}
