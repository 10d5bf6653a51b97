// Package config loads client configuration shared by the FIX, REST and
// WebSocket transports.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
	"deribit-common/internal/logging"
)

// FileName is the configuration file name without extension.
const FileName = "deribit"

// Config holds all client configuration.
type Config struct {
	Client    ClientConfig      `mapstructure:"client"`
	WebSocket WebSocketConfig   `mapstructure:"websocket"`
	HTTP      HTTPConfig        `mapstructure:"http"`
	FIX       FIXConfig         `mapstructure:"fix"`
	Logging   logging.LogConfig `mapstructure:"logging"`
}

// ClientConfig holds credentials and settings common to every transport.
type ClientConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Testnet      bool          `mapstructure:"testnet"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RateLimit    int           `mapstructure:"rate_limit"` // requests per second, 0 = exchange default
	UserAgent    string        `mapstructure:"user_agent"`
}

// WebSocketConfig holds WebSocket connection settings.
type WebSocketConfig struct {
	PingInterval      time.Duration `mapstructure:"ping_interval"`
	PongTimeout       time.Duration `mapstructure:"pong_timeout"`
	ReconnectAttempts int           `mapstructure:"reconnect_attempts"`
	ReconnectDelay    time.Duration `mapstructure:"reconnect_delay"`
	MaxMessageSize    int           `mapstructure:"max_message_size"` // bytes
	Compression       bool          `mapstructure:"compression"`
}

// HTTPConfig holds REST client settings.
type HTTPConfig struct {
	PoolSize  int           `mapstructure:"pool_size"` // 0 = client default
	KeepAlive time.Duration `mapstructure:"keep_alive"`
	HTTP2     bool          `mapstructure:"http2"`
	Gzip      bool          `mapstructure:"gzip"`
}

// FIXConfig holds FIX session settings.
type FIXConfig struct {
	SenderCompID       string        `mapstructure:"sender_comp_id"`
	TargetCompID       string        `mapstructure:"target_comp_id"`
	HeartbeatInterval  time.Duration `mapstructure:"heartbeat_interval"`
	CancelOnDisconnect bool          `mapstructure:"cancel_on_disconnect"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "deribit-common")
	}
	return filepath.Join(home, ".config", "deribit-common")
}

// Default returns the built-in configuration with DERIBIT_* environment
// overrides applied. It targets testnet.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// Defaults are static and always decode.
		panic(err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(FileName)
	v.SetConfigType("toml")

	v.SetDefault("client.testnet", true)
	v.SetDefault("client.timeout", 30*time.Second)
	v.SetDefault("client.max_retries", constants.MaxRetryAttempts)
	v.SetDefault("client.rate_limit", 0)
	v.SetDefault("client.user_agent", "deribit-common/1.0")

	v.SetDefault("websocket.ping_interval", 30*time.Second)
	v.SetDefault("websocket.pong_timeout", 10*time.Second)
	v.SetDefault("websocket.reconnect_attempts", 5)
	v.SetDefault("websocket.reconnect_delay", 5*time.Second)
	v.SetDefault("websocket.max_message_size", 1024*1024)
	v.SetDefault("websocket.compression", true)

	v.SetDefault("http.pool_size", 0)
	v.SetDefault("http.keep_alive", 30*time.Second)
	v.SetDefault("http.http2", true)
	v.SetDefault("http.gzip", true)

	v.SetDefault("fix.target_comp_id", constants.FIXTargetCompID)
	v.SetDefault("fix.heartbeat_interval", time.Duration(constants.FIXHeartbeatInterval)*time.Second)
	v.SetDefault("fix.cancel_on_disconnect", false)

	logs := logging.DefaultLogConfig()
	v.SetDefault("logging.level", logs.Level)
	v.SetDefault("logging.console", logs.Console)
	v.SetDefault("logging.file", logs.File)
	v.SetDefault("logging.file_path", logs.FilePath)
	v.SetDefault("logging.max_size", logs.MaxSize)
	v.SetDefault("logging.max_backups", logs.MaxBackups)
	v.SetDefault("logging.max_age", logs.MaxAge)

	v.SetEnvPrefix("DERIBIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("client.client_id", "DERIBIT_CLIENT_ID")
	_ = v.BindEnv("client.client_secret", "DERIBIT_CLIENT_SECRET")
	_ = v.BindEnv("client.testnet", "DERIBIT_TESTNET")
	return v
}

// Load reads deribit.toml from configDir, applies DERIBIT_* environment
// overrides and validates the result. A missing file is not an error: the
// defaults and environment are used. If configDir is empty, uses the default
// config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := newViper()
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading %s.toml: %w: %w", FileName, errors.ErrInvalidConfig, err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w: %w", errors.ErrInvalidConfig, err)
	}
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w: %w", errors.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks every section and reports all problems at once. Each
// problem is a *errors.ValidationError; use multierr.Errors to list them.
func (c *Config) Validate() error {
	var errs error
	check := func(ok bool, field string, value interface{}, msg string) {
		if !ok {
			errs = multierr.Append(errs, errors.NewValidationError(errors.InvalidArguments, field, value, msg))
		}
	}

	check(c.Client.Timeout > 0, "client.timeout", c.Client.Timeout, "must be positive")
	check(c.Client.MaxRetries >= 0, "client.max_retries", c.Client.MaxRetries, "must not be negative")
	check(c.Client.RateLimit >= 0 && c.Client.RateLimit <= constants.MaxRequestsPerSecondAuth,
		"client.rate_limit", c.Client.RateLimit, "must be between 0 and "+strconv.Itoa(constants.MaxRequestsPerSecondAuth))
	check((c.Client.ClientID == "") == (c.Client.ClientSecret == ""),
		"client.client_secret", logging.MaskSecret(c.Client.ClientSecret), "client_id and client_secret must be set together")

	check(c.WebSocket.PingInterval > 0, "websocket.ping_interval", c.WebSocket.PingInterval, "must be positive")
	check(c.WebSocket.PongTimeout > 0 && c.WebSocket.PongTimeout < c.WebSocket.PingInterval,
		"websocket.pong_timeout", c.WebSocket.PongTimeout, "must be positive and shorter than ping_interval")
	check(c.WebSocket.ReconnectAttempts >= 0, "websocket.reconnect_attempts", c.WebSocket.ReconnectAttempts, "must not be negative")
	check(c.WebSocket.ReconnectDelay >= 0, "websocket.reconnect_delay", c.WebSocket.ReconnectDelay, "must not be negative")
	check(c.WebSocket.MaxMessageSize >= constants.MaxMessageSizeBytes,
		"websocket.max_message_size", c.WebSocket.MaxMessageSize, "must be at least "+strconv.Itoa(constants.MaxMessageSizeBytes))

	check(c.HTTP.PoolSize >= 0, "http.pool_size", c.HTTP.PoolSize, "must not be negative")
	check(c.HTTP.KeepAlive >= 0, "http.keep_alive", c.HTTP.KeepAlive, "must not be negative")

	check(c.FIX.TargetCompID != "", "fix.target_comp_id", c.FIX.TargetCompID, "must not be empty")
	check(c.FIX.HeartbeatInterval >= time.Second, "fix.heartbeat_interval", c.FIX.HeartbeatInterval, "must be at least one second")

	check(logging.ParseLevel(c.Logging.Level).String() == c.Logging.Level,
		"logging.level", c.Logging.Level, "unknown level")
	check(!c.Logging.File || c.Logging.FilePath != "", "logging.file_path", c.Logging.FilePath, "required when file logging is on")

	return errs
}

// HasCredentials reports whether a key pair is configured.
func (c *Config) HasCredentials() bool {
	return c.Client.ClientID != "" && c.Client.ClientSecret != ""
}

// BaseURL returns the site root for the selected environment.
func (c *Config) BaseURL() string {
	if c.Client.Testnet {
		return constants.BaseURLTest
	}
	return constants.BaseURLProd
}

// APIURL returns the REST API root.
func (c *Config) APIURL() string {
	return c.BaseURL() + "/api/v2"
}

// WSURL returns the WebSocket endpoint.
func (c *Config) WSURL() string {
	if c.Client.Testnet {
		return constants.WSURLTest
	}
	return constants.WSURLProd
}

// FIXAddress returns host:port of the FIX gateway.
func (c *Config) FIXAddress() string {
	host := constants.FIXHostProd
	if c.Client.Testnet {
		host = constants.FIXHostTest
	}
	return net.JoinHostPort(host, strconv.Itoa(constants.FIXPort))
}

// String renders the configuration with credentials masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{client_id=%s client_secret=%s testnet=%t api=%s ws=%s fix=%s sender=%s}",
		logging.MaskSecret(c.Client.ClientID), logging.MaskSecret(c.Client.ClientSecret),
		c.Client.Testnet, c.APIURL(), c.WSURL(), c.FIXAddress(), c.FIX.SenderCompID)
}
