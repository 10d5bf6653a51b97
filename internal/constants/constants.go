// Package constants holds the static values shared by every Deribit transport:
// endpoints, rate limits, timeouts, per-currency order limits and FIX field tags.
//
// Everything here is either a compile-time constant or a table built once in
// init and never written again, so it is safe for unsynchronized concurrent reads.
package constants

import "time"

// API endpoints
const (
	WSURLProd   = "wss://www.deribit.com/ws/api/v2"
	WSURLTest   = "wss://test.deribit.com/ws/api/v2"
	HTTPURLProd = "https://www.deribit.com/api/v2"
	HTTPURLTest = "https://test.deribit.com/api/v2"

	BaseURLProd = "https://www.deribit.com"
	BaseURLTest = "https://test.deribit.com"

	FIXHostProd = "www.deribit.com"
	FIXHostTest = "test.deribit.com"
	FIXPort     = 9881
)

// Rate limits
const (
	MaxRequestsPerSecondAuth      = 20
	MaxRequestsPerSecondUnauth    = 10
	MaxSubscriptionsPerConnection = 200
	MaxMessageSizeBytes           = 64 * 1024
	MaxOpenOrdersPerInstrument    = 500
	MaxOpenOrdersTotal            = 2000
)

// Timeouts
const (
	DefaultConnectionTimeout = 5 * time.Second
	DefaultRequestTimeout    = 10 * time.Second
	HeartbeatInterval        = 10 * time.Second
	HeartbeatTimeout         = 5 * time.Second
)

// Authentication token lifetimes.
const (
	AccessTokenExpiration  = 28800 * time.Second
	RefreshTokenExpiration = 2592000 * time.Second
	TokenRefreshBuffer     = 300 * time.Second
)

// Retry parameters exposed to collaborators. This layer never retries by itself.
const (
	MaxRetryAttempts = 3
	RetryBaseDelay   = 1 * time.Second
	RetryMaxDelay    = 30 * time.Second
)

// Market data limits
const (
	MaxOrderBookDepth     = 10000
	DefaultOrderBookDepth = 20
	MaxRecentTrades       = 10000
	DefaultRecentTrades   = 100
)

// JSON-RPC
const (
	JSONRPCVersion   = "2.0"
	DefaultRequestID = 1
)

// WebSocket channels
const (
	ChannelBook          = "book"
	ChannelTrades        = "trades"
	ChannelTicker        = "ticker"
	ChannelQuote         = "quote"
	ChannelUserOrders    = "user.orders"
	ChannelUserTrades    = "user.trades"
	ChannelUserPortfolio = "user.portfolio"
)

// Instrument types as reported by the exchange.
const (
	InstrumentTypeFuture      = "future"
	InstrumentTypeOption      = "option"
	InstrumentTypePerpetual   = "perpetual"
	InstrumentTypeSpot        = "spot"
	InstrumentTypeFutureCombo = "future_combo"
	InstrumentTypeOptionCombo = "option_combo"
)

// FIX session values.
const (
	FIXVersion           = "FIX.4.4"
	FIXDelimiter         = '\x01'
	FIXDelimiterStr      = "\x01"
	FIXHeartbeatInterval = 30 // seconds
	FIXTargetCompID      = "DERIBITSERVER"
	FIXTimestampLayout   = "20060102-15:04:05.000"

	// NonceLength is the number of random bytes drawn for each logon.
	NonceLength = 32
)
