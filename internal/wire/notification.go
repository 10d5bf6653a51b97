package wire

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
)

const (
	methodSubscription = "subscription"
	methodHeartbeat    = "heartbeat"
)

// Notification is a server push on a WebSocket connection.
type Notification struct {
	JSONRPC string             `json:"jsonrpc"`
	Method  string             `json:"method"`
	Params  NotificationParams `json:"params"`
}

// NotificationParams carries the channel name and its payload. Heartbeat
// notifications set Type instead of Channel.
type NotificationParams struct {
	Channel string          `json:"channel,omitempty"`
	Type    string          `json:"type,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// IsHeartbeat reports whether the notification is a server heartbeat.
func (n *Notification) IsHeartbeat() bool {
	return n.Method == methodHeartbeat
}

// DecodeNotification parses a subscription or heartbeat notification.
func DecodeNotification(data []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, decodeError("notification", err)
	}
	switch n.Method {
	case methodSubscription:
		if n.Params.Channel == "" {
			return nil, errors.NewProtocolError(errors.JSONDecodeFailed, 0, "subscription notification has no channel", nil)
		}
		if len(n.Params.Data) == 0 {
			return nil, errors.NewProtocolError(errors.JSONDecodeFailed, 0, "subscription notification has no data", nil)
		}
	case methodHeartbeat:
	default:
		return nil, errors.NewProtocolError(errors.JSONDecodeFailed, 0, "unknown notification method "+strconv.Quote(n.Method), nil)
	}
	return &n, nil
}

var channelKinds = []string{
	constants.ChannelUserPortfolio,
	constants.ChannelUserOrders,
	constants.ChannelUserTrades,
	constants.ChannelBook,
	constants.ChannelTrades,
	constants.ChannelTicker,
	constants.ChannelQuote,
}

// ChannelKind returns the channel family of a subscription channel such as
// "book.BTC-PERPETUAL.100ms" (book) or "user.orders.any.any.raw"
// (user.orders).
func ChannelKind(channel string) (string, bool) {
	for _, kind := range channelKinds {
		if strings.HasPrefix(channel, kind+".") {
			return kind, true
		}
	}
	return "", false
}
