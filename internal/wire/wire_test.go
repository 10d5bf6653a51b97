package wire

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
	"deribit-common/internal/fix"
	"deribit-common/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newDecoder() *Decoder {
	return NewDecoder(zerolog.Nop())
}

const orderPayload = `{
	"order_id": "ORD-1",
	"label": "grid_7",
	"instrument_name": "BTC-PERPETUAL",
	"direction": "buy",
	"order_type": "limit",
	"time_in_force": "good_til_cancelled",
	"price": 50000.5,
	"amount": 1.5,
	"filled_amount": 0.5,
	"average_price": 50000.5,
	"order_state": "open",
	"post_only": true,
	"reduce_only": false,
	"creation_timestamp": 1704164645678,
	"last_update_timestamp": 1704164645678,
	"api": true,
	"web": false
}`

const tradePayload = `{
	"trade_id": "EXEC-1",
	"order_id": "ORD-1",
	"instrument_name": "BTC-PERPETUAL",
	"direction": "buy",
	"amount": 0.5,
	"price": 50000.5,
	"fee": 0.0001,
	"label": "grid_7",
	"timestamp": 1704164645678,
	"trade_seq": 0
}`

func TestNewRequest(t *testing.T) {
	req := NewRequest(7, "public/get_instruments", map[string]interface{}{"currency": "BTC"})
	data, err := req.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":7,"method":"public/get_instruments","params":{"currency":"BTC"}}`, string(data))

	data, err = NewRequest(8, "public/test", nil).Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":8,"method":"public/test"}`, string(data))

	_, err = NewRequest(9, "public/test", map[string]interface{}{"bad": make(chan int)}).Marshal()
	assert.True(t, errors.Is(err, errors.ErrSerialization))
}

func TestDecodeResponseResult(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"jsonrpc":"2.0","id":3,"result":{"version":"1.2.26"},"testnet":true,"usIn":1,"usOut":4,"usDiff":3}`))
	require.NoError(t, err)
	require.NotNil(t, resp.ID)
	assert.Equal(t, uint64(3), *resp.ID)
	assert.True(t, resp.Testnet)
	assert.Equal(t, int64(3), resp.UsDiff)
	assert.NoError(t, resp.Err())
	assert.JSONEq(t, `{"version":"1.2.26"}`, string(resp.Result))
}

func TestDecodeResponseError(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"jsonrpc":"2.0","id":4,"error":{"code":10009,"message":"not_enough_funds","data":{"reason":"margin"}}}`))
	require.NoError(t, err)

	apiErr := resp.Err()
	require.Error(t, apiErr)
	assert.True(t, errors.Is(apiErr, errors.NotEnoughFunds))
	assert.Equal(t, errors.CategoryTrading, errors.CategoryOf(apiErr))

	var typed *errors.APIError
	require.True(t, errors.As(apiErr, &typed))
	assert.JSONEq(t, `{"reason":"margin"}`, string(typed.Data))
}

func TestDecodeResponseUnknownCodePreserved(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"jsonrpc":"2.0","id":5,"error":{"code":99999,"message":"new thing"}}`))
	require.NoError(t, err)
	kind, ok := errors.KindOf(resp.Err())
	require.True(t, ok)
	assert.Equal(t, 99999, kind.Code())
	assert.Equal(t, errors.CategorySystem, kind.Category())
}

func TestDecodeResponseMalformed(t *testing.T) {
	for _, payload := range []string{
		`not json`,
		`{"jsonrpc":"1.0","id":1,"result":true}`,
		`{"jsonrpc":"2.0","id":1}`,
	} {
		_, err := DecodeResponse([]byte(payload))
		assert.True(t, errors.Is(err, errors.JSONDecodeFailed), payload)
		assert.Equal(t, errors.CategoryProtocol, errors.CategoryOf(err))
	}
}

func TestDecoderResultLogsAPIErrors(t *testing.T) {
	var buf bytes.Buffer
	dec := NewDecoder(zerolog.New(&buf))

	_, err := dec.Result("private/buy", []byte(`{"jsonrpc":"2.0","id":1,"error":{"code":10028,"message":"too_many_requests"}}`))
	assert.True(t, errors.Is(err, errors.TooManyRequests))
	assert.True(t, errors.Retryable(err))
	assert.Contains(t, buf.String(), `"method":"private/buy"`)

	result, err := dec.Result("public/test", []byte(`{"jsonrpc":"2.0","id":2,"result":"ok"}`))
	require.NoError(t, err)
	assert.Equal(t, `"ok"`, string(result))
}

func TestDecodeNotification(t *testing.T) {
	n, err := DecodeNotification([]byte(`{"jsonrpc":"2.0","method":"subscription","params":{"channel":"user.orders.BTC-PERPETUAL.raw","data":` + orderPayload + `}}`))
	require.NoError(t, err)
	assert.False(t, n.IsHeartbeat())
	kind, ok := ChannelKind(n.Params.Channel)
	require.True(t, ok)
	assert.Equal(t, constants.ChannelUserOrders, kind)

	order, err := newDecoder().DecodeOrder(n.Params.Data)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", order.OrderID)

	hb, err := DecodeNotification([]byte(`{"jsonrpc":"2.0","method":"heartbeat","params":{"type":"test_request"}}`))
	require.NoError(t, err)
	assert.True(t, hb.IsHeartbeat())
	assert.Equal(t, "test_request", hb.Params.Type)

	for _, payload := range []string{
		`{"jsonrpc":"2.0","method":"subscription","params":{"data":{}}}`,
		`{"jsonrpc":"2.0","method":"subscription","params":{"channel":"ticker.BTC-PERPETUAL.raw"}}`,
		`{"jsonrpc":"2.0","method":"bogus","params":{}}`,
		`[`,
	} {
		_, err := DecodeNotification([]byte(payload))
		assert.True(t, errors.Is(err, errors.JSONDecodeFailed), payload)
	}
}

func TestChannelKind(t *testing.T) {
	tests := map[string]string{
		"book.BTC-PERPETUAL.100ms":        constants.ChannelBook,
		"trades.ETH-PERPETUAL.raw":        constants.ChannelTrades,
		"ticker.BTC-29MAR24.100ms":        constants.ChannelTicker,
		"quote.BTC-PERPETUAL":             constants.ChannelQuote,
		"user.orders.any.any.raw":         constants.ChannelUserOrders,
		"user.trades.BTC-PERPETUAL.100ms": constants.ChannelUserTrades,
		"user.portfolio.btc":              constants.ChannelUserPortfolio,
	}
	for channel, want := range tests {
		got, ok := ChannelKind(channel)
		assert.True(t, ok, channel)
		assert.Equal(t, want, got, channel)
	}
	_, ok := ChannelKind("deribit_price_index.btc_usd")
	assert.False(t, ok)
	_, ok = ChannelKind("book")
	assert.False(t, ok)
}

func TestDecodeOrder(t *testing.T) {
	order, err := newDecoder().DecodeOrder([]byte(orderPayload))
	require.NoError(t, err)

	assert.Equal(t, models.DirectionBuy, order.Direction)
	assert.Equal(t, models.OrderStateOpen, order.State)
	assert.True(t, order.Price.Valid)
	assert.True(t, order.Price.Decimal.Equal(d("50000.5")))
	assert.True(t, order.RemainingAmount().Equal(d("1")))
	assert.Equal(t, int64(1704164645678), order.CreatedAt.UnixMilli())
}

func TestDecodeOrderMarketPrice(t *testing.T) {
	payload := bytes.Replace([]byte(orderPayload), []byte(`"price": 50000.5`), []byte(`"price": "market_price"`), 1)
	payload = bytes.Replace(payload, []byte(`"order_type": "limit"`), []byte(`"order_type": "market"`), 1)

	order, err := newDecoder().DecodeOrder(payload)
	require.NoError(t, err)
	assert.False(t, order.Price.Valid)
	assert.Equal(t, models.OrderTypeMarket, order.Type)
}

func TestDecodeOrderRejectsInvalid(t *testing.T) {
	var buf bytes.Buffer
	dec := NewDecoder(zerolog.New(&buf).Level(zerolog.DebugLevel))

	zero := bytes.Replace([]byte(orderPayload), []byte(`"amount": 1.5`), []byte(`"amount": 0`), 1)
	_, err := dec.DecodeOrder(zero)
	assert.True(t, errors.Is(err, errors.InvalidAmount), "%v", err)
	assert.Contains(t, buf.String(), "decode_failure")
	assert.Contains(t, buf.String(), `"transport":"json"`)

	badSide := bytes.Replace([]byte(orderPayload), []byte(`"direction": "buy"`), []byte(`"direction": "long"`), 1)
	_, err = dec.DecodeOrder(badSide)
	var valErr *errors.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "direction", valErr.Field)

	_, err = dec.DecodeOrder([]byte(`{"order_id": 12`))
	assert.True(t, errors.Is(err, errors.JSONDecodeFailed))
}

func TestDecodeOrders(t *testing.T) {
	orders, err := newDecoder().DecodeOrders([]byte(`[` + orderPayload + `,` + orderPayload + `]`))
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = newDecoder().DecodeOrders([]byte(`[` + orderPayload + `,{"order_id":"x"}]`))
	assert.Error(t, err)
}

func TestDecodeTrades(t *testing.T) {
	trades, err := newDecoder().DecodeTrades([]byte(`[` + tradePayload + `]`))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "EXEC-1", trades[0].TradeID)
	assert.True(t, trades[0].Notional().Equal(d("25000.25")))

	withCurrency := bytes.Replace([]byte(tradePayload), []byte(`"fee": 0.0001,`), []byte(`"fee": 0.0001, "fee_currency": "DOGE",`), 1)
	_, err = newDecoder().DecodeTrade(withCurrency)
	assert.True(t, errors.Is(err, errors.UnsupportedCurrency), "%v", err)
}

func TestDecodeOrderPlacement(t *testing.T) {
	order, trades, err := newDecoder().DecodeOrderPlacement([]byte(`{"order":` + orderPayload + `,"trades":[` + tradePayload + `]}`))
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", order.OrderID)
	require.Len(t, trades, 1)
	assert.Equal(t, order.OrderID, trades[0].OrderID)
}

// The same order and fill reported over FIX and over JSON decode to equal
// values.
func TestCrossProtocolEquality(t *testing.T) {
	body := fix.Fields{
		{Tag: constants.TagAvgPx, Value: "50000.5"},
		{Tag: constants.TagClOrdID, Value: "grid_7"},
		{Tag: constants.TagCommission, Value: "0.0001"},
		{Tag: constants.TagCumQty, Value: "0.5"},
		{Tag: constants.TagExecID, Value: "EXEC-1"},
		{Tag: constants.TagExecInst, Value: "6"},
		{Tag: constants.TagLastPx, Value: "50000.5"},
		{Tag: constants.TagLastQty, Value: "0.5"},
		{Tag: constants.TagOrderID, Value: "ORD-1"},
		{Tag: constants.TagOrderQty, Value: "1.5"},
		{Tag: constants.TagOrdStatus, Value: "1"},
		{Tag: constants.TagOrdType, Value: "2"},
		{Tag: constants.TagPrice, Value: "50000.5"},
		{Tag: constants.TagSide, Value: "1"},
		{Tag: constants.TagSymbol, Value: "BTC-PERPETUAL"},
		{Tag: constants.TagTimeInForce, Value: "1"},
		{Tag: constants.TagTransactTime, Value: "20240102-03:04:05.678"},
		{Tag: constants.TagExecType, Value: "F"},
	}
	frame := fix.Encode(constants.MsgTypeExecutionReport, nil, body)
	fixDec := fix.NewDecoder(zerolog.Nop())

	fromFIX, err := fixDec.DecodeOrder(frame)
	require.NoError(t, err)
	fromJSON, err := newDecoder().DecodeOrder([]byte(orderPayload))
	require.NoError(t, err)
	assert.Equal(t, fromFIX, fromJSON)

	fillFIX, err := fixDec.DecodeTrade(frame)
	require.NoError(t, err)
	fillJSON, err := newDecoder().DecodeTrade([]byte(tradePayload))
	require.NoError(t, err)
	assert.Equal(t, fillFIX, fillJSON)
}

func TestDecodeTicker(t *testing.T) {
	ticker, err := newDecoder().DecodeTicker([]byte(`{
		"instrument_name": "BTC-PERPETUAL", "state": "open", "timestamp": 1704164645678,
		"last_price": 50001, "mark_price": 50000.12, "index_price": 49990.5,
		"best_bid_price": 50000, "best_bid_amount": 12000,
		"best_ask_price": 50000.5, "best_ask_amount": 3000,
		"open_interest": 1000000, "settlement_price": null,
		"current_funding": 0.0001, "funding_8h": 0.00005,
		"stats": {"volume": 1234.5, "high": 51000, "low": 49000}
	}`))
	require.NoError(t, err)
	assert.True(t, ticker.Volume24h.Equal(d("1234.5")))
	assert.True(t, ticker.SettlementPrice.IsZero())
	assert.Nil(t, ticker.Greeks)
	spread, ok := ticker.Spread()
	require.True(t, ok)
	assert.True(t, spread.Equal(d("0.5")))

	_, err = newDecoder().DecodeTicker([]byte(`{"instrument_name": "", "timestamp": 1}`))
	assert.True(t, errors.Is(err, errors.InvalidOrUnsupportedInstrument))
}

func TestDecodeOptionTicker(t *testing.T) {
	ticker, err := newDecoder().DecodeTicker([]byte(`{
		"instrument_name": "ETH-29MAR24-4000-C", "state": "open", "timestamp": 1704164645678,
		"mark_price": 0.0125, "best_bid_price": 0.012, "best_ask_price": 0.013,
		"mark_iv": 55.3, "bid_iv": 54.1, "ask_iv": 56.4,
		"underlying_price": 2301.5, "underlying_index": "ETH-29MAR24", "interest_rate": 0,
		"min_price": 0.001, "max_price": 0.05, "estimated_delivery_price": 2300.1,
		"greeks": {"delta": 0.21, "gamma": 0.0004, "vega": 2.1, "theta": -1.7, "rho": 0.6},
		"stats": {"volume": 100, "volume_usd": 2890.5, "price_change": -3.2, "high": 0.02, "low": 0.01}
	}`))
	require.NoError(t, err)
	require.NotNil(t, ticker.Greeks)
	assert.True(t, ticker.Greeks.Delta.Equal(d("0.21")))
	assert.True(t, ticker.Greeks.Theta.Equal(d("-1.7")))
	assert.True(t, ticker.MarkIV.Equal(d("55.3")))
	assert.True(t, ticker.UnderlyingPrice.Equal(d("2301.5")))
	assert.Equal(t, "ETH-29MAR24", ticker.UnderlyingIndex)
	assert.True(t, ticker.VolumeUSD24h.Equal(d("2890.5")))
	assert.True(t, ticker.PriceChange24h.Equal(d("-3.2")))
	assert.True(t, ticker.EstimatedDeliveryPrice.Equal(d("2300.1")))

	ivSpread, ok := ticker.IVSpread()
	require.True(t, ok)
	assert.True(t, ivSpread.Equal(d("2.3")))
}

func TestDecodeBookSummaries(t *testing.T) {
	summaries, err := newDecoder().DecodeBookSummaries([]byte(`[
		{"instrument_name": "BTC-PERPETUAL", "base_currency": "BTC", "quote_currency": "USD",
		 "volume": 1234.5, "volume_usd": 61725000, "open_interest": 900000, "price_change": 1.5,
		 "mark_price": 50000.1, "mark_iv": null, "bid_price": 50000, "ask_price": 50000.5,
		 "mid_price": 50000.25, "last": 50001, "high": 51000, "low": 49000,
		 "estimated_delivery_price": 49990, "current_funding": 0.0001, "funding_8h": 0.00005,
		 "creation_timestamp": 1704164645678},
		{"instrument_name": "ETH-PERPETUAL", "quote_currency": "USD", "volume": 10,
		 "mark_price": 2300, "bid_price": null, "ask_price": 2301, "creation_timestamp": 1704164645678}
	]`))
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	btc := summaries[0]
	assert.True(t, btc.VolumeUSD.Equal(d("61725000")))
	assert.False(t, btc.MarkIV.Valid)
	assert.Equal(t, time.UnixMilli(1704164645678).UTC(), btc.CreatedAt)
	spread, ok := btc.Spread()
	require.True(t, ok)
	assert.True(t, spread.Equal(d("0.5")))

	eth := summaries[1]
	assert.Equal(t, "ETH", eth.BaseCurrency)
	_, ok = eth.Spread()
	assert.False(t, ok)

	_, err = newDecoder().DecodeBookSummaries([]byte(`[{"instrument_name": "XRP-PERPETUAL", "base_currency": "XRP"}]`))
	assert.True(t, errors.Is(err, errors.UnsupportedCurrency))
	_, err = newDecoder().DecodeBookSummaries([]byte(`[{"instrument_name": ""}]`))
	assert.True(t, errors.Is(err, errors.InvalidOrUnsupportedInstrument))
}

func TestDecodeAuth(t *testing.T) {
	var buf bytes.Buffer
	dec := NewDecoder(zerolog.New(&buf).Level(zerolog.DebugLevel))

	auth, err := dec.DecodeAuth([]byte(`{
		"access_token": "access-token-value", "expires_in": 28800,
		"refresh_token": "refresh-token-value", "scope": "connection mainaccount", "token_type": "bearer"
	}`))
	require.NoError(t, err)
	assert.Equal(t, int64(28800), auth.ExpiresIn)
	assert.Equal(t, "bearer", auth.TokenType)

	_, err = dec.DecodeAuth([]byte(`{"access_token": "leaked-token-value", "expires_in": 0}`))
	assert.True(t, errors.Is(err, errors.JSONDecodeFailed))
	assert.NotContains(t, buf.String(), "leaked-token-value")
}

func TestDecodePages(t *testing.T) {
	dec := newDecoder()

	trades, err := dec.DecodeTradePage([]byte(`{"trades": [` + tradePayload + `], "has_more": true}`))
	require.NoError(t, err)
	require.Len(t, trades.Items, 1)
	assert.True(t, trades.HasMore)
	assert.False(t, trades.Done())

	settlements, err := dec.DecodeSettlementPage([]byte(`{
		"settlements": [{"type": "settlement", "instrument_name": "BTC-PERPETUAL", "position": 100,
			"mark_price": 50000, "index_price": 49990, "profit_loss": 0.001,
			"session_profit_loss": 0.0005, "funding": -0.00001, "timestamp": 1704164645678}],
		"continuation": "xY7T6cutS3t2B9YtaDkE6TS379oKnkzTvmEDUnEUP2Msa9xKWNNaT"
	}`))
	require.NoError(t, err)
	require.Len(t, settlements.Items, 1)
	assert.Equal(t, models.SettlementTypeSettlement, settlements.Items[0].Type)
	assert.True(t, settlements.Items[0].Position.Equal(d("100")))
	assert.Equal(t, time.UnixMilli(1704164645678).UTC(), settlements.Items[0].Timestamp)
	assert.False(t, settlements.Done())

	last, err := dec.DecodeSettlementPage([]byte(`{"settlements": [], "continuation": "none"}`))
	require.NoError(t, err)
	assert.True(t, last.Done())

	_, err = dec.DecodeSettlementPage([]byte(`{"settlements": [{"type": "liquidation", "timestamp": 1}]}`))
	assert.True(t, errors.Is(err, errors.BadArgument))
}

func TestNewCallRequest(t *testing.T) {
	order := models.LimitOrder("BTC-PERPETUAL", models.DirectionSell, d("0.5"), d("50000.5"))
	data, err := NewCallRequest(11, order).Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc": "2.0", "id": 11, "method": "private/sell", "params": {
		"instrument_name": "BTC-PERPETUAL", "amount": 0.5, "type": "limit",
		"price": 50000.5, "time_in_force": "good_til_cancelled"}}`, string(data))

	data, err = NewCallRequest(12, models.CancelRequest{OrderID: "ORD-1"}).Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc": "2.0", "id": 12, "method": "private/cancel", "params": {"order_id": "ORD-1"}}`, string(data))
}

func TestDecodeOrderBook(t *testing.T) {
	book, err := newDecoder().DecodeOrderBook([]byte(`{
		"instrument_name": "BTC-PERPETUAL", "timestamp": 1704164645678, "change_id": 42,
		"bids": [["new", 49999, 10], [50000, 5]],
		"asks": [[50002, 1], ["change", 50001, 2]]
	}`))
	require.NoError(t, err)
	assert.Equal(t, int64(42), book.ChangeID)
	assert.True(t, book.IsSnapshot())
	assert.Nil(t, book.PrevChangeID)
	assert.Equal(t, time.UTC, book.Timestamp.Location())
	require.Len(t, book.Bids, 2)
	require.Len(t, book.Asks, 2)

	bid, ok := book.BestBid()
	require.True(t, ok)
	assert.True(t, bid.Price.Equal(d("50000")))
	ask, ok := book.BestAsk()
	require.True(t, ok)
	assert.True(t, ask.Price.Equal(d("50001")))

	for _, payload := range []string{
		`{"instrument_name": "BTC-PERPETUAL", "bids": [[1]], "asks": []}`,
		`{"instrument_name": "BTC-PERPETUAL", "bids": [["move", 1, 2]], "asks": []}`,
		`{"instrument_name": "BTC-PERPETUAL", "bids": [[0, 2]], "asks": []}`,
		`{"instrument_name": "BTC-PERPETUAL", "type": "snapshot", "bids": [["delete", 1, 0]], "asks": []}`,
		`{"instrument_name": "BTC-PERPETUAL", "type": "change", "change_id": 2, "bids": [], "asks": []}`,
		`{"instrument_name": "BTC-PERPETUAL", "type": "partial", "bids": [], "asks": []}`,
	} {
		_, err := newDecoder().DecodeOrderBook([]byte(payload))
		assert.Error(t, err, payload)
	}
}

func TestDecodeOrderBookChange(t *testing.T) {
	dec := newDecoder()
	snapshot, err := dec.DecodeOrderBook([]byte(`{
		"type": "snapshot", "instrument_name": "BTC-PERPETUAL", "timestamp": 1704164645000, "change_id": 41,
		"bids": [["new", 49998, 3], ["new", 49997, 4]],
		"asks": [["new", 50001, 2]]
	}`))
	require.NoError(t, err)

	change, err := dec.DecodeOrderBook([]byte(`{
		"type": "change", "instrument_name": "BTC-PERPETUAL", "timestamp": 1704164645678,
		"prev_change_id": 41, "change_id": 42,
		"bids": [["delete", 49998, 0]],
		"asks": [["change", 50001, 5], ["new", 50003, 1]]
	}`))
	require.NoError(t, err)
	assert.False(t, change.IsSnapshot())
	assert.Equal(t, models.BookChange, change.Type)
	require.NotNil(t, change.PrevChangeID)
	assert.Equal(t, int64(41), *change.PrevChangeID)
	require.Len(t, change.Bids, 1)
	assert.True(t, change.Bids[0].Price.Equal(d("49998")))
	assert.True(t, change.Bids[0].Amount.IsZero())

	book, err := snapshot.Apply(change)
	require.NoError(t, err)
	assert.Equal(t, int64(42), book.ChangeID)
	require.Len(t, book.Bids, 1)
	assert.True(t, book.Bids[0].Price.Equal(d("49997")))
	require.Len(t, book.Asks, 2)
	assert.True(t, book.Asks[0].Amount.Equal(d("5")))

	_, err = book.Apply(change)
	assert.True(t, errors.Is(err, errors.BookSequenceGap))
}

func TestDecodeInstrumentUnsupportedCurrency(t *testing.T) {
	_, err := newDecoder().DecodeInstrument([]byte(`{
		"instrument_name": "XRP-PERPETUAL", "kind": "future", "settlement_period": "perpetual",
		"base_currency": "XRP", "tick_size": 0.0001, "min_trade_amount": 1
	}`))
	assert.True(t, errors.Is(err, errors.UnsupportedCurrency))
}

func TestDecodeInstrument(t *testing.T) {
	perp, err := newDecoder().DecodeInstrument([]byte(`{
		"instrument_name": "BTC-PERPETUAL", "kind": "future", "settlement_period": "perpetual",
		"base_currency": "BTC", "quote_currency": "USD", "settlement_currency": "BTC",
		"tick_size": 0.5, "min_trade_amount": 10, "contract_size": 10,
		"is_active": true, "maker_commission": 0, "taker_commission": 0.0005,
		"expiration_timestamp": 32503708800000
	}`))
	require.NoError(t, err)
	assert.True(t, perp.IsPerpetual())
	assert.Equal(t, int32(1), perp.PricePrecision)
	assert.Equal(t, int32(0), perp.AmountPrecision)
	assert.True(t, perp.Expiration.IsZero())

	option, err := newDecoder().DecodeInstrument([]byte(`{
		"instrument_name": "ETH-29MAR24-4000-C", "kind": "option", "settlement_period": "month",
		"base_currency": "ETH", "quote_currency": "ETH", "settlement_currency": "ETH",
		"tick_size": 0.0005, "min_trade_amount": 1, "contract_size": 1,
		"option_type": "call", "strike": 4000, "is_active": true,
		"expiration_timestamp": 1711699200000
	}`))
	require.NoError(t, err)
	assert.True(t, option.IsOption())
	assert.Equal(t, int32(4), option.PricePrecision)
	assert.True(t, time.Date(2024, time.March, 29, 8, 0, 0, 0, time.UTC).Equal(option.Expiration))

	_, err = newDecoder().DecodeInstrument([]byte(`{"instrument_name": "ETH-29MAR24-4000-C", "kind": "option", "tick_size": 0.0005, "min_trade_amount": 1}`))
	assert.True(t, errors.Is(err, errors.InvalidArguments), "%v", err)
}

func TestDecodeInstruments(t *testing.T) {
	item := `{"instrument_name": "BTC-PERPETUAL", "kind": "future", "settlement_period": "perpetual", "tick_size": 0.5, "min_trade_amount": 10}`
	registry, err := newDecoder().DecodeInstruments([]byte(`[` + item + `]`))
	require.NoError(t, err)
	assert.Equal(t, 1, registry.Len())

	_, err = newDecoder().DecodeInstruments([]byte(`[` + item + `,` + item + `]`))
	assert.True(t, errors.Is(err, errors.InvalidArguments), "%v", err)
}

func TestDecodePosition(t *testing.T) {
	pos, err := newDecoder().DecodePosition([]byte(`{
		"instrument_name": "BTC-PERPETUAL", "size": -100, "direction": "sell",
		"average_price": 50000, "realized_profit_loss": 0.001, "floating_profit_loss": -0.0002,
		"mark_price": 50010, "index_price": 50005, "kind": "future"
	}`))
	require.NoError(t, err)
	assert.Equal(t, models.DirectionSell, pos.Direction)
	assert.True(t, pos.Size.Equal(d("-100")))

	_, err = newDecoder().DecodePosition([]byte(`{"instrument_name": "BTC-PERPETUAL", "direction": "up"}`))
	assert.True(t, errors.Is(err, errors.BadArgument))
}

func TestDecodeAccountSummary(t *testing.T) {
	summary, err := newDecoder().DecodeAccountSummary([]byte(`{
		"currency": "BTC", "balance": 2, "equity": 2.5, "available_funds": 1.5,
		"initial_margin": 0.5, "maintenance_margin": 0.25
	}`))
	require.NoError(t, err)
	assert.True(t, summary.MarginUtilization().Equal(d("20")))

	_, err = newDecoder().DecodeAccountSummary([]byte(`{"currency": "XYZ"}`))
	assert.True(t, errors.Is(err, errors.UnsupportedCurrency))
}

func TestDecodeTransfer(t *testing.T) {
	transfer, err := newDecoder().DecodeTransfer([]byte(`{
		"id": 17, "currency": "ETH", "amount": 1.5, "fee": 0.001,
		"address": "0xabc", "state": "prepared",
		"created_timestamp": 1704164645678, "updated_timestamp": 1704164645678
	}`))
	require.NoError(t, err)
	assert.True(t, transfer.IsPending())
	assert.True(t, transfer.NetAmount().Equal(d("1.499")))

	confirmed, err := transfer.Confirm(time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.TransferConfirmed, confirmed.State)

	_, err = newDecoder().DecodeTransfer([]byte(`{"id": 1, "currency": "ETH", "amount": 0, "state": "prepared"}`))
	assert.True(t, errors.Is(err, errors.InvalidAmount))
}
