package fix

import (
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
	"deribit-common/internal/logging"
	"deribit-common/internal/models"
)

// Decoder turns ExecutionReport frames into shared models. Failures are
// logged at debug level with secrets redacted.
type Decoder struct {
	log zerolog.Logger
}

// NewDecoder returns a Decoder that logs to logger.
func NewDecoder(logger zerolog.Logger) *Decoder {
	return &Decoder{log: logging.WithTransport(logger, "fix")}
}

// DecodeOrder verifies frame and converts it into an Order.
func (d *Decoder) DecodeOrder(frame []byte) (models.Order, error) {
	msg, err := decodeExecutionReport(frame)
	if err == nil {
		var order models.Order
		if order, err = OrderFromMessage(msg); err == nil {
			return order, nil
		}
	}
	logging.LogDecodeFailure(d.log, "order", err, logging.RedactFIX(frame))
	return models.Order{}, err
}

// DecodeTrade verifies frame and converts the fill it reports into a Trade.
func (d *Decoder) DecodeTrade(frame []byte) (models.Trade, error) {
	msg, err := decodeExecutionReport(frame)
	if err == nil {
		var trade models.Trade
		if trade, err = TradeFromMessage(msg); err == nil {
			return trade, nil
		}
	}
	logging.LogDecodeFailure(d.log, "trade", err, logging.RedactFIX(frame))
	return models.Trade{}, err
}

func decodeExecutionReport(frame []byte) (*Message, error) {
	msg, err := Decode(frame)
	if err != nil {
		return nil, err
	}
	if msg.MsgType != constants.MsgTypeExecutionReport {
		return nil, errors.NewProtocolError(errors.FixUnsupportedValue, constants.TagMsgType,
			"expected an execution report, got "+strconv.Quote(msg.MsgType), nil)
	}
	return msg, nil
}

// OrderFromMessage maps ExecutionReport fields onto an OrderDraft and builds
// the Order. TransactTime (60) supplies both timestamps.
func OrderFromMessage(msg *Message) (models.Order, error) {
	values := map[string]interface{}{}

	if err := putRequired(msg, values, []tagKey{
		{constants.TagOrderID, "order_id"},
		{constants.TagSymbol, "instrument_name"},
	}); err != nil {
		return models.Order{}, err
	}
	if v, ok := msg.Get(constants.TagClOrdID); ok {
		values["label"] = UnescapeValue(v)
	}

	side, err := msg.Require(constants.TagSide)
	if err != nil {
		return models.Order{}, err
	}
	if values["direction"], err = sideFromFIX(side); err != nil {
		return models.Order{}, err
	}

	status, err := msg.Require(constants.TagOrdStatus)
	if err != nil {
		return models.Order{}, err
	}
	if values["order_state"], err = ordStatusFromFIX(status); err != nil {
		return models.Order{}, err
	}

	values["order_type"] = models.OrderTypeLimit
	if v, ok := msg.Get(constants.TagOrdType); ok {
		if values["order_type"], err = ordTypeFromFIX(v); err != nil {
			return models.Order{}, err
		}
	}

	if v, ok := msg.Get(constants.TagTimeInForce); ok {
		if values["time_in_force"], err = timeInForceFromFIX(v); err != nil {
			return models.Order{}, err
		}
	}
	if v, ok := msg.Get(constants.TagExecInst); ok {
		values["post_only"], values["reduce_only"] = execInstFromFIX(v)
	}

	if _, err := msg.Require(constants.TagOrderQty); err != nil {
		return models.Order{}, err
	}
	if err := putDecimals(msg, values, map[int]string{
		constants.TagOrderQty: "amount",
		constants.TagCumQty:   "filled_amount",
		constants.TagAvgPx:    "average_price",
	}); err != nil {
		return models.Order{}, err
	}
	if price, ok, err := msg.GetDecimal(constants.TagPrice); err != nil {
		return models.Order{}, err
	} else if ok {
		values["price"] = decimal.NewNullDecimal(price)
	}
	if stopPx, ok, err := msg.GetDecimal(constants.TagStopPx); err != nil {
		return models.Order{}, err
	} else if ok {
		values["trigger_price"] = decimal.NewNullDecimal(stopPx)
	}

	if v, ok := msg.Get(constants.TagTransactTime); ok {
		ts, err := ParseTimestamp(v)
		if err != nil {
			return models.Order{}, err
		}
		values["creation_timestamp"] = ts.UnixMilli()
		values["last_update_timestamp"] = ts.UnixMilli()
	}

	var draft models.OrderDraft
	if err := decodeDraft(values, &draft); err != nil {
		return models.Order{}, err
	}
	return models.BuildOrder(draft)
}

// TradeFromMessage maps the fill reported by an ExecutionReport onto a
// TradeDraft and builds the Trade. ExecID (17) is the trade id.
func TradeFromMessage(msg *Message) (models.Trade, error) {
	if v, ok := msg.Get(constants.TagExecType); ok && v != execTypeTrade {
		return models.Trade{}, errors.NewProtocolError(errors.FixUnsupportedValue, constants.TagExecType,
			"execution report "+strconv.Quote(v)+" carries no fill", nil)
	}

	values := map[string]interface{}{}
	if err := putRequired(msg, values, []tagKey{
		{constants.TagExecID, "trade_id"},
		{constants.TagOrderID, "order_id"},
		{constants.TagSymbol, "instrument_name"},
	}); err != nil {
		return models.Trade{}, err
	}
	for _, tag := range []int{constants.TagLastQty, constants.TagLastPx} {
		if _, err := msg.Require(tag); err != nil {
			return models.Trade{}, err
		}
	}
	if v, ok := msg.Get(constants.TagClOrdID); ok {
		values["label"] = UnescapeValue(v)
	}

	side, err := msg.Require(constants.TagSide)
	if err != nil {
		return models.Trade{}, err
	}
	if values["direction"], err = sideFromFIX(side); err != nil {
		return models.Trade{}, err
	}

	if err := putDecimals(msg, values, map[int]string{
		constants.TagLastQty:    "amount",
		constants.TagLastPx:     "price",
		constants.TagCommission: "fee",
	}); err != nil {
		return models.Trade{}, err
	}

	if v, ok := msg.Get(constants.TagTransactTime); ok {
		ts, err := ParseTimestamp(v)
		if err != nil {
			return models.Trade{}, err
		}
		values["timestamp"] = ts.UnixMilli()
	}

	var draft models.TradeDraft
	if err := decodeDraft(values, &draft); err != nil {
		return models.Trade{}, err
	}
	return models.BuildTrade(draft)
}

type tagKey struct {
	tag int
	key string
}

func putRequired(msg *Message, values map[string]interface{}, keys []tagKey) error {
	for _, tk := range keys {
		v, err := msg.Require(tk.tag)
		if err != nil {
			return err
		}
		values[tk.key] = v
	}
	return nil
}

func putDecimals(msg *Message, values map[string]interface{}, keys map[int]string) error {
	for tag, key := range keys {
		d, ok, err := msg.GetDecimal(tag)
		if err != nil {
			return err
		}
		if ok {
			values[key] = d
		}
	}
	return nil
}

// decodeDraft copies values into a draft by its mapstructure tags. Every key
// must land on a field.
func decodeDraft(values map[string]interface{}, draft interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      draft,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return errors.Wrap(err, "build draft decoder")
	}
	if err := dec.Decode(values); err != nil {
		return errors.NewProtocolError(errors.FixMalformedFrame, 0, "execution report does not fit the draft", err)
	}
	return nil
}
