package fix

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
	"deribit-common/internal/models"
)

// Field is one tag=value pair.
type Field struct {
	Tag   int
	Value string
}

// Fields is an ordered sequence of fields.
type Fields []Field

// Get returns the value of the first field with tag.
func (f Fields) Get(tag int) (string, bool) {
	for _, field := range f {
		if field.Tag == tag {
			return field.Value, true
		}
	}
	return "", false
}

// Sorted returns a copy ordered by ascending tag. Repeated tags keep their
// relative order.
func (f Fields) Sorted() Fields {
	out := make(Fields, len(f))
	copy(out, f)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// Bytes renders the fields as tag=value pairs, each followed by the delimiter.
func (f Fields) Bytes() []byte {
	var buf bytes.Buffer
	f.writeTo(&buf)
	return buf.Bytes()
}

func (f Fields) writeTo(buf *bytes.Buffer) {
	for _, field := range f {
		buf.WriteString(strconv.Itoa(field.Tag))
		buf.WriteByte('=')
		buf.WriteString(field.Value)
		buf.WriteByte(constants.FIXDelimiter)
	}
}

// EscapeValue replaces the delimiter inside a value with the printable "\001".
func EscapeValue(value string) string {
	return strings.ReplaceAll(value, constants.FIXDelimiterStr, `\001`)
}

// UnescapeValue restores delimiters escaped by EscapeValue.
func UnescapeValue(value string) string {
	return strings.ReplaceAll(value, `\001`, constants.FIXDelimiterStr)
}

// OrderToFields maps an order to NewOrderSingle fields in ascending tag
// order. The same order always produces the same sequence. Order types
// without a FIX representation fail with fix_unsupported_value.
func OrderToFields(order models.Order) (Fields, error) {
	side, err := sideToFIX(order.Direction)
	if err != nil {
		return nil, err
	}
	ordType, err := ordTypeToFIX(order.Type)
	if err != nil {
		return nil, err
	}

	fields := Fields{
		{constants.TagOrderQty, order.Amount.String()},
		{constants.TagOrdType, ordType},
		{constants.TagSide, side},
		{constants.TagSymbol, order.InstrumentName},
	}
	if order.Label != "" {
		fields = append(fields, Field{constants.TagClOrdID, EscapeValue(order.Label)})
	}
	if inst := execInstToFIX(order.PostOnly, order.ReduceOnly); inst != "" {
		fields = append(fields, Field{constants.TagExecInst, inst})
	}
	if order.OrderID != "" {
		fields = append(fields, Field{constants.TagOrderID, order.OrderID})
	}
	if order.Price.Valid {
		fields = append(fields, Field{constants.TagPrice, order.Price.Decimal.String()})
	}
	if order.TriggerPrice.Valid {
		fields = append(fields, Field{constants.TagStopPx, order.TriggerPrice.Decimal.String()})
	}
	if order.TimeInForce != "" {
		tif, err := timeInForceToFIX(order.TimeInForce)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{constants.TagTimeInForce, tif})
	}
	return fields.Sorted(), nil
}

// Header returns the standard header fields in ascending tag order.
func Header(senderCompID, targetCompID string, seqNum int, sendingTime string) Fields {
	return Fields{
		{constants.TagMsgSeqNum, strconv.Itoa(seqNum)},
		{constants.TagSenderCompID, senderCompID},
		{constants.TagSendingTime, sendingTime},
		{constants.TagTargetCompID, targetCompID},
	}
}

func unsupported(tag int, value string) error {
	return errors.NewProtocolError(errors.FixUnsupportedValue, tag, "no mapping for "+strconv.Quote(value), nil)
}
