package fix

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
)

// Message is a decoded frame. Fields excludes BeginString, BodyLength, MsgType
// and CheckSum.
type Message struct {
	MsgType string
	Fields  Fields
}

// Get returns the value of tag.
func (m *Message) Get(tag int) (string, bool) {
	return m.Fields.Get(tag)
}

// Require returns the value of tag or a fix_missing_field error.
func (m *Message) Require(tag int) (string, error) {
	v, ok := m.Fields.Get(tag)
	if !ok || v == "" {
		return "", errors.NewProtocolError(errors.FixMissingField, tag, "required field is absent", nil)
	}
	return v, nil
}

// GetInt parses tag as a base-10 integer.
func (m *Message) GetInt(tag int) (int64, bool, error) {
	v, ok := m.Fields.Get(tag)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, true, errors.NewProtocolError(errors.FixMalformedFrame, tag, "not an integer: "+strconv.Quote(v), err)
	}
	return n, true, nil
}

// GetDecimal parses tag as a decimal number.
func (m *Message) GetDecimal(tag int) (decimal.Decimal, bool, error) {
	v, ok := m.Fields.Get(tag)
	if !ok {
		return decimal.Zero, false, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, true, errors.NewProtocolError(errors.FixMalformedFrame, tag, "not a decimal: "+strconv.Quote(v), err)
	}
	return d, true, nil
}

// Encode builds a complete frame: BeginString, BodyLength and MsgType, then
// header and body in the order given, then CheckSum.
func Encode(msgType string, header, body Fields) []byte {
	var payload bytes.Buffer
	Fields{{constants.TagMsgType, msgType}}.writeTo(&payload)
	header.writeTo(&payload)
	body.writeTo(&payload)

	var frame bytes.Buffer
	Fields{
		{constants.TagBeginString, constants.FIXVersion},
		{constants.TagBodyLength, strconv.Itoa(payload.Len())},
	}.writeTo(&frame)
	frame.Write(payload.Bytes())
	sum := ComputeChecksum(frame.Bytes())
	Fields{{constants.TagCheckSum, FormatChecksum(sum)}}.writeTo(&frame)
	return frame.Bytes()
}

// Decode parses and verifies a complete frame. The first three fields must be
// BeginString, BodyLength and MsgType, BodyLength must match, and the
// CheckSum must be correct.
func Decode(frame []byte) (*Message, error) {
	if err := VerifyFrame(frame); err != nil {
		return nil, err
	}
	fields, err := splitFields(frame)
	if err != nil {
		return nil, err
	}
	if len(fields) < 4 {
		return nil, errors.NewProtocolError(errors.FixMalformedFrame, 0, "frame has fewer than four fields", nil)
	}
	if fields[0].Tag != constants.TagBeginString || fields[0].Value != constants.FIXVersion {
		return nil, errors.NewProtocolError(errors.FixMalformedFrame, constants.TagBeginString, "frame must start with 8=FIX.4.4", nil)
	}
	if fields[1].Tag != constants.TagBodyLength {
		return nil, errors.NewProtocolError(errors.FixMalformedFrame, constants.TagBodyLength, "BodyLength must be the second field", nil)
	}
	if fields[2].Tag != constants.TagMsgType || fields[2].Value == "" {
		return nil, errors.NewProtocolError(errors.FixMalformedFrame, constants.TagMsgType, "MsgType must be the third field", nil)
	}

	declared, err := strconv.Atoi(fields[1].Value)
	if err != nil || declared < 0 {
		return nil, errors.NewProtocolError(errors.FixMalformedFrame, constants.TagBodyLength, "BodyLength is not a number", err)
	}
	start := len(fields[:2].Bytes())
	end := bytes.LastIndex(frame, checksumMarker) + 1
	if actual := end - start; actual != declared {
		return nil, errors.NewProtocolError(errors.FixMalformedFrame, constants.TagBodyLength,
			"declared "+strconv.Itoa(declared)+", actual "+strconv.Itoa(actual), nil)
	}

	return &Message{
		MsgType: fields[2].Value,
		Fields:  fields[3 : len(fields)-1],
	}, nil
}

func splitFields(frame []byte) (Fields, error) {
	if len(frame) == 0 || frame[len(frame)-1] != constants.FIXDelimiter {
		return nil, errors.NewProtocolError(errors.FixMalformedFrame, 0, "frame must end with the delimiter", nil)
	}
	parts := bytes.Split(frame[:len(frame)-1], []byte(constants.FIXDelimiterStr))
	fields := make(Fields, 0, len(parts))
	for _, part := range parts {
		eq := bytes.IndexByte(part, '=')
		if eq <= 0 {
			return nil, errors.NewProtocolError(errors.FixMalformedFrame, 0, "field "+strconv.Quote(string(part))+" is not tag=value", nil)
		}
		tag, err := strconv.Atoi(string(part[:eq]))
		if err != nil || tag <= 0 {
			return nil, errors.NewProtocolError(errors.FixMalformedFrame, 0, "field tag "+strconv.Quote(string(part[:eq]))+" is not a positive integer", err)
		}
		fields = append(fields, Field{Tag: tag, Value: string(part[eq+1:])})
	}
	return fields, nil
}
