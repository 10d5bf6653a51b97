package fix

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
	"deribit-common/internal/models"
)

func requireProtocolKind(t *testing.T, err error, want errors.Kind) *errors.ProtocolError {
	t.Helper()
	require.Error(t, err)
	var protoErr *errors.ProtocolError
	require.True(t, errors.As(err, &protoErr), "expected *ProtocolError, got %T: %v", err, err)
	assert.Equal(t, want, protoErr.Kind, protoErr.Error())
	return protoErr
}

func TestChecksumKnownFrame(t *testing.T) {
	prefix := []byte("8=FIX.4.4\x019=5\x0135=A\x01")
	assert.Equal(t, uint8(180), ComputeChecksum(prefix))
	assert.Equal(t, ComputeChecksum(prefix), ComputeChecksum(prefix))
	assert.True(t, ValidateChecksum(prefix, 180))
	assert.False(t, ValidateChecksum(prefix, 181))

	frame := Encode(constants.MsgTypeLogon, nil, nil)
	assert.Equal(t, "8=FIX.4.4\x019=5\x0135=A\x0110=180\x01", string(frame))
	assert.NoError(t, VerifyFrame(frame))
}

func TestFormatChecksum(t *testing.T) {
	assert.Equal(t, "000", FormatChecksum(0))
	assert.Equal(t, "007", FormatChecksum(7))
	assert.Equal(t, "255", FormatChecksum(255))
}

func TestVerifyFrameFailures(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		kind  errors.Kind
	}{
		{"no checksum", "8=FIX.4.4\x019=5\x0135=A\x01", errors.FixMissingField},
		{"wrong checksum", "8=FIX.4.4\x019=5\x0135=A\x0110=181\x01", errors.FixChecksumMismatch},
		{"two digits", "8=FIX.4.4\x019=5\x0135=A\x0110=18\x01", errors.FixMalformedFrame},
		{"no trailing delimiter", "8=FIX.4.4\x019=5\x0135=A\x0110=180", errors.FixMalformedFrame},
		{"out of range", "8=FIX.4.4\x019=5\x0135=A\x0110=999\x01", errors.FixMalformedFrame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyFrame([]byte(tt.frame))
			p := requireProtocolKind(t, err, tt.kind)
			assert.Equal(t, constants.TagCheckSum, p.Tag)
		})
	}
}

func TestChecksumDetectsSingleByteCorruption(t *testing.T) {
	order := limitOrder()
	body, err := OrderToFields(order)
	require.NoError(t, err)
	frame := Encode(constants.MsgTypeNewOrderSingle, Header("CLIENT", constants.FIXTargetCompID, 7, "20240102-03:04:05.678"), body)
	require.NoError(t, VerifyFrame(frame))

	rng := rand.New(rand.NewSource(42))
	const trials = 10000
	detected := 0
	for i := 0; i < trials; i++ {
		mutated := append([]byte(nil), frame...)
		mutated[rng.Intn(len(mutated))] += byte(1 + rng.Intn(255))
		if VerifyFrame(mutated) != nil {
			detected++
		}
	}
	assert.GreaterOrEqual(t, float64(detected)/trials, 0.99)
}

func TestTimestampRoundTrip(t *testing.T) {
	at := time.Date(2024, time.February, 29, 23, 59, 59, 999_000_000, time.UTC)
	s := FormatTimestamp(at)
	assert.Equal(t, "20240229-23:59:59.999", s)

	back, err := ParseTimestamp(s)
	require.NoError(t, err)
	assert.True(t, at.Equal(back))
	assert.Equal(t, time.UTC, back.Location())
}

func TestFormatTimestampNormalizesToUTC(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2024, time.January, 2, 5, 4, 5, 678_900_000, zone)
	assert.Equal(t, "20240102-03:04:05.678", FormatTimestamp(at))
}

func TestParseTimestampRejectsMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"20240102-03:04:05",
		"20240102-03:04:05.6789",
		"20240230-03:04:05.678",
		"20241301-03:04:05.678",
		"20240102-25:04:05.678",
		"20240102-03:04:05.678Z",
		"20240102-03:04:05.678+00:00",
		"20240102-03:04:05,678",
		"2024-01-02T03:04:05.6",
		"20240102 03:04:05.678",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseTimestamp(s)
			requireProtocolKind(t, err, errors.FixInvalidTimestamp)
		})
	}
}

func TestGenerateNonce(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		nonce, err := GenerateNonce()
		require.NoError(t, err)
		require.Len(t, nonce, constants.NonceLength)
		key := EncodeNonce(nonce)
		require.False(t, seen[key], "nonce repeated")
		seen[key] = true
	}
}

func TestGenerateNonceConcurrent(t *testing.T) {
	const workers, each = 8, 200
	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				nonce, err := GenerateNonce()
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				seen[EncodeNonce(nonce)] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*each)
}

func limitOrder() models.Order {
	return models.Order{
		OrderID:        "ORD-1",
		Label:          "grid_7",
		InstrumentName: "BTC-PERPETUAL",
		Direction:      models.DirectionSell,
		Type:           models.OrderTypeLimit,
		TimeInForce:    models.ImmediateOrCancel,
		Price:          decimal.NewNullDecimal(decimal.RequireFromString("50000.5")),
		Amount:         decimal.RequireFromString("1.5"),
		State:          models.OrderStateOpen,
		PostOnly:       true,
		ReduceOnly:     true,
	}
}

func TestOrderToFields(t *testing.T) {
	fields, err := OrderToFields(limitOrder())
	require.NoError(t, err)

	assert.Equal(t, Fields{
		{constants.TagClOrdID, "grid_7"},
		{constants.TagExecInst, "6 E"},
		{constants.TagOrderID, "ORD-1"},
		{constants.TagOrderQty, "1.5"},
		{constants.TagOrdType, "2"},
		{constants.TagPrice, "50000.5"},
		{constants.TagSide, "2"},
		{constants.TagSymbol, "BTC-PERPETUAL"},
		{constants.TagTimeInForce, "3"},
	}, fields)

	again, err := OrderToFields(limitOrder())
	require.NoError(t, err)
	assert.Equal(t, fields.Bytes(), again.Bytes())
}

func TestOrderToFieldsMarketOrder(t *testing.T) {
	order := limitOrder()
	order.Type = models.OrderTypeMarket
	order.Price = decimal.NullDecimal{}
	order.Label, order.OrderID = "", ""
	order.PostOnly, order.ReduceOnly = false, false

	fields, err := OrderToFields(order)
	require.NoError(t, err)
	_, hasPrice := fields.Get(constants.TagPrice)
	assert.False(t, hasPrice)
	_, hasExecInst := fields.Get(constants.TagExecInst)
	assert.False(t, hasExecInst)
	ordType, _ := fields.Get(constants.TagOrdType)
	assert.Equal(t, "1", ordType)
}

func TestOrderToFieldsUnsupported(t *testing.T) {
	order := limitOrder()
	order.Type = models.OrderTypeTrailingStop
	_, err := OrderToFields(order)
	p := requireProtocolKind(t, err, errors.FixUnsupportedValue)
	assert.Equal(t, constants.TagOrdType, p.Tag)

	order = limitOrder()
	order.Direction = models.DirectionZero
	_, err = OrderToFields(order)
	requireProtocolKind(t, err, errors.FixUnsupportedValue)
}

func TestEscapeValue(t *testing.T) {
	raw := "a\x01b"
	escaped := EscapeValue(raw)
	assert.Equal(t, `a\001b`, escaped)
	assert.NotContains(t, escaped, constants.FIXDelimiterStr)
	assert.Equal(t, raw, UnescapeValue(escaped))
}

func TestLogonFields(t *testing.T) {
	nonce := make([]byte, constants.NonceLength)
	for i := range nonce {
		nonce[i] = byte(i)
	}
	now := time.UnixMilli(1700000000000)

	fields, err := LogonFields(Credentials{ClientID: "client", ClientSecret: "secret"}, now, nonce, 0)
	require.NoError(t, err)

	rawData := "1700000000000.AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8="
	assert.Equal(t, Fields{
		{constants.TagRawDataLength, "58"},
		{constants.TagRawData, rawData},
		{constants.TagHeartBtInt, "30"},
		{constants.TagUsername, "client"},
		{constants.TagPassword, "xPrs83kdM7U3ZWid4KPcTCw9nMhvvYeo0vHAo5AbW9s="},
	}, fields)
	assert.Equal(t, fields, fields.Sorted())
}

func TestLogonFieldsHeartbeat(t *testing.T) {
	nonce := make([]byte, constants.NonceLength)
	creds := Credentials{ClientID: "client", ClientSecret: "secret"}

	fields, err := LogonFields(creds, time.Now(), nonce, 10*time.Second+500*time.Millisecond)
	require.NoError(t, err)
	v, ok := fields.Get(constants.TagHeartBtInt)
	require.True(t, ok)
	assert.Equal(t, "10", v)

	_, err = LogonFields(creds, time.Now(), nonce, 500*time.Millisecond)
	assert.True(t, errors.Is(err, errors.InvalidArguments))
}

func TestLogonFieldsRejectsBadInput(t *testing.T) {
	nonce := make([]byte, constants.NonceLength)
	now := time.Now()

	_, err := LogonFields(Credentials{ClientSecret: "s"}, now, nonce, 0)
	assert.True(t, errors.Is(err, errors.InvalidArguments))
	_, err = LogonFields(Credentials{ClientID: "c"}, now, nonce, 0)
	assert.True(t, errors.Is(err, errors.InvalidArguments))
	_, err = LogonFields(Credentials{ClientID: "c", ClientSecret: "s"}, now, nonce[:8], 0)
	assert.True(t, errors.Is(err, errors.InvalidArguments))
}

func TestCredentialsStringHidesSecret(t *testing.T) {
	s := Credentials{ClientID: "client", ClientSecret: "topsecret"}.String()
	assert.Contains(t, s, "client")
	assert.NotContains(t, s, "topsecret")
}

func TestEncodeDecode(t *testing.T) {
	header := Header("CLIENT", constants.FIXTargetCompID, 12, "20240102-03:04:05.678")
	body := Fields{{constants.TagText, "hello"}}
	frame := Encode(constants.MsgTypeReject, header, body)

	msg, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, constants.MsgTypeReject, msg.MsgType)
	assert.Equal(t, append(append(Fields{}, header...), body...), msg.Fields)

	seq, ok, err := msg.GetInt(constants.TagMsgSeqNum)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(12), seq)

	_, ok, err = msg.GetInt(constants.TagOrderQty)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = msg.GetDecimal(constants.TagText)
	requireProtocolKind(t, err, errors.FixMalformedFrame)
}

func TestDecodeRejectsBadFrames(t *testing.T) {
	good := Encode(constants.MsgTypeHeartbeat, nil, Fields{{constants.TagText, "x"}})

	badLength := bytes.Replace(good, []byte("9=10\x01"), []byte("9=11\x01"), 1)
	require.NotEqual(t, good, badLength)
	_, err := Decode(resign(badLength))
	p := requireProtocolKind(t, err, errors.FixMalformedFrame)
	assert.Equal(t, constants.TagBodyLength, p.Tag)

	wrongVersion := bytes.Replace(good, []byte("FIX.4.4"), []byte("FIX.4.2"), 1)
	_, err = Decode(resign(wrongVersion))
	requireProtocolKind(t, err, errors.FixMalformedFrame)

	garbage := resign([]byte("8=FIX.4.4\x019=7\x0135=0\x01junk\x0110=000\x01"))
	_, err = Decode(garbage)
	requireProtocolKind(t, err, errors.FixMalformedFrame)

	_, err = Decode(append(good[:len(good)-2:len(good)-2], '9', 0x01))
	requireProtocolKind(t, err, errors.FixChecksumMismatch)
}

// resign replaces the trailing checksum so that only the property under test
// is wrong.
func resign(frame []byte) []byte {
	idx := bytes.LastIndex(frame, checksumMarker)
	out := append([]byte(nil), frame[:idx+1]...)
	return append(out, []byte("10="+FormatChecksum(ComputeChecksum(out))+"\x01")...)
}

func executionReport(extra ...Field) []byte {
	body := Fields{
		{constants.TagAvgPx, "50000.5"},
		{constants.TagClOrdID, "grid_7"},
		{constants.TagCommission, "0.0001"},
		{constants.TagCumQty, "0.5"},
		{constants.TagExecID, "EXEC-1"},
		{constants.TagExecInst, "6"},
		{constants.TagLastPx, "50000.5"},
		{constants.TagLastQty, "0.5"},
		{constants.TagOrderID, "ORD-1"},
		{constants.TagOrderQty, "1.5"},
		{constants.TagOrdStatus, "1"},
		{constants.TagOrdType, "2"},
		{constants.TagPrice, "50000.5"},
		{constants.TagSide, "1"},
		{constants.TagSymbol, "BTC-PERPETUAL"},
		{constants.TagTimeInForce, "1"},
		{constants.TagTransactTime, "20240102-03:04:05.678"},
		{constants.TagExecType, "F"},
	}
	body = append(body, extra...)
	return Encode(constants.MsgTypeExecutionReport, Header(constants.FIXTargetCompID, "CLIENT", 3, "20240102-03:04:05.679"), body)
}

func TestDecoderDecodeOrder(t *testing.T) {
	order, err := NewDecoder(zerolog.Nop()).DecodeOrder(executionReport())
	require.NoError(t, err)

	at := time.Date(2024, time.January, 2, 3, 4, 5, 678_000_000, time.UTC)
	assert.Equal(t, "ORD-1", order.OrderID)
	assert.Equal(t, "grid_7", order.Label)
	assert.Equal(t, "BTC-PERPETUAL", order.InstrumentName)
	assert.Equal(t, models.DirectionBuy, order.Direction)
	assert.Equal(t, models.OrderTypeLimit, order.Type)
	assert.Equal(t, models.GoodTilCancelled, order.TimeInForce)
	assert.Equal(t, models.OrderStateOpen, order.State)
	assert.True(t, order.Price.Valid)
	assert.True(t, order.Price.Decimal.Equal(decimal.RequireFromString("50000.5")))
	assert.True(t, order.Amount.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, order.FilledAmount.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, order.AveragePrice.Equal(decimal.RequireFromString("50000.5")))
	assert.True(t, order.PostOnly)
	assert.False(t, order.ReduceOnly)
	assert.True(t, order.CreatedAt.Equal(at))
	assert.True(t, order.UpdatedAt.Equal(at))
}

func TestDecoderDecodeTrade(t *testing.T) {
	trade, err := NewDecoder(zerolog.Nop()).DecodeTrade(executionReport())
	require.NoError(t, err)

	assert.Equal(t, "EXEC-1", trade.TradeID)
	assert.Equal(t, "ORD-1", trade.OrderID)
	assert.Equal(t, models.DirectionBuy, trade.Direction)
	assert.True(t, trade.Amount.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, trade.Price.Equal(decimal.RequireFromString("50000.5")))
	assert.True(t, trade.Fee.Equal(decimal.RequireFromString("0.0001")))
	assert.Equal(t, "grid_7", trade.Label)
	assert.Equal(t, int64(1704164645678), trade.Timestamp.UnixMilli())
}

func TestDecoderUntriggeredStatus(t *testing.T) {
	frame := Encode(constants.MsgTypeExecutionReport, nil, Fields{
		{constants.TagOrderID, "ORD-2"},
		{constants.TagOrderQty, "10"},
		{constants.TagOrdStatus, "A"},
		{constants.TagOrdType, "4"},
		{constants.TagPrice, "100"},
		{constants.TagSide, "2"},
		{constants.TagSymbol, "ETH-PERPETUAL"},
		{constants.TagStopPx, "95"},
	})
	order, err := NewDecoder(zerolog.Nop()).DecodeOrder(frame)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStateUntriggered, order.State)
	assert.Equal(t, models.OrderTypeStopLimit, order.Type)
	assert.Equal(t, models.DirectionSell, order.Direction)
	require.True(t, order.TriggerPrice.Valid)
	assert.True(t, order.TriggerPrice.Decimal.Equal(decimal.RequireFromString("95")))

	fields, err := OrderToFields(order)
	require.NoError(t, err)
	stopPx, ok := fields.Get(constants.TagStopPx)
	require.True(t, ok)
	assert.Equal(t, "95", stopPx)
}

func TestDecoderFailures(t *testing.T) {
	var buf bytes.Buffer
	dec := NewDecoder(zerolog.New(&buf).Level(zerolog.DebugLevel))

	frame := Encode(constants.MsgTypeExecutionReport, nil, Fields{
		{constants.TagOrderQty, "1"},
		{constants.TagOrdStatus, "0"},
		{constants.TagSide, "1"},
		{constants.TagSymbol, "BTC-PERPETUAL"},
	})
	_, err := dec.DecodeOrder(frame)
	p := requireProtocolKind(t, err, errors.FixMissingField)
	assert.Equal(t, constants.TagOrderID, p.Tag)
	assert.Contains(t, buf.String(), "decode_failure")
	assert.Contains(t, buf.String(), `"transport":"fix"`)
	assert.Contains(t, buf.String(), "35=8|")

	_, err = dec.DecodeOrder(executionReport(Field{constants.TagText, "x"})[:20])
	assert.Error(t, err)

	_, err = dec.DecodeOrder(Encode(constants.MsgTypeLogon, nil, nil))
	requireProtocolKind(t, err, errors.FixUnsupportedValue)

	zeroQty := bytes.Replace(executionReport(), []byte("\x0138=1.5\x01"), []byte("\x0138=0.0\x01"), 1)
	_, err = dec.DecodeOrder(resign(zeroQty))
	assert.True(t, errors.Is(err, errors.InvalidAmount), "%v", err)

	badTime := bytes.Replace(executionReport(), []byte("60=20240102-03:04:05.678"), []byte("60=20240132-03:04:05.678"), 1)
	_, err = dec.DecodeOrder(resign(badTime))
	requireProtocolKind(t, err, errors.FixInvalidTimestamp)

	badSide := bytes.Replace(executionReport(), []byte("\x0154=1\x01"), []byte("\x0154=9\x01"), 1)
	_, err = dec.DecodeTrade(resign(badSide))
	requireProtocolKind(t, err, errors.FixUnsupportedValue)
}

func TestDecodeTradeRequiresFill(t *testing.T) {
	frame := bytes.Replace(executionReport(), []byte("150=F"), []byte("150=0"), 1)
	_, err := NewDecoder(zerolog.Nop()).DecodeTrade(resign(frame))
	p := requireProtocolKind(t, err, errors.FixUnsupportedValue)
	assert.Equal(t, constants.TagExecType, p.Tag)
}
