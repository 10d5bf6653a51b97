// Package fix provides the FIX 4.4 building blocks shared by session
// implementations: nonces, UTC timestamps, checksums, field ordering, frame
// encoding and decoding into the shared models.
//
// All functions and Decoder methods are safe for concurrent use.
package fix

import (
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"time"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
)

// GenerateNonce returns constants.NonceLength bytes from crypto/rand. Callers
// must not reuse a nonce across logons.
func GenerateNonce() ([]byte, error) {
	nonce := make([]byte, constants.NonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Wrap(err, "generate nonce")
	}
	return nonce, nil
}

// EncodeNonce returns the standard base64 form used in logon RawData.
func EncodeNonce(nonce []byte) string {
	return base64.StdEncoding.EncodeToString(nonce)
}

// FormatTimestamp renders t as a FIX UTCTimestamp (YYYYMMDD-HH:MM:SS.sss).
// Sub-millisecond precision is truncated.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.FIXTimestampLayout)
}

// ParseTimestamp parses a FIX UTCTimestamp with millisecond precision. Any
// width other than 21 characters, an invalid calendar date or a zone marker
// fails with a fix_invalid_timestamp protocol error.
func ParseTimestamp(s string) (time.Time, error) {
	if len(s) != len(constants.FIXTimestampLayout) {
		return time.Time{}, errors.NewProtocolError(errors.FixInvalidTimestamp, 0,
			"timestamp "+strconv.Quote(s)+" must be exactly 21 characters", nil)
	}
	for i := 0; i < len(s); i++ {
		want := constants.FIXTimestampLayout[i]
		if want >= '0' && want <= '9' {
			if s[i] < '0' || s[i] > '9' {
				return time.Time{}, errors.NewProtocolError(errors.FixInvalidTimestamp, 0,
					"timestamp "+strconv.Quote(s)+" has a non-digit at position "+strconv.Itoa(i), nil)
			}
		} else if s[i] != want {
			return time.Time{}, errors.NewProtocolError(errors.FixInvalidTimestamp, 0,
				"timestamp "+strconv.Quote(s)+" has "+strconv.QuoteRune(rune(s[i]))+" at position "+strconv.Itoa(i), nil)
		}
	}
	t, err := time.Parse(constants.FIXTimestampLayout, s)
	if err != nil {
		return time.Time{}, errors.NewProtocolError(errors.FixInvalidTimestamp, 0, "timestamp "+strconv.Quote(s), err)
	}
	return t, nil
}
