package fix

import (
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"time"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
)

// Credentials are the API key pair used to sign a logon.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// String never prints the secret.
func (c Credentials) String() string {
	return "Credentials{ClientID: " + c.ClientID + "}"
}

// LogonFields returns the signed Logon (35=A) body in ascending tag order.
// heartbeat becomes HeartBtInt in whole seconds; zero uses the default of
// constants.FIXHeartbeatInterval.
//
//	RawData  = <now in ms> "." base64(nonce)
//	Password = base64(sha256(RawData + ClientSecret))
func LogonFields(creds Credentials, now time.Time, nonce []byte, heartbeat time.Duration) (Fields, error) {
	if creds.ClientID == "" {
		return nil, errors.NewValidationError(errors.InvalidArguments, "client_id", "", "must not be empty")
	}
	if creds.ClientSecret == "" {
		return nil, errors.NewValidationError(errors.InvalidArguments, "client_secret", "", "must not be empty")
	}
	if len(nonce) < constants.NonceLength {
		return nil, errors.NewValidationError(errors.InvalidArguments, "nonce", len(nonce),
			"must be at least "+strconv.Itoa(constants.NonceLength)+" bytes")
	}

	if heartbeat == 0 {
		heartbeat = time.Duration(constants.FIXHeartbeatInterval) * time.Second
	}
	if heartbeat < time.Second {
		return nil, errors.NewValidationError(errors.InvalidArguments, "heartbeat_interval", heartbeat.String(), "must be at least one second")
	}

	rawData := strconv.FormatInt(now.UnixMilli(), 10) + "." + EncodeNonce(nonce)
	digest := sha256.Sum256([]byte(rawData + creds.ClientSecret))

	return Fields{
		{constants.TagRawDataLength, strconv.Itoa(len(rawData))},
		{constants.TagRawData, rawData},
		{constants.TagHeartBtInt, strconv.FormatInt(int64(heartbeat/time.Second), 10)},
		{constants.TagUsername, creds.ClientID},
		{constants.TagPassword, base64.StdEncoding.EncodeToString(digest[:])},
	}, nil
}
