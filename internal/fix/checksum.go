package fix

import (
	"bytes"
	"fmt"
	"strconv"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
)

// checksumMarker precedes the trailing CheckSum field in every frame.
var checksumMarker = []byte(constants.FIXDelimiterStr + strconv.Itoa(constants.TagCheckSum) + "=")

// ComputeChecksum returns the sum of msg's bytes modulo 256. msg must cover
// everything up to and including the delimiter before "10=".
func ComputeChecksum(msg []byte) uint8 {
	var sum uint8
	for _, b := range msg {
		sum += b
	}
	return sum
}

// ValidateChecksum reports whether claimed matches the checksum of msg.
func ValidateChecksum(msg []byte, claimed uint8) bool {
	return ComputeChecksum(msg) == claimed
}

// FormatChecksum renders a checksum as the three-digit CheckSum value.
func FormatChecksum(sum uint8) string {
	return fmt.Sprintf("%03d", sum)
}

// VerifyFrame checks the trailing CheckSum field of a complete frame.
func VerifyFrame(frame []byte) error {
	idx := bytes.LastIndex(frame, checksumMarker)
	if idx < 0 {
		return errors.NewProtocolError(errors.FixMissingField, constants.TagCheckSum, "frame has no checksum field", nil)
	}
	body := frame[:idx+1]
	value := frame[idx+len(checksumMarker):]
	if len(value) != 4 || value[3] != constants.FIXDelimiter {
		return errors.NewProtocolError(errors.FixMalformedFrame, constants.TagCheckSum, "checksum must be three digits followed by the delimiter", nil)
	}
	claimed, err := strconv.ParseUint(string(value[:3]), 10, 8)
	if err != nil {
		return errors.NewProtocolError(errors.FixMalformedFrame, constants.TagCheckSum, "checksum is not a number below 256", err)
	}
	if !ValidateChecksum(body, uint8(claimed)) {
		return errors.NewProtocolError(errors.FixChecksumMismatch, constants.TagCheckSum,
			fmt.Sprintf("claimed %03d, computed %03d", claimed, ComputeChecksum(body)), nil)
	}
	return nil
}
