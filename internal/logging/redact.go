package logging

import (
	"regexp"
	"strconv"
	"strings"

	"deribit-common/internal/constants"
)

// redactedFIXTags are masked by RedactFIX.
var redactedFIXTags = map[string]bool{
	strconv.Itoa(constants.TagPassword): true,
	strconv.Itoa(constants.TagRawData):  true,
}

// sensitiveJSONField matches string members whose value must never be logged.
var sensitiveJSONField = regexp.MustCompile(`"(client_secret|access_token|refresh_token|signature|password)"(\s*:\s*)"([^"]*)"`)

// sensitivePatterns contains regex patterns for key=value secrets in free text.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(client[_-]?secret|access[_-]?token|refresh[_-]?token|signature|password)[=:]\s*["']?([^\s"'&,]+)["']?`),
}

// MaskSecret keeps the first and last four characters of long values and
// masks the rest.
func MaskSecret(value string) string {
	if len(value) == 0 {
		return ""
	}
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	if len(value) <= 8 {
		return value[:2] + strings.Repeat("*", len(value)-2)
	}
	return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
}

// RedactFIX renders a FIX frame for logs: SOH becomes '|' and the logon
// password and raw data are masked.
func RedactFIX(frame []byte) string {
	fields := strings.Split(string(frame), constants.FIXDelimiterStr)
	for i, f := range fields {
		tag, value, ok := strings.Cut(f, "=")
		if ok && redactedFIXTags[tag] {
			fields[i] = tag + "=" + MaskSecret(value)
		}
	}
	return strings.Join(fields, "|")
}

// RedactJSON masks credential members in a JSON payload.
func RedactJSON(payload []byte) string {
	return sensitiveJSONField.ReplaceAllStringFunc(string(payload), func(match string) string {
		parts := sensitiveJSONField.FindStringSubmatch(match)
		return `"` + parts[1] + `"` + parts[2] + `"` + MaskSecret(parts[3]) + `"`
	})
}

// RedactString masks key=value or key: value secrets in free text.
func RedactString(input string) string {
	result := input
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			parts := pattern.FindStringSubmatch(match)
			return strings.Replace(match, parts[2], MaskSecret(parts[2]), 1)
		})
	}
	return result
}
