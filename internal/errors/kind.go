package errors

import (
	"fmt"
	"sort"
)

// Category is the coarse classification collaborators use to decide whether a
// failure is worth retrying.
type Category string

const (
	CategoryAuthorization Category = "authorization"
	CategoryRateLimit     Category = "rate_limit"
	CategoryValidation    Category = "validation"
	CategoryTrading       Category = "trading"
	CategorySystem        Category = "system"
	CategoryProtocol      Category = "protocol"
)

// Retryable reports whether failures in this category may succeed when the
// same request is repeated later. Backoff and attempt limits are the caller's.
func (c Category) Retryable() bool {
	return c == CategoryRateLimit || c == CategorySystem
}

// Kind identifies one failure cause by its numeric code. Codes the exchange
// introduces after this table was written are kept as-is and report
// IsUnknown() == true.
type Kind int

type kindInfo struct {
	name        string
	category    Category
	description string
}

// sortedKinds is filled once in init and never modified.
var sortedKinds []Kind

func init() {
	sortedKinds = make([]Kind, 0, len(kindTable))
	for k := range kindTable {
		sortedKinds = append(sortedKinds, k)
	}
	sort.Slice(sortedKinds, func(i, j int) bool { return sortedKinds[i] < sortedKinds[j] })
}

// FromCode maps a numeric code to its Kind. It never fails.
func FromCode(code int) Kind {
	return Kind(code)
}

// FromHTTPStatus maps an HTTP status returned by the REST gateway to a Kind.
// Statuses without a dedicated kind are preserved as unknown kinds.
func FromHTTPStatus(status int) Kind {
	switch status {
	case 400:
		return BadRequest
	case 401:
		return Unauthorized
	case 403:
		return Forbidden
	case 404:
		return NotFound
	case 429:
		return TooManyRequests
	case 500:
		return InternalServerError
	case 503:
		return TemporarilyUnavailable
	default:
		return Kind(status)
	}
}

// Kinds returns every known kind in ascending code order.
func Kinds() []Kind {
	out := make([]Kind, len(sortedKinds))
	copy(out, sortedKinds)
	return out
}

// Code returns the numeric code.
func (k Kind) Code() int {
	return int(k)
}

// IsUnknown reports whether the code is absent from the table.
func (k Kind) IsUnknown() bool {
	_, ok := kindTable[k]
	return !ok
}

// IsSuccess reports whether k is the exchange's "no error" code.
func (k Kind) IsSuccess() bool {
	return k == Success
}

// Name returns the snake_case identifier used by the exchange.
func (k Kind) Name() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return "unknown_error"
}

// Category returns the classification of k. Unknown kinds are system failures.
func (k Kind) Category() Category {
	if info, ok := kindTable[k]; ok {
		return info.category
	}
	return CategorySystem
}

// Description returns the human-readable meaning of k.
func (k Kind) Description() string {
	if info, ok := kindTable[k]; ok {
		return info.description
	}
	return fmt.Sprintf("Unknown error code %d", int(k))
}

func (k Kind) String() string {
	return fmt.Sprintf("%s(%d)", k.Name(), int(k))
}

// Error lets a Kind be used as an errors.Is target.
func (k Kind) Error() string {
	return k.Name()
}

// IsAuthorizationError reports whether k belongs to CategoryAuthorization.
func (k Kind) IsAuthorizationError() bool { return k.Category() == CategoryAuthorization }

// IsRateLimitError reports whether k belongs to CategoryRateLimit.
func (k Kind) IsRateLimitError() bool { return k.Category() == CategoryRateLimit }

// IsValidationError reports whether k belongs to CategoryValidation.
func (k Kind) IsValidationError() bool { return k.Category() == CategoryValidation }

// IsTradingError reports whether k belongs to CategoryTrading.
func (k Kind) IsTradingError() bool { return k.Category() == CategoryTrading }
