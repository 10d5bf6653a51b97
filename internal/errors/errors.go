// Package errors provides the canonical error taxonomy shared by the FIX, REST
// and WebSocket clients, plus the typed errors that carry it.
package errors

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// Transport-side sentinel errors. Collaborators wrap these around network
// failures that never reached the exchange.
var (
	ErrConnection     = errors.New("connection error")
	ErrAuthentication = errors.New("authentication error")
	ErrSerialization  = errors.New("serialization error")
	ErrTimeout        = errors.New("request timeout")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrInvalidState   = errors.New("invalid state transition")
)

// APIError is a failure reported by the exchange in a JSON-RPC error object or
// a FIX reject.
type APIError struct {
	Kind    Kind            `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Kind.Code(), e.Message)
}

// Is matches a Kind target by code.
func (e *APIError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// NewAPIError creates an APIError from a raw exchange code. An empty message is
// replaced with the kind's name.
func NewAPIError(code int, message string) *APIError {
	k := FromCode(code)
	if message == "" {
		message = k.Name()
	}
	return &APIError{Kind: k, Message: message}
}

// ValidationError represents a value rejected before it entered application logic.
type ValidationError struct {
	Kind    Kind
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s (%v): %s", e.Kind.Name(), e.Field, e.Value, e.Message)
}

// Is matches a Kind target by code.
func (e *ValidationError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// NewValidationError creates a new ValidationError.
func NewValidationError(kind Kind, field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ProtocolError represents a malformed wire fragment: a broken FIX frame,
// checksum mismatch, bad timestamp or undecodable JSON.
type ProtocolError struct {
	Kind   Kind
	Tag    int
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	prefix := fmt.Sprintf("protocol error [%s]", e.Kind.Name())
	if e.Tag != 0 {
		prefix = fmt.Sprintf("%s tag %d", prefix, e.Tag)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Reason)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Is matches a Kind target by code.
func (e *ProtocolError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// NewProtocolError creates a new ProtocolError.
func NewProtocolError(kind Kind, tag int, reason string, err error) *ProtocolError {
	return &ProtocolError{
		Kind:   kind,
		Tag:    tag,
		Reason: reason,
		Err:    err,
	}
}

// OrderError represents a refused order state transition.
type OrderError struct {
	Kind    Kind
	OrderID string
	Action  string
	Reason  string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("order error [%s] %s: %s", e.OrderID, e.Action, e.Reason)
}

// Unwrap exposes ErrInvalidState so callers can match every refused transition.
func (e *OrderError) Unwrap() error {
	return ErrInvalidState
}

// Is matches a Kind target by code.
func (e *OrderError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// NewOrderError creates a new OrderError.
func NewOrderError(kind Kind, orderID, action, reason string) *OrderError {
	return &OrderError{
		Kind:    kind,
		OrderID: orderID,
		Action:  action,
		Reason:  reason,
	}
}

// KindOf returns the Kind carried by the first typed error in err's chain.
func KindOf(err error) (Kind, bool) {
	if err == nil {
		return 0, false
	}
	var (
		apiErr   *APIError
		valErr   *ValidationError
		protoErr *ProtocolError
		orderErr *OrderError
		kind     Kind
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Kind, true
	case errors.As(err, &valErr):
		return valErr.Kind, true
	case errors.As(err, &protoErr):
		return protoErr.Kind, true
	case errors.As(err, &orderErr):
		return orderErr.Kind, true
	case errors.As(err, &kind):
		return kind, true
	}
	return 0, false
}

// CategoryOf returns the category of err. Transport sentinels map to their
// natural category; anything else without a Kind is a system error.
func CategoryOf(err error) Category {
	if k, ok := KindOf(err); ok {
		return k.Category()
	}
	switch {
	case errors.Is(err, ErrAuthentication):
		return CategoryAuthorization
	case errors.Is(err, ErrSerialization):
		return CategoryProtocol
	case errors.Is(err, ErrInvalidConfig):
		return CategoryValidation
	}
	return CategorySystem
}

// Retryable reports whether err belongs to a retry-eligible category.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	return CategoryOf(err).Retryable()
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
