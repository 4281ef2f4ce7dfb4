package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the sentinel every InvalidParameterError unwraps to.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError reports an assumption or case input outside its
// documented domain.
type InvalidParameterError struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// NewInvalidParameterError builds an InvalidParameterError, rendering value
// with its default format.
func NewInvalidParameterError(field string, value interface{}, reason string) *InvalidParameterError {
	return &InvalidParameterError{
		Field:  field,
		Value:  fmt.Sprint(value),
		Reason: reason,
	}
}

func (e *InvalidParameterError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid parameter %s=%s: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}
