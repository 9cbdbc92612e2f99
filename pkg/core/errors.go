package core

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every configuration error
var ErrInvalidConfig = errors.New("invalid config")

// InvalidConfigError names the offending field and value
type InvalidConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// NewInvalidConfig builds an InvalidConfigError
func NewInvalidConfig(field string, value any, reason string) error {
	return &InvalidConfigError{Field: field, Value: value, Reason: reason}
}
