package review

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when no source code was submitted
var ErrEmptyInput = errors.New("paste some code first")

// ValidationError reports an out-of-range or unknown request parameter
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports a missing credential or a client that could not be created
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("failed to initialize GenAI client: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// TransportError wraps a failed remote call
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("API call failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
