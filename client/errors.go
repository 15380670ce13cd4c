package client

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigError.
	ErrConfiguration = errors.New("litecoin: invalid configuration")
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("litecoin: invalid argument")
	// ErrInvalidCall is returned when Call is given no method name.
	ErrInvalidCall = errors.New("litecoin: call requires a method name")
)

// ConfigError reports an invalid connection setting. No client is returned
// alongside it.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("litecoin: invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("litecoin: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }
func (e *ConfigError) Unwrap() error        { return e.Err }

// ValidationError reports an argument rejected before anything was sent.
type ValidationError struct {
	Method     string // wire name, e.g. "gettransaction"
	Param      string // argument name, e.g. "txid"
	Constraint string // e.g. "must be 64 hexadecimal characters"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Method, e.Param, e.Constraint)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// FaultError is a failure reported by the daemon itself. Code and Message are
// the daemon's, untouched.
type FaultError struct {
	Method  string
	Code    int
	Message string
}

// Error returns the daemon's message verbatim.
func (e *FaultError) Error() string {
	return e.Message
}

func invalid(method, param, constraint string) error {
	return &ValidationError{Method: method, Param: param, Constraint: constraint}
}
