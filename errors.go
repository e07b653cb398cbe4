package criteria

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrInvalidConfig is returned when a converter configuration is rejected.
// It maps to gRPC status code [codes.InvalidArgument].
type ErrInvalidConfig struct {
	err error // The underlying validation or decoding error
}

// Error returns a human-readable description of the configuration error.
func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config: %v", e.err)
}

// Is reports whether target matches this error type or the underlying error.
func (e ErrInvalidConfig) Is(target error) bool {
	var errInvalidConfig ErrInvalidConfig
	return errors.As(target, &errInvalidConfig) || errors.Is(e.err, target)
}

// Unwrap returns the underlying error.
func (e ErrInvalidConfig) Unwrap() error {
	return e.err
}

// GRPCStatus returns the gRPC status representation of the error with [codes.InvalidArgument].
func (e ErrInvalidConfig) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

// ErrInvalidField is returned by query backends when a field name cannot be
// used as a column or attribute path.
// It maps to gRPC status code [codes.InvalidArgument].
type ErrInvalidField struct {
	// Field is the rejected field name.
	Field string
}

// Error returns a human-readable description including the field name.
func (e ErrInvalidField) Error() string {
	return fmt.Sprintf("invalid field(%s): expected format \"<name>[.<name>...]\"", e.Field)
}

// Is reports whether target matches this error type.
func (e ErrInvalidField) Is(target error) bool {
	var errInvalidField ErrInvalidField
	return errors.As(target, &errInvalidField)
}

// GRPCStatus returns the gRPC status representation of the error with [codes.InvalidArgument].
func (e ErrInvalidField) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

// ErrUnsupportedComparison is returned by query backends when a comparison
// has no translation, e.g. a list value with [OperatorGte].
// It maps to gRPC status code [codes.InvalidArgument].
type ErrUnsupportedComparison struct {
	// Comparison is the rejected comparison.
	Comparison Comparison
}

// Error returns a human-readable description including the comparison.
func (e ErrUnsupportedComparison) Error() string {
	return fmt.Sprintf("unsupported comparison(%s)", e.Comparison)
}

// Is reports whether target matches this error type.
func (e ErrUnsupportedComparison) Is(target error) bool {
	var errUnsupportedComparison ErrUnsupportedComparison
	return errors.As(target, &errUnsupportedComparison)
}

// GRPCStatus returns the gRPC status representation of the error with [codes.InvalidArgument].
func (e ErrUnsupportedComparison) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}
