package celfilter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/cel-go/common"
	"github.com/google/cel-go/parser"
	"go.alis.build/criteria"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrInvalidFilter is returned when the rendered filter is not a valid CEL
// expression, e.g. because a field name is a CEL keyword.
//
// This error implements the gRPC status interface and returns codes.InvalidArgument.
type ErrInvalidFilter struct {
	filter string // The rendered filter expression
	err    error  // The underlying parsing error
}

// Error returns a formatted error message including the filter and underlying error.
func (e ErrInvalidFilter) Error() string {
	return fmt.Sprintf("invalid filter(%s): %v", e.filter, e.err)
}

// Is implements error matching for errors.Is().
// Returns true if target is an ErrInvalidFilter or matches the underlying error.
func (e ErrInvalidFilter) Is(target error) bool {
	var errInvalidFilter ErrInvalidFilter
	return errors.As(target, &errInvalidFilter) || errors.Is(e.err, target)
}

// GRPCStatus returns the gRPC status for this error.
// Returns codes.InvalidArgument to indicate a client error.
func (e ErrInvalidFilter) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

// Options configures the behavior of [Filter].
type Options struct {
	// InferLiterals renders values that look like booleans or numbers as
	// CEL bool, int and double literals instead of strings.
	InferLiterals bool
}

// Option is a functional option for the Filter method.
type Option func(*Options)

// WithInferLiterals renders "true", "42" and "1.5" as bool, int and double
// literals. By default every value is a string literal.
func WithInferLiterals() Option {
	return func(opts *Options) {
		opts.InferLiterals = true
	}
}

var (
	intRegex    = regexp.MustCompile(`^-?[0-9]+$`)
	doubleRegex = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
)

/*
Filter renders the filter of q as a CEL expression in the AIP-160 style
accepted by CEL based filter parsers.

	name == "Alice" && age >= "18" && tag in ["a", "b"]

Operators are rendered as:

	EQ        field == v
	NEQ       field != v
	GTE       field >= v
	LTE       field <= v
	CONTAINS  field.contains(v)
	IN        field in [v, ...]
	NIN       !(field in [v, ...])

Returns an empty string when q has no filter.

May return an ErrInvalidField error if a field is not a dotted identifier, an
ErrUnsupportedComparison error if a list value is used with GTE, LTE or
CONTAINS and an ErrInvalidFilter error if the rendered expression does not
parse.
*/
func Filter(q *criteria.Query, opts ...Option) (string, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	comparisons := q.Filter().Comparisons()
	if len(comparisons) == 0 {
		return "", nil
	}

	terms := make([]string, 0, len(comparisons))
	for _, c := range comparisons {
		term, err := options.comparison(c)
		if err != nil {
			return "", err
		}
		terms = append(terms, term)
	}
	filter := strings.Join(terms, " && ")

	if err := check(filter); err != nil {
		return "", err
	}
	return filter, nil
}

// OrderBy renders the orderings of q in the AIP-132 "field [asc|desc]" syntax:
//
//	name desc, age asc
//
// Returns an empty string when q has no orderings.
//
// May return an ErrInvalidField error if a field is not a dotted identifier.
func OrderBy(q *criteria.Query) (string, error) {
	var parts []string
	var err error
	q.Orderings().Range(func(_ int, field string, order criteria.SortOrder) bool {
		if _, err = criteria.FieldPath(field); err != nil {
			return false
		}
		parts = append(parts, field+" "+strings.ToLower(order.String()))
		return true
	})
	if err != nil {
		return "", err
	}
	return strings.Join(parts, ", "), nil
}

func (o *Options) comparison(c criteria.Comparison) (string, error) {
	if _, err := criteria.FieldPath(c.Field); err != nil {
		return "", err
	}

	switch c.Operator {
	case criteria.OperatorIn:
		return fmt.Sprintf("%s in %s", c.Field, o.list(c.Value)), nil
	case criteria.OperatorNin:
		return fmt.Sprintf("!(%s in %s)", c.Field, o.list(c.Value)), nil
	}

	value, ok := c.Value.Scalar()
	if !ok {
		return "", criteria.ErrUnsupportedComparison{Comparison: c}
	}
	operand := o.literal(value)
	switch c.Operator {
	case criteria.OperatorEq:
		return fmt.Sprintf("%s == %s", c.Field, operand), nil
	case criteria.OperatorNeq:
		return fmt.Sprintf("%s != %s", c.Field, operand), nil
	case criteria.OperatorGte:
		return fmt.Sprintf("%s >= %s", c.Field, operand), nil
	case criteria.OperatorLte:
		return fmt.Sprintf("%s <= %s", c.Field, operand), nil
	case criteria.OperatorContains:
		return fmt.Sprintf("%s.contains(%s)", c.Field, operand), nil
	default:
		return "", criteria.ErrUnsupportedComparison{Comparison: c}
	}
}

func (o *Options) list(v criteria.Value) string {
	values := v.Strings()
	literals := make([]string, len(values))
	for i, s := range values {
		literals[i] = o.literal(s)
	}
	return "[" + strings.Join(literals, ", ") + "]"
}

func (o *Options) literal(s string) string {
	if o.InferLiterals {
		switch {
		case s == "true" || s == "false":
			return s
		case intRegex.MatchString(s):
			if _, err := strconv.ParseInt(s, 10, 64); err == nil {
				return s
			}
		case doubleRegex.MatchString(s):
			return s
		}
	}
	return strconv.Quote(s)
}

// check parses the rendered filter with the CEL parser.
func check(filter string) error {
	p, err := parser.NewParser()
	if err != nil {
		return ErrInvalidFilter{filter: filter, err: err}
	}

	_, errs := p.Parse(common.NewTextSource(filter))
	if errs != nil && len(errs.GetErrors()) > 0 {
		return ErrInvalidFilter{
			filter: filter,
			err:    fmt.Errorf("%s", errs.ToDisplayString()),
		}
	}
	return nil
}
