package criteria

import "fmt"

// Comparison is a single filter condition: Field Operator Value.
type Comparison struct {
	Field    string
	Operator Operator
	// Value is a scalar for single valued conditions and a list for
	// array valued ones (see [Value.IsArray]).
	Value Value
}

// String renders the comparison for diagnostics, e.g. `age GTE "18"`.
func (c Comparison) String() string {
	if s, ok := c.Value.Scalar(); ok {
		return fmt.Sprintf("%s %s %q", c.Field, c.Operator, s)
	}
	return fmt.Sprintf("%s %s %q", c.Field, c.Operator, c.Value.Strings())
}

// Conjunction is a flat logical AND of comparisons, in the order they were
// derived from the query parameters.
type Conjunction struct {
	comparisons []Comparison
}

// And returns the conjunction of the given comparisons, or nil when there
// are none.
func And(comparisons ...Comparison) *Conjunction {
	if len(comparisons) == 0 {
		return nil
	}
	return &Conjunction{comparisons: append([]Comparison{}, comparisons...)}
}

// Comparisons returns a copy of the comparisons in the conjunction.
func (c *Conjunction) Comparisons() []Comparison {
	if c == nil {
		return nil
	}
	return append([]Comparison{}, c.comparisons...)
}

// Len returns the number of comparisons.
func (c *Conjunction) Len() int {
	if c == nil {
		return 0
	}
	return len(c.comparisons)
}
