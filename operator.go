package criteria

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Operator is the comparison applied between a field and its value.
type Operator int

const (
	// OperatorEq matches values equal to the given value. It is the default operator.
	OperatorEq Operator = iota
	// OperatorNeq matches values different from the given value.
	OperatorNeq
	// OperatorGte matches values greater than or equal to the given value.
	OperatorGte
	// OperatorLte matches values less than or equal to the given value.
	OperatorLte
	// OperatorContains matches values containing the given value.
	OperatorContains
	// OperatorIn matches values that are one of the given values.
	OperatorIn
	// OperatorNin matches values that are none of the given values.
	OperatorNin
)

var operatorNames = [...]string{"EQ", "NEQ", "GTE", "LTE", "CONTAINS", "IN", "NIN"}

// String returns the name of the operator, e.g. "NEQ".
func (o Operator) String() string {
	if !o.IsValid() {
		return fmt.Sprintf("Operator(%d)", int(o))
	}
	return operatorNames[o]
}

// IsValid reports whether o is one of the declared operators.
func (o Operator) IsValid() bool {
	return o >= OperatorEq && int(o) < len(operatorNames)
}

// ParseOperator returns the operator with the given name.
// Names are the ones returned by [Operator.String].
func ParseOperator(name string) (Operator, error) {
	for i, n := range operatorNames {
		if n == name {
			return Operator(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (o Operator) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("unknown operator %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operator) UnmarshalText(text []byte) error {
	op, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler so operators can be written by name.
func (o *Operator) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	return o.UnmarshalText([]byte(name))
}
