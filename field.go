package criteria

import (
	"regexp"
	"strings"
)

var fieldPathRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)

// FieldPath splits a dotted field name such as "user.address.city" into its
// segments.
//
// Conversion accepts any field name; backends that map fields onto columns
// or attributes call FieldPath to reject names that are not dotted
// identifiers.
//
// Returns [ErrInvalidField] if the field is not a dotted identifier.
func FieldPath(field string) ([]string, error) {
	if !fieldPathRegex.MatchString(field) {
		return nil, ErrInvalidField{Field: field}
	}
	return strings.Split(field, "."), nil
}
