package criteria

import (
	"math"
	"strings"
)

/*
Converter turns query parameters into a [Query].

A Converter holds only its configuration and is safe for concurrent use.
*/
type Converter struct {
	config Config
}

/*
NewConverter creates a new Converter with the default configuration
adjusted by the given options.

May return an ErrInvalidConfig error if the resulting configuration is invalid.
*/
func NewConverter(opts ...Option) (*Converter, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config = config.clone()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Converter{config: config}, nil
}

var defaultConverter = &Converter{config: DefaultConfig()}

// Convert converts params with the default configuration.
func Convert(params *Params) *Query {
	return defaultConverter.Convert(params)
}

// Config returns a copy of the converter configuration.
func (c *Converter) Config() Config {
	return c.config.clone()
}

/*
Convert converts params into a Query.

Convert never fails. Malformed input is left out of the result: a key that is
not a condition produces no comparison, an ordering with an unknown direction
is dropped and a paging value that is not a plain decimal number is absent.

Example:

	q := converter.Convert(criteria.ParamsOf(
	    criteria.P("age>", criteria.Scalar("18")),
	    criteria.P("tag", criteria.List("a", "b")),
	    criteria.P("-order", criteria.Nested(order)), // {"name": "asc"}
	    criteria.P("-max", criteria.Scalar("20")),
	))
	// q.Filter():      age GTE "18" AND tag IN ["a" "b"]
	// q.Orderings():   {"name": SortOrderAsc}
	// q.MaxResults():  20, true
*/
func (c *Converter) Convert(params *Params) *Query {
	return &Query{
		filter:      c.filter(params),
		orderings:   c.orderings(params),
		firstResult: c.integer(params, c.config.FirstResultParam),
		maxResults:  c.integer(params, c.config.MaxResultsParam),
	}
}

// filter derives the conjunction of all condition parameters, in order.
func (c *Converter) filter(params *Params) *Conjunction {
	var comparisons []Comparison
	params.Range(func(_ int, key string, value Value) bool {
		if c.isCondition(key) {
			comparisons = append(comparisons, c.comparison(key, value))
		}
		return true
	})

	return And(comparisons...)
}

// comparison builds the comparison for a single condition parameter.
func (c *Converter) comparison(key string, value Value) Comparison {
	field, operator := key, OperatorEq
	for _, s := range c.config.Suffixes {
		if strings.HasSuffix(key, s.Suffix) {
			field = strings.TrimSuffix(key, s.Suffix)
			operator = s.Operator
			break
		}
	}

	if value.IsArray() {
		if remapped, ok := c.config.ArrayOperators[operator]; ok {
			operator = remapped
		}
		if value.Kind() == KindMap {
			value = List(value.Strings()...)
		}
	}

	return Comparison{Field: field, Operator: operator, Value: value}
}

// isCondition reports whether the raw key is a filter condition: it is not
// reserved and starts with an ASCII letter.
func (c *Converter) isCondition(key string) bool {
	if c.isReserved(key) {
		return false
	}
	return key != "" && isASCIILetter(key[0])
}

func (c *Converter) isReserved(key string) bool {
	return key == c.config.OrderParam ||
		key == c.config.FirstResultParam ||
		key == c.config.MaxResultsParam
}

// orderings derives the field orderings. Nil means no ordering key was given.
func (c *Converter) orderings(params *Params) *Orderings {
	value, ok := params.Get(c.config.OrderParam)
	if !ok {
		return nil
	}

	orderings := OrderBy()
	requested, ok := value.Map()
	if !ok {
		return orderings
	}

	requested.Range(func(_ int, field string, direction Value) bool {
		s, ok := direction.Scalar()
		if !ok {
			return true
		}
		if order, ok := parseSortOrder(toUpperASCII(s)); ok {
			orderings.Set(field, order)
		}
		return true
	})

	return orderings
}

// integer reads a paging parameter. Only non-empty strings of ASCII digits
// are accepted; anything else is absent.
func (c *Converter) integer(params *Params, key string) *int {
	value, ok := params.Get(key)
	if !ok {
		return nil
	}

	s, ok := value.Scalar()
	if !ok || s == "" {
		return nil
	}

	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil
		}
		d := int(s[i] - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt
			continue
		}
		n = n*10 + d
	}

	return &n
}

func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// toUpperASCII upper-cases ASCII letters only, leaving other runes untouched.
func toUpperASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'a' <= r && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}, s)
}
