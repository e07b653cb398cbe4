package criteria

import (
	"maps"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultOrderParam is the reserved key holding the requested orderings.
	DefaultOrderParam = "-order"
	// DefaultFirstResultParam is the reserved key holding the first result offset.
	DefaultFirstResultParam = "-first"
	// DefaultMaxResultsParam is the reserved key holding the result limit.
	DefaultMaxResultsParam = "-max"
)

// Suffix maps a trailing field name modifier to an operator, e.g. "age>" to [OperatorGte].
type Suffix struct {
	Suffix   string   `yaml:"suffix" validate:"required"`
	Operator Operator `yaml:"operator" validate:"operator"`
}

// Config holds the reserved keys and operator tables of a [Converter].
type Config struct {
	// OrderParam is the key holding the field to direction mapping.
	OrderParam string `yaml:"orderParam" validate:"required,nefield=FirstResultParam,nefield=MaxResultsParam"`
	// FirstResultParam is the key holding the first result offset.
	FirstResultParam string `yaml:"firstResultParam" validate:"required,nefield=MaxResultsParam"`
	// MaxResultsParam is the key holding the result limit.
	MaxResultsParam string `yaml:"maxResultsParam" validate:"required"`
	// Suffixes are checked in order against each condition key; the first
	// matching suffix selects the operator. Keys without a matching suffix
	// use [OperatorEq].
	Suffixes []Suffix `yaml:"suffixes" validate:"unique=Suffix,dive"`
	// ArrayOperators remaps the operator of conditions whose value is a list.
	// Operators without an entry are kept as is.
	ArrayOperators map[Operator]Operator `yaml:"arrayOperators" validate:"dive,keys,operator,endkeys,operator"`
}

// DefaultConfig returns the default configuration:
//
//	orderParam:       -order
//	firstResultParam: -first
//	maxResultsParam:  -max
//	suffixes:         "!" NEQ, ">" GTE, "<" LTE, "*" CONTAINS
//	arrayOperators:   EQ -> IN, NEQ -> NIN
func DefaultConfig() Config {
	return Config{
		OrderParam:       DefaultOrderParam,
		FirstResultParam: DefaultFirstResultParam,
		MaxResultsParam:  DefaultMaxResultsParam,
		Suffixes: []Suffix{
			{Suffix: "!", Operator: OperatorNeq},
			{Suffix: ">", Operator: OperatorGte},
			{Suffix: "<", Operator: OperatorLte},
			{Suffix: "*", Operator: OperatorContains},
		},
		ArrayOperators: map[Operator]Operator{
			OperatorEq:  OperatorIn,
			OperatorNeq: OperatorNin,
		},
	}
}

// clone returns a deep copy so that a converter never shares its tables.
func (c Config) clone() Config {
	c.Suffixes = append([]Suffix{}, c.Suffixes...)
	c.ArrayOperators = maps.Clone(c.ArrayOperators)
	if c.ArrayOperators == nil {
		c.ArrayOperators = map[Operator]Operator{}
	}
	return c
}

// Validate reports whether the configuration is usable.
//
// Returns [ErrInvalidConfig] when a reserved key is empty or shared, a suffix
// is empty or repeated, or an operator is unknown.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return ErrInvalidConfig{err: err}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("operator", func(fl validator.FieldLevel) bool {
		return Operator(fl.Field().Int()).IsValid()
	})
	return v
}

// fileConfig distinguishes omitted tables from empty ones.
type fileConfig struct {
	OrderParam       string                `yaml:"orderParam"`
	FirstResultParam string                `yaml:"firstResultParam"`
	MaxResultsParam  string                `yaml:"maxResultsParam"`
	Suffixes         *[]Suffix             `yaml:"suffixes"`
	ArrayOperators   *map[Operator]Operator `yaml:"arrayOperators"`
}

/*
ParseConfig reads a YAML configuration. Omitted settings keep their default
value; a table that is present replaces the default table entirely.

	orderParam: sort
	suffixes:
	  - suffix: "~"
	    operator: CONTAINS
	arrayOperators:
	  EQ: IN

May return an ErrInvalidConfig error if the document cannot be decoded or fails validation.
*/
func ParseConfig(data []byte) (Config, error) {
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, ErrInvalidConfig{err: err}
	}

	cfg := DefaultConfig()
	if file.OrderParam != "" {
		cfg.OrderParam = file.OrderParam
	}
	if file.FirstResultParam != "" {
		cfg.FirstResultParam = file.FirstResultParam
	}
	if file.MaxResultsParam != "" {
		cfg.MaxResultsParam = file.MaxResultsParam
	}
	if file.Suffixes != nil {
		cfg.Suffixes = *file.Suffixes
	}
	if file.ArrayOperators != nil {
		cfg.ArrayOperators = *file.ArrayOperators
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Option is a functional option for the NewConverter method.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg.clone()
	}
}

// WithOrderParam sets the reserved key holding the orderings.
//
// If not specified, the default is [DefaultOrderParam].
func WithOrderParam(name string) Option {
	return func(c *Config) {
		c.OrderParam = name
	}
}

// WithFirstResultParam sets the reserved key holding the first result offset.
//
// If not specified, the default is [DefaultFirstResultParam].
func WithFirstResultParam(name string) Option {
	return func(c *Config) {
		c.FirstResultParam = name
	}
}

// WithMaxResultsParam sets the reserved key holding the result limit.
//
// If not specified, the default is [DefaultMaxResultsParam].
func WithMaxResultsParam(name string) Option {
	return func(c *Config) {
		c.MaxResultsParam = name
	}
}

// WithSuffixes replaces the operator suffix table. Order matters: the first
// matching suffix wins.
func WithSuffixes(suffixes ...Suffix) Option {
	return func(c *Config) {
		c.Suffixes = append([]Suffix{}, suffixes...)
	}
}

// WithArrayOperators replaces the operator remapping applied to list values.
func WithArrayOperators(remap map[Operator]Operator) Option {
	return func(c *Config) {
		c.ArrayOperators = maps.Clone(remap)
	}
}
