package criteria

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewConverter_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{
			name: "empty order param",
			opts: []Option{WithOrderParam("")},
		},
		{
			name: "order param shared with first result param",
			opts: []Option{WithOrderParam("p"), WithFirstResultParam("p")},
		},
		{
			name: "first result param shared with max results param",
			opts: []Option{WithFirstResultParam("p"), WithMaxResultsParam("p")},
		},
		{
			name: "empty suffix",
			opts: []Option{WithSuffixes(Suffix{Suffix: "", Operator: OperatorNeq})},
		},
		{
			name: "repeated suffix",
			opts: []Option{WithSuffixes(
				Suffix{Suffix: "!", Operator: OperatorNeq},
				Suffix{Suffix: "!", Operator: OperatorLte},
			)},
		},
		{
			name: "unknown suffix operator",
			opts: []Option{WithSuffixes(Suffix{Suffix: "!", Operator: Operator(42)})},
		},
		{
			name: "unknown array operator",
			opts: []Option{WithArrayOperators(map[Operator]Operator{OperatorEq: Operator(-1)})},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converter, err := NewConverter(tt.opts...)
			assert.Nil(t, converter)
			require.Error(t, err)

			var invalidConfig ErrInvalidConfig
			assert.True(t, errors.As(err, &invalidConfig))
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestNewConverter_ConfigIsCopied(t *testing.T) {
	suffixes := []Suffix{{Suffix: "!", Operator: OperatorNeq}}
	remap := map[Operator]Operator{OperatorEq: OperatorIn}

	converter, err := NewConverter(WithSuffixes(suffixes...), WithArrayOperators(remap))
	require.NoError(t, err)

	suffixes[0].Operator = OperatorLte
	remap[OperatorEq] = OperatorNin

	cfg := converter.Config()
	assert.Equal(t, OperatorNeq, cfg.Suffixes[0].Operator)
	assert.Equal(t, OperatorIn, cfg.ArrayOperators[OperatorEq])

	cfg.Suffixes[0].Operator = OperatorContains
	assert.Equal(t, OperatorNeq, converter.Config().Suffixes[0].Operator)
}

func TestNewConverter_WithConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OrderParam = "sort"

	converter, err := NewConverter(WithConfig(cfg))
	require.NoError(t, err)

	q := converter.Convert(ParamsOf(P("sort", orderMap("a", "asc")), P("-order", Scalar("x"))))
	assert.Equal(t, []Ordering{{Key: "a", Value: SortOrderAsc}}, q.Orderings().Pairs())
	assert.Nil(t, q.Filter(), "-order is not a condition")
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
orderParam: sort
suffixes:
  - suffix: "~"
    operator: CONTAINS
  - suffix: "!"
    operator: NEQ
arrayOperators:
  NEQ: NIN
`))
	require.NoError(t, err)

	assert.Equal(t, "sort", cfg.OrderParam)
	assert.Equal(t, DefaultFirstResultParam, cfg.FirstResultParam)
	assert.Equal(t, DefaultMaxResultsParam, cfg.MaxResultsParam)
	assert.Equal(t, []Suffix{
		{Suffix: "~", Operator: OperatorContains},
		{Suffix: "!", Operator: OperatorNeq},
	}, cfg.Suffixes)
	assert.Equal(t, map[Operator]Operator{OperatorNeq: OperatorNin}, cfg.ArrayOperators)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`maxResultsParam: limit`))
	require.NoError(t, err)

	want := DefaultConfig()
	want.MaxResultsParam = "limit"
	assert.Equal(t, want, cfg)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not yaml", doc: "orderParam: [unclosed"},
		{name: "unknown operator", doc: "suffixes:\n  - suffix: \"!\"\n    operator: LIKE\n"},
		{name: "shared reserved keys", doc: "orderParam: -max\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.doc))
			var invalidConfig ErrInvalidConfig
			assert.True(t, errors.As(err, &invalidConfig), "got %v", err)
		})
	}
}

func TestOperator_Text(t *testing.T) {
	for _, op := range []Operator{OperatorEq, OperatorNeq, OperatorGte, OperatorLte, OperatorContains, OperatorIn, OperatorNin} {
		text, err := op.MarshalText()
		require.NoError(t, err)

		var parsed Operator
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, op, parsed)
	}

	_, err := ParseOperator("LIKE")
	assert.Error(t, err)
	assert.Equal(t, "Operator(9)", Operator(9).String())
}
