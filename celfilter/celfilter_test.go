package celfilter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.alis.build/criteria"
	"go.alis.build/criteria/maps"
)

func query(params ...criteria.Param) *criteria.Query {
	return criteria.Convert(criteria.ParamsOf(params...))
}

func order(pairs ...string) criteria.Value {
	m := maps.NewOrderedMap[string, criteria.Value]()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], criteria.Scalar(pairs[i+1]))
	}
	return criteria.Nested(m)
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		query  *criteria.Query
		opts   []Option
		want   string
		errTyp error
	}{
		{
			name:  "no filter",
			query: query(criteria.P("-max", criteria.Scalar("1"))),
			want:  "",
		},
		{
			name: "all operators",
			query: query(
				criteria.P("testa", criteria.Scalar("abc")),
				criteria.P("testb!", criteria.Scalar("def")),
				criteria.P("testc<", criteria.Scalar("10")),
				criteria.P("testd>", criteria.Scalar("0")),
				criteria.P("teste*", criteria.Scalar("something")),
				criteria.P("testf", criteria.List("arr1", "arr2")),
				criteria.P("testg!", criteria.List("arr3", "arr4")),
			),
			want: `testa == "abc" && testb != "def" && testc <= "10" && testd >= "0" && ` +
				`teste.contains("something") && testf in ["arr1", "arr2"] && !(testg in ["arr3", "arr4"])`,
		},
		{
			name:  "quoting",
			query: query(criteria.P("name", criteria.Scalar(`say "hi"\n`))),
			want:  `name == "say \"hi\"\\n"`,
		},
		{
			name:  "nested field",
			query: query(criteria.P("user.address.city", criteria.Scalar("Cape Town"))),
			want:  `user.address.city == "Cape Town"`,
		},
		{
			name:   "list with non remapped operator",
			query:  query(criteria.P("age>", criteria.List("1", "2"))),
			errTyp: criteria.ErrUnsupportedComparison{},
		},
		{
			name:   "list with contains",
			query:  query(criteria.P("name*", criteria.List("a"))),
			errTyp: criteria.ErrUnsupportedComparison{},
		},
		{
			name: "list with remapped operators",
			query: query(
				criteria.P("tag", criteria.List("a")),
				criteria.P("kind!", criteria.List("b", "c")),
			),
			want: `tag in ["a"] && !(kind in ["b", "c"])`,
		},
		{
			name: "inferred literals",
			query: query(
				criteria.P("age>", criteria.Scalar("18")),
				criteria.P("score<", criteria.Scalar("-1.5")),
				criteria.P("active", criteria.Scalar("true")),
				criteria.P("id", criteria.List("1", "x")),
				criteria.P("big", criteria.Scalar("99999999999999999999")),
			),
			opts: []Option{WithInferLiterals()},
			want: `age >= 18 && score <= -1.5 && active == true && id in [1, "x"] && big == "99999999999999999999"`,
		},
		{
			name:   "invalid field",
			query:  query(criteria.P("rating*<", criteria.Scalar("5"))),
			errTyp: criteria.ErrInvalidField{},
		},
		{
			name:   "keyword field",
			query:  query(criteria.P("in", criteria.Scalar("5"))),
			errTyp: ErrInvalidFilter{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(tt.query, tt.opts...)
			if tt.errTyp != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.errTyp), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderBy(t *testing.T) {
	got, err := OrderBy(query(criteria.P("-order", order("name", "desc", "age", "ASC", "x", "up"))))
	require.NoError(t, err)
	assert.Equal(t, "name desc, age asc", got)

	got, err = OrderBy(query())
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = OrderBy(query(criteria.P("-order", order("bad field", "asc"))))
	assert.ErrorIs(t, err, criteria.ErrInvalidField{})
}
