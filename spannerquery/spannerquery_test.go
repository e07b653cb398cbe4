package spannerquery

import (
	"math"
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

func TestWhere(t *testing.T) {
	stmt, err := Where(query(
		criteria.P("testa", criteria.Scalar("abc")),
		criteria.P("testb!", criteria.Scalar("def")),
		criteria.P("testc<", criteria.Scalar("10")),
		criteria.P("testd>", criteria.Scalar("0")),
		criteria.P("teste*", criteria.Scalar("something")),
		criteria.P("testf", criteria.List("arr1", "arr2")),
		criteria.P("testg!", criteria.List("arr3", "arr4")),
		criteria.P("Proto.state", criteria.Scalar("ACTIVE")),
	))
	require.NoError(t, err)

	assert.Equal(t, "`testa` = @p0 AND `testb` != @p1 AND `testc` <= @p2 AND `testd` >= @p3 AND "+
		"STRPOS(`teste`, @p4) > 0 AND `testf` IN UNNEST(@p5) AND `testg` NOT IN UNNEST(@p6) AND "+
		"`Proto`.`state` = @p7", stmt.SQL)
	assert.Equal(t, map[string]any{
		"p0": "abc",
		"p1": "def",
		"p2": "10",
		"p3": "0",
		"p4": "something",
		"p5": []string{"arr1", "arr2"},
		"p6": []string{"arr3", "arr4"},
		"p7": "ACTIVE",
	}, stmt.Params)
}

func TestWhere_Empty(t *testing.T) {
	stmt, err := Where(query())
	require.NoError(t, err)
	assert.Equal(t, "", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestWhere_Errors(t *testing.T) {
	_, err := Where(query(criteria.P("age>", criteria.List("1", "2"))))
	assert.ErrorIs(t, err, criteria.ErrUnsupportedComparison{})

	_, err = Where(query(criteria.P("name`; --", criteria.Scalar("x"))))
	assert.ErrorIs(t, err, criteria.ErrInvalidField{})
}

func TestStatement(t *testing.T) {
	tests := []struct {
		name       string
		query      *criteria.Query
		opts       []Option
		wantSQL    string
		wantParams map[string]any
	}{
		{
			name:       "no criteria",
			query:      query(),
			wantSQL:    "SELECT * FROM `Users`",
			wantParams: map[string]any{},
		},
		{
			name: "full",
			query: query(
				criteria.P("age>", criteria.Scalar("18")),
				criteria.P("-order", order("name", "desc", "age", "asc")),
				criteria.P("-first", criteria.Scalar("10")),
				criteria.P("-max", criteria.Scalar("5")),
			),
			opts:       []Option{WithColumns("name", "age")},
			wantSQL:    "SELECT `name`, `age` FROM `Users` WHERE `age` >= @p0 ORDER BY `name` DESC, `age` ASC LIMIT @limit OFFSET @offset",
			wantParams: map[string]any{"p0": "18", "limit": int64(5), "offset": int64(10)},
		},
		{
			name:       "offset only",
			query:      query(criteria.P("-first", criteria.Scalar("3"))),
			wantSQL:    "SELECT * FROM `Users` LIMIT @limit OFFSET @offset",
			wantParams: map[string]any{"limit": int64(math.MaxInt), "offset": int64(3)},
		},
		{
			name:       "limit only",
			query:      query(criteria.P("-max", criteria.Scalar("0"))),
			wantSQL:    "SELECT * FROM `Users` LIMIT @limit",
			wantParams: map[string]any{"limit": int64(0)},
		},
		{
			name:       "ordering present but empty",
			query:      query(criteria.P("-order", order("name", "sideways"))),
			wantSQL:    "SELECT * FROM `Users`",
			wantParams: map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Statement(tt.query, "Users", tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, stmt.SQL)
			assert.Equal(t, tt.wantParams, stmt.Params)
		})
	}
}

func TestStatement_InvalidIdentifiers(t *testing.T) {
	_, err := Statement(query(), "Users; DROP")
	assert.ErrorIs(t, err, criteria.ErrInvalidField{})

	_, err = Statement(query(), "Users", WithColumns("a b"))
	assert.ErrorIs(t, err, criteria.ErrInvalidField{})

	_, err = Statement(query(criteria.P("-order", order("x y", "asc"))), "Users")
	assert.ErrorIs(t, err, criteria.ErrInvalidField{})
}
