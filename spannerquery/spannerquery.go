package spannerquery

import (
	"fmt"
	"math"
	"strings"

	"cloud.google.com/go/spanner"
	"go.alis.build/criteria"
)

// Options configures the behavior of [Statement].
type Options struct {
	// Columns are the selected columns. Defaults to "*".
	Columns []string
}

// Option is a functional option for the Statement method.
type Option func(*Options)

// WithColumns selects the given columns instead of "*".
func WithColumns(columns ...string) Option {
	return func(opts *Options) {
		opts.Columns = columns
	}
}

/*
Where converts the filter of q into a parameterised Spanner SQL condition,
without the WHERE keyword.

	criteria: name EQ "Alice" AND tag IN ["a", "b"]
	SQL:      `name` = @p0 AND `tag` IN UNNEST(@p1)
	Params:   {"p0": "Alice", "p1": []string{"a", "b"}}

Returns a statement with empty SQL when q has no filter.

May return an ErrInvalidField error if a field is not a dotted identifier and
an ErrUnsupportedComparison error if a list value is used with GTE, LTE or
CONTAINS.
*/
func Where(q *criteria.Query) (*spanner.Statement, error) {
	params := make(map[string]any)
	comparisons := q.Filter().Comparisons()
	terms := make([]string, 0, len(comparisons))

	for _, c := range comparisons {
		column, err := quote(c.Field)
		if err != nil {
			return nil, err
		}

		paramName := fmt.Sprintf("p%d", len(params))
		switch c.Operator {
		case criteria.OperatorIn:
			params[paramName] = c.Value.Strings()
			terms = append(terms, fmt.Sprintf("%s IN UNNEST(@%s)", column, paramName))
			continue
		case criteria.OperatorNin:
			params[paramName] = c.Value.Strings()
			terms = append(terms, fmt.Sprintf("%s NOT IN UNNEST(@%s)", column, paramName))
			continue
		}

		value, ok := c.Value.Scalar()
		if !ok {
			return nil, criteria.ErrUnsupportedComparison{Comparison: c}
		}
		params[paramName] = value

		switch c.Operator {
		case criteria.OperatorEq:
			terms = append(terms, fmt.Sprintf("%s = @%s", column, paramName))
		case criteria.OperatorNeq:
			terms = append(terms, fmt.Sprintf("%s != @%s", column, paramName))
		case criteria.OperatorGte:
			terms = append(terms, fmt.Sprintf("%s >= @%s", column, paramName))
		case criteria.OperatorLte:
			terms = append(terms, fmt.Sprintf("%s <= @%s", column, paramName))
		case criteria.OperatorContains:
			terms = append(terms, fmt.Sprintf("STRPOS(%s, @%s) > 0", column, paramName))
		default:
			return nil, criteria.ErrUnsupportedComparison{Comparison: c}
		}
	}

	return &spanner.Statement{
		SQL:    strings.Join(terms, " AND "),
		Params: params,
	}, nil
}

/*
Statement builds a complete SELECT statement over table:

	SELECT * FROM `Users` WHERE `age` >= @p0 ORDER BY `name` DESC LIMIT @limit OFFSET @offset

OFFSET requires LIMIT in Spanner, so a query with only a first result is
limited to math.MaxInt rows.

May return an ErrInvalidField error if the table, a column or a field is not
a dotted identifier.
*/
func Statement(q *criteria.Query, table string, opts ...Option) (*spanner.Statement, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	from, err := quote(table)
	if err != nil {
		return nil, err
	}

	columns := "*"
	if len(options.Columns) > 0 {
		quoted := make([]string, len(options.Columns))
		for i, column := range options.Columns {
			if quoted[i], err = quote(column); err != nil {
				return nil, err
			}
		}
		columns = strings.Join(quoted, ", ")
	}

	where, err := Where(q)
	if err != nil {
		return nil, err
	}

	var sql strings.Builder
	fmt.Fprintf(&sql, "SELECT %s FROM %s", columns, from)
	if where.SQL != "" {
		sql.WriteString(" WHERE " + where.SQL)
	}

	order, err := orderBy(q)
	if err != nil {
		return nil, err
	}
	if order != "" {
		sql.WriteString(" ORDER BY " + order)
	}

	params := where.Params
	first, hasFirst := q.FirstResult()
	max, hasMax := q.MaxResults()
	if hasFirst && !hasMax {
		max, hasMax = math.MaxInt, true
	}
	if hasMax {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = int64(max)
	}
	if hasFirst {
		sql.WriteString(" OFFSET @offset")
		params["offset"] = int64(first)
	}

	return &spanner.Statement{SQL: sql.String(), Params: params}, nil
}

func orderBy(q *criteria.Query) (string, error) {
	var parts []string
	var err error
	q.Orderings().Range(func(_ int, field string, order criteria.SortOrder) bool {
		var column string
		if column, err = quote(field); err != nil {
			return false
		}
		parts = append(parts, column+" "+order.String())
		return true
	})
	return strings.Join(parts, ", "), err
}

// quote backtick-quotes every segment of a dotted identifier.
func quote(field string) (string, error) {
	path, err := criteria.FieldPath(field)
	if err != nil {
		return "", err
	}
	for i, segment := range path {
		path[i] = "`" + segment + "`"
	}
	return strings.Join(path, "."), nil
}
