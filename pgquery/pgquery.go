// Package pgquery builds PostgreSQL statements with pgx named arguments from a criteria.Query.
package pgquery

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.alis.build/criteria"
)

// Statement is a PostgreSQL statement with named arguments, ready for
// pgx Query/Exec:
//
//	rows, err := conn.Query(ctx, stmt.SQL, stmt.Args)
type Statement struct {
	SQL  string
	Args pgx.NamedArgs
}

// Options configures the behavior of [Select].
type Options struct {
	// Columns are the selected columns. Defaults to "*".
	Columns []string
}

// Option is a functional option for the Select method.
type Option func(*Options)

// WithColumns selects the given columns instead of "*".
func WithColumns(columns ...string) Option {
	return func(opts *Options) {
		opts.Columns = columns
	}
}

/*
Where converts the filter of q into a PostgreSQL condition, without the WHERE
keyword.

	criteria: name EQ "Alice" AND tag NIN ["a", "b"]
	SQL:      "name" = @p0 AND NOT ("tag" = ANY(@p1))
	Args:     {"p0": "Alice", "p1": []string{"a", "b"}}

Dotted fields are quoted per segment, so "user.name" becomes "user"."name".

May return an ErrInvalidField error if a field is not a dotted identifier and
an ErrUnsupportedComparison error if a list value is used with GTE, LTE or
CONTAINS.
*/
func Where(q *criteria.Query) (*Statement, error) {
	args := pgx.NamedArgs{}
	comparisons := q.Filter().Comparisons()
	terms := make([]string, 0, len(comparisons))

	for _, c := range comparisons {
		column, err := identifier(c.Field)
		if err != nil {
			return nil, err
		}

		name := fmt.Sprintf("p%d", len(args))
		switch c.Operator {
		case criteria.OperatorIn:
			args[name] = c.Value.Strings()
			terms = append(terms, fmt.Sprintf("%s = ANY(@%s)", column, name))
			continue
		case criteria.OperatorNin:
			args[name] = c.Value.Strings()
			terms = append(terms, fmt.Sprintf("NOT (%s = ANY(@%s))", column, name))
			continue
		}

		value, ok := c.Value.Scalar()
		if !ok {
			return nil, criteria.ErrUnsupportedComparison{Comparison: c}
		}
		args[name] = value

		switch c.Operator {
		case criteria.OperatorEq:
			terms = append(terms, fmt.Sprintf("%s = @%s", column, name))
		case criteria.OperatorNeq:
			terms = append(terms, fmt.Sprintf("%s <> @%s", column, name))
		case criteria.OperatorGte:
			terms = append(terms, fmt.Sprintf("%s >= @%s", column, name))
		case criteria.OperatorLte:
			terms = append(terms, fmt.Sprintf("%s <= @%s", column, name))
		case criteria.OperatorContains:
			terms = append(terms, fmt.Sprintf("strpos(%s, @%s) > 0", column, name))
		default:
			return nil, criteria.ErrUnsupportedComparison{Comparison: c}
		}
	}

	return &Statement{SQL: strings.Join(terms, " AND "), Args: args}, nil
}

// Select builds a SELECT statement over table including the filter, the
// orderings and the LIMIT/OFFSET of q.
func Select(q *criteria.Query, table string, opts ...Option) (*Statement, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	from, err := identifier(table)
	if err != nil {
		return nil, err
	}

	columns := "*"
	if len(options.Columns) > 0 {
		quoted := make([]string, len(options.Columns))
		for i, column := range options.Columns {
			if quoted[i], err = identifier(column); err != nil {
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

	var orders []string
	q.Orderings().Range(func(_ int, field string, order criteria.SortOrder) bool {
		var column string
		if column, err = identifier(field); err != nil {
			return false
		}
		orders = append(orders, column+" "+order.String())
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(orders) > 0 {
		sql.WriteString(" ORDER BY " + strings.Join(orders, ", "))
	}

	// Postgres accepts OFFSET without LIMIT.
	if max, ok := q.MaxResults(); ok {
		sql.WriteString(" LIMIT @limit")
		where.Args["limit"] = max
	}
	if first, ok := q.FirstResult(); ok {
		sql.WriteString(" OFFSET @offset")
		where.Args["offset"] = first
	}

	where.SQL = sql.String()
	return where, nil
}

func identifier(field string) (string, error) {
	path, err := criteria.FieldPath(field)
	if err != nil {
		return "", err
	}
	return pgx.Identifier(path).Sanitize(), nil
}
