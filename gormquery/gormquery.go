// Package gormquery applies a criteria.Query to gorm queries.
package gormquery

import (
	"strings"

	"go.alis.build/criteria"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscape is the LIKE escape character. It needs no escaping in SQL string literals.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, `%`, likeEscape+`%`, `_`, likeEscape+`_`)

/*
Scope returns a gorm scope applying the filter, orderings, offset and limit
of q:

	var users []User
	err := db.Scopes(gormquery.Scope(q)).Find(&users).Error

Operators map to gorm clauses:

	EQ        clause.Eq
	NEQ       clause.Neq
	GTE       clause.Gte
	LTE       clause.Lte
	CONTAINS  column LIKE "%value%" ESCAPE '!'
	IN        clause.IN
	NIN       NOT clause.IN

gorm renders a single valued NOT IN as "<>". An empty NIN list adds no
condition, so rows with a NULL column are kept as with the SQL backends.

Errors are added to the returned *gorm.DB: an ErrInvalidField when a field
is not a dotted identifier and an ErrUnsupportedComparison when a list value
is used with a scalar operator.
*/
func Scope(q *criteria.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range q.Filter().Comparisons() {
			expr, err := expression(c)
			if err != nil {
				_ = db.AddError(err)
				return db
			}
			if expr != nil {
				db = db.Where(expr)
			}
		}

		var err error
		q.Orderings().Range(func(_ int, field string, order criteria.SortOrder) bool {
			var column clause.Column
			if column, err = columnOf(field); err != nil {
				return false
			}
			db = db.Order(clause.OrderByColumn{Column: column, Desc: order == criteria.SortOrderDesc})
			return true
		})
		if err != nil {
			_ = db.AddError(err)
			return db
		}

		if first, ok := q.FirstResult(); ok {
			db = db.Offset(first)
		}
		if max, ok := q.MaxResults(); ok {
			db = db.Limit(max)
		}
		return db
	}
}

func expression(c criteria.Comparison) (clause.Expression, error) {
	column, err := columnOf(c.Field)
	if err != nil {
		return nil, err
	}

	switch c.Operator {
	case criteria.OperatorIn:
		return clause.IN{Column: column, Values: values(c.Value)}, nil
	case criteria.OperatorNin:
		vals := values(c.Value)
		if len(vals) == 0 {
			return nil, nil
		}
		return clause.Not(clause.IN{Column: column, Values: vals}), nil
	}

	value, ok := c.Value.Scalar()
	if !ok {
		return nil, criteria.ErrUnsupportedComparison{Comparison: c}
	}
	switch c.Operator {
	case criteria.OperatorEq:
		return clause.Eq{Column: column, Value: value}, nil
	case criteria.OperatorNeq:
		return clause.Neq{Column: column, Value: value}, nil
	case criteria.OperatorGte:
		return clause.Gte{Column: column, Value: value}, nil
	case criteria.OperatorLte:
		return clause.Lte{Column: column, Value: value}, nil
	case criteria.OperatorContains:
		return clause.Expr{
			SQL:  "? LIKE ? ESCAPE '" + likeEscape + "'",
			Vars: []any{column, "%" + likeEscaper.Replace(value) + "%"},
		}, nil
	default:
		return nil, criteria.ErrUnsupportedComparison{Comparison: c}
	}
}

// columnOf maps "name" to a column and "table.name" to a qualified column.
// Deeper paths are left to the dialector's quoting.
func columnOf(field string) (clause.Column, error) {
	path, err := criteria.FieldPath(field)
	if err != nil {
		return clause.Column{}, err
	}
	if len(path) == 2 {
		return clause.Column{Table: path[0], Name: path[1]}, nil
	}
	return clause.Column{Name: field}, nil
}

func values(v criteria.Value) []any {
	strs := v.Strings()
	out := make([]any, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}
