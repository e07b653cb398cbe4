package criteria

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Query is the engine-agnostic result of a conversion: a filter, the
// orderings and the paging bounds.
//
// A Query is immutable. Accessors return copies.
type Query struct {
	filter      *Conjunction
	orderings   *Orderings
	firstResult *int
	maxResults  *int
}

// NewQuery returns a Query from its parts. Nil parts are absent.
func NewQuery(filter *Conjunction, orderings *Orderings, firstResult, maxResults *int) *Query {
	return &Query{
		filter:      filter,
		orderings:   orderings.Clone(),
		firstResult: copyInt(firstResult),
		maxResults:  copyInt(maxResults),
	}
}

// Filter returns the conjunction of comparisons, or nil when the query has
// no conditions.
func (q *Query) Filter() *Conjunction {
	return q.filter
}

// Orderings returns the requested orderings.
//
// It returns nil when no ordering was requested and an empty, non-nil
// Orderings when ordering was requested but no entry was valid.
func (q *Query) Orderings() *Orderings {
	return q.orderings.Clone()
}

// FirstResult returns the offset of the first result, if set.
func (q *Query) FirstResult() (int, bool) {
	if q.firstResult == nil {
		return 0, false
	}
	return *q.firstResult, true
}

// MaxResults returns the maximum number of results, if set.
func (q *Query) MaxResults() (int, bool) {
	if q.maxResults == nil {
		return 0, false
	}
	return *q.maxResults, true
}

type jsonComparison struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

type jsonOrdering struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type jsonQuery struct {
	Filter      []jsonComparison `json:"filter"`
	Orderings   []jsonOrdering   `json:"orderings"`
	FirstResult *int             `json:"firstResult"`
	MaxResults  *int             `json:"maxResults"`
}

// MarshalJSON encodes the query with the filter and orderings as ordered
// arrays. Absent parts are encoded as null.
func (q *Query) MarshalJSON() ([]byte, error) {
	out := jsonQuery{
		FirstResult: q.firstResult,
		MaxResults:  q.maxResults,
	}
	if q.filter != nil {
		out.Filter = make([]jsonComparison, 0, q.filter.Len())
		for _, c := range q.filter.comparisons {
			out.Filter = append(out.Filter, jsonComparison{
				Field:    c.Field,
				Operator: c.Operator,
				Value:    c.Value.Interface(),
			})
		}
	}
	if q.orderings != nil {
		out.Orderings = make([]jsonOrdering, 0, q.orderings.Len())
		q.orderings.Range(func(_ int, field string, order SortOrder) bool {
			out.Orderings = append(out.Orderings, jsonOrdering{Field: field, Direction: order.String()})
			return true
		})
	}
	return json.Marshal(out)
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
