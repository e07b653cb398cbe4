/*
Package spannerquery builds parameterised Cloud Spanner statements from a
[criteria.Query].

Values are never interpolated into the SQL. Each comparison gets a named
parameter (p0, p1, ...), lists are bound as ARRAY<STRING> and matched with
IN UNNEST, and identifiers are quoted with backticks per path segment.

# Basic Usage

	stmt, err := spannerquery.Statement(q, "Users", spannerquery.WithColumns("Name", "Age"))
	if err != nil {
	    return err
	}
	iter := client.Single().Query(ctx, *stmt)

Use [Where] to embed the condition in a hand written statement.

# Paging

Spanner only accepts OFFSET together with LIMIT. When a query has a first
result but no max results, the statement is limited to math.MaxInt rows.
*/
package spannerquery
