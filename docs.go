// Copyright 2023 The Alis Build Platform. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package criteria converts decoded query-string parameters into an
engine-agnostic query: a conjunction of field comparisons, the requested
orderings and the paging bounds.

The resulting [Query] can be handed to any data-access layer. The
sub-packages celfilter, spannerquery, pgquery and gormquery translate it
for common backends, and querystring and echoquery produce the input from
HTTP requests.

# Basic Usage

	params, err := querystring.Parse("name=Alice&age>=18&-order[name]=desc&-max=20")
	if err != nil {
	    return err
	}

	q := criteria.Convert(params)
	// q.Filter():     name EQ "Alice" AND age GTE "18"
	// q.Orderings():  {"name": SortOrderDesc}
	// q.MaxResults(): 20, true

Note that in "age>=18" the key is "age>" and the value "18".

# Conditions

Every key that starts with a letter and is not reserved is a condition.
A trailing modifier on the key selects the operator:

	name=Alice      EQ
	name!=Alice     NEQ
	age>=18         GTE
	age<=65         LTE
	name*=ali       CONTAINS

The first modifier found, in the order above, wins. List values turn EQ
into IN and NEQ into NIN:

	tag[]=a&tag[]=b     tag IN ["a", "b"]
	tag![]=a&tag![]=b   tag NIN ["a", "b"]

Keys starting with anything other than a letter are ignored.

# Reserved Keys

	-order[field]=asc|desc   orderings, unknown directions are dropped
	-first=N                 offset of the first result
	-max=N                   maximum number of results

Paging values must be plain decimal numbers; anything else leaves the bound
unset. The reserved key names, modifiers and list remapping can be changed
with options:

	converter, err := criteria.NewConverter(
	    criteria.WithOrderParam("sort"),
	    criteria.WithSuffixes(criteria.Suffix{Suffix: "~", Operator: criteria.OperatorContains}),
	)

# Error Handling

Conversion never fails. Only configuration can be rejected, with
[ErrInvalidConfig], which implements the gRPC status interface with
codes.InvalidArgument.

# Thread Safety

A [Converter] is safe for concurrent use. Queries are immutable.
*/
package criteria // import "go.alis.build/criteria"
