/*
Package celfilter renders a [criteria.Query] as [AIP-160] filter and AIP-132
order-by strings.

The output is the CEL dialect accepted by CEL based filter parsers, so a
query string received over HTTP can be forwarded to an API that takes a
filter argument.

# Basic Usage

	q := criteria.Convert(params)

	filter, err := celfilter.Filter(q)
	if err != nil {
	    return err
	}
	// name == "Alice" && age >= "18" && tag in ["a", "b"]

	orderBy, err := celfilter.OrderBy(q)
	// name desc, age asc

# Literals

Query values are strings, and by default every value is rendered as a CEL
string literal. Use [WithInferLiterals] to render booleans and numbers as
typed literals:

	filter, _ := celfilter.Filter(q, celfilter.WithInferLiterals())
	// age >= 18 && active == true

# Error Handling

Fields must be dotted identifiers, otherwise [criteria.ErrInvalidField] is
returned. The rendered filter is parsed with the CEL parser before it is
returned, and a filter that does not parse, e.g. because a field is a CEL
keyword, yields [ErrInvalidFilter]. Both implement the gRPC status interface
with codes.InvalidArgument.

[AIP-160]: https://google.aip.dev/160
*/
package celfilter
