// Criteria converts request query strings into query criteria and renders
// them for a storage backend.
//
// Usage:
//
//	# Print the query criteria as JSON
//	criteria convert 'name=Alice&age>=18&-order[name]=desc&-max=10'
//
//	# Render a CEL filter
//	criteria convert --format cel 'tag[]=a&tag[]=b'
//
//	# Render a Spanner statement with a custom configuration
//	criteria convert --config criteria.yaml --format spanner --table Users 'sort[name]=asc'
package main

func main() {
	Execute()
}
