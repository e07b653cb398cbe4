// Package querystring decodes raw query strings into ordered criteria parameters.
package querystring

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.alis.build/criteria"
	"go.alis.build/criteria/maps"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrInvalidQuery is returned when a raw query string cannot be decoded.
// It maps to gRPC status code [codes.InvalidArgument].
type ErrInvalidQuery struct {
	query string // The raw query that failed
	err   error  // The underlying decoding error
}

// Error returns a formatted error message including the query and underlying error.
func (e ErrInvalidQuery) Error() string {
	return fmt.Sprintf("invalid query(%s): %v", e.query, e.err)
}

// Is reports whether target matches this error type or the underlying error.
func (e ErrInvalidQuery) Is(target error) bool {
	var errInvalidQuery ErrInvalidQuery
	return errors.As(target, &errInvalidQuery) || errors.Is(e.err, target)
}

// GRPCStatus returns the gRPC status representation of the error with [codes.InvalidArgument].
func (e ErrInvalidQuery) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

/*
Parse decodes a raw query string into ordered parameters.

Keys keep the position of their first occurrence. Values are decoded as:

	a=1             {"a": "1"}
	a=1&a=2         {"a": ["1", "2"]}
	a[]=1&a[]=2     {"a": ["1", "2"]}
	a[x]=1&a[y]=2   {"a": {"x": "1", "y": "2"}}
	a[x][]=1        {"a": {"x": ["1"]}}
	a[x]=1&a[]=2    {"a": {"x": "1", "0": "2"}}

Appending to a map uses the next numeric index, and a named entry after a
list turns the list into a map keyed "0", "1", .... A later map replaces a
plain scalar. A key with unbalanced brackets is used as is. Only '&'
separates pairs.

May return an ErrInvalidQuery error if a key or value has an invalid escape.
*/
func Parse(raw string) (*criteria.Params, error) {
	root := newNode()
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, ErrInvalidQuery{query: raw, err: err}
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, ErrInvalidQuery{query: raw, err: err}
		}

		root.add(splitKey(key), value)
	}

	return root.params(), nil
}

// FromValues converts url.Values, which carry no key order, into parameters
// with keys in lexical order. Keys are decoded the same way as in [Parse].
func FromValues(values url.Values) *criteria.Params {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := newNode()
	for _, k := range keys {
		path := splitKey(k)
		for _, v := range values[k] {
			root.add(path, v)
		}
	}
	return root.params()
}

// FromRequest decodes the query string of r with [Parse].
func FromRequest(r *http.Request) (*criteria.Params, error) {
	return Parse(r.URL.RawQuery)
}

// splitKey splits "a[b][c]" into ["a", "b", "c"] and "a[]" into ["a", ""].
// Keys that are not well formed are returned whole.
func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return []string{key}
	}

	path := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return []string{key}
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []string{key}
		}
		segment := rest[1:end]
		if strings.ContainsRune(segment, '[') {
			return []string{key}
		}
		path = append(path, segment)
		rest = rest[end+1:]
	}

	// Appending is only supported as the last segment.
	for _, segment := range path[1 : len(path)-1] {
		if segment == "" {
			return []string{key}
		}
	}
	return path
}

// node accumulates the values of one key while the query is decoded.
type node struct {
	kind     criteria.Kind
	set      bool
	scalar   string
	list     []string
	children *maps.OrderedMap[string, *node]
}

func newNode() *node {
	return &node{kind: criteria.KindMap, set: true, children: maps.NewOrderedMap[string, *node]()}
}

func (n *node) add(path []string, value string) {
	head, tail := path[0], path[1:]

	child, ok := n.children.Get(head)
	if !ok {
		child = &node{}
		n.children.Set(head, child)
	}

	switch {
	case len(tail) == 0:
		child.addScalar(value)
	case len(tail) == 1 && tail[0] == "":
		child.addList(value)
	default:
		if child.kind != criteria.KindMap || !child.set {
			child.toMap()
		}
		child.add(tail, value)
	}
}

// toMap turns n into a map node. List entries are kept under their index.
func (n *node) toMap() {
	children := maps.NewOrderedMap[string, *node]()
	if n.set && n.kind == criteria.KindList {
		for i, v := range n.list {
			children.Set(strconv.Itoa(i), &node{kind: criteria.KindScalar, set: true, scalar: v})
		}
	}
	*n = node{kind: criteria.KindMap, set: true, children: children}
}

// nextIndex returns one past the largest non-negative integer key, or 0.
func (n *node) nextIndex() int {
	next := 0
	n.children.Range(func(_ int, key string, _ *node) bool {
		if i, err := strconv.Atoi(key); err == nil && i >= 0 && strconv.Itoa(i) == key && i >= next {
			next = i + 1
		}
		return true
	})
	return next
}

// addScalar records a plain value; a repeated plain key becomes a list.
func (n *node) addScalar(value string) {
	switch {
	case !n.set || n.kind == criteria.KindMap:
		*n = node{kind: criteria.KindScalar, set: true, scalar: value}
	case n.kind == criteria.KindScalar:
		*n = node{kind: criteria.KindList, set: true, list: []string{n.scalar, value}}
	default:
		n.list = append(n.list, value)
	}
}

func (n *node) addList(value string) {
	switch {
	case !n.set:
		*n = node{kind: criteria.KindList, set: true, list: []string{value}}
	case n.kind == criteria.KindMap:
		n.children.Set(strconv.Itoa(n.nextIndex()), &node{kind: criteria.KindScalar, set: true, scalar: value})
	case n.kind == criteria.KindScalar:
		*n = node{kind: criteria.KindList, set: true, list: []string{n.scalar, value}}
	default:
		n.list = append(n.list, value)
	}
}

func (n *node) value() criteria.Value {
	switch n.kind {
	case criteria.KindList:
		return criteria.List(n.list...)
	case criteria.KindMap:
		return criteria.Nested(n.params())
	default:
		return criteria.Scalar(n.scalar)
	}
}

func (n *node) params() *criteria.Params {
	params := criteria.NewParams()
	n.children.Range(func(_ int, key string, child *node) bool {
		params.Set(key, child.value())
		return true
	})
	return params
}
