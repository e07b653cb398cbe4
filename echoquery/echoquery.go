// Package echoquery exposes criteria conversion as echo middleware.
package echoquery

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.alis.build/alog"
	"go.alis.build/criteria"
	"go.alis.build/criteria/querystring"
)

// Converter turns decoded query parameters into a query.
// [*criteria.Converter] implements it.
type Converter interface {
	Convert(params *criteria.Params) *criteria.Query
}

const queryKey = "criteria_query"

// Middleware decodes the request query string, converts it and stores the
// resulting query on the echo context. Requests with an undecodable query
// string are answered with 400 Bad Request.
//
// A nil converter uses the default configuration.
func Middleware(converter Converter) echo.MiddlewareFunc {
	if converter == nil {
		converter = converterFunc(criteria.Convert)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			params, err := querystring.FromRequest(req)
			if err != nil {
				alog.Warnf(req.Context(), "rejecting %s %s: %v", req.Method, req.URL.Path, err)
				return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
			}

			q := converter.Convert(params)
			alog.Debugf(req.Context(), "%s %s: %d comparisons", req.Method, req.URL.Path, q.Filter().Len())

			ctx.Set(queryKey, q)
			return next(ctx)
		}
	}
}

// FromContext returns the query stored by [Middleware].
// The boolean is false when the middleware did not run for this request.
func FromContext(ctx echo.Context) (*criteria.Query, bool) {
	q, ok := ctx.Get(queryKey).(*criteria.Query)
	return q, ok
}

type converterFunc func(*criteria.Params) *criteria.Query

func (f converterFunc) Convert(params *criteria.Params) *criteria.Query {
	return f(params)
}
