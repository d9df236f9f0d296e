package funparams

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/elnormous/contenttype"
	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"
)

var (
	ErrMalformedBody = errors.New("request body is not valid JSON")
)

var jsonMediaType = contenttype.NewMediaType("application/json")

///////////////////////////////////////////////////////////////////////////////
// Request Bag Adapter
///////////////////////////////////////////////////////////////////////////////

// RequestBag flattens an *http.Request into a parameter bag:
//
//   - chi route params and query params are stored under Symbol keys
//     (route params win when a name collides)
//   - top-level fields of an application/json body are stored under textual
//     keys, with JSON-shaped values
//
// Lookup's symbolic-first rule therefore gives route and query parameters
// precedence over same-named body fields. The body is read and decoded at
// most once, here; the returned bag is a plain value with no tie back to the
// request.
func RequestBag(r *http.Request) (Bag, error) {
	bag := make(Bag)

	if hasJSONBody(r) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		if len(body) > 0 {
			if !gjson.ValidBytes(body) {
				return nil, ErrMalformedBody
			}
			parsed := gjson.ParseBytes(body)
			if parsed.IsObject() {
				parsed.ForEach(func(key, value gjson.Result) bool {
					bag[key.String()] = value.Value()
					return true
				})
			}
		}
	}

	for name, vals := range r.URL.Query() {
		switch len(vals) {
		case 0:
		case 1:
			bag[Symbol(name)] = vals[0]
		default:
			repeated := make([]any, len(vals))
			for i, v := range vals {
				repeated[i] = v
			}
			bag[Symbol(name)] = repeated
		}
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			bag[Symbol(key)] = rctx.URLParams.Values[i]
		}
	}

	return bag, nil
}

// hasJSONBody reports whether the request carries a body negotiated as
// application/json.
func hasJSONBody(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return false
	}
	mt, err := contenttype.GetMediaType(r)
	if err != nil {
		return false
	}
	return mt.Type == jsonMediaType.Type && mt.Subtype == jsonMediaType.Subtype
}
