package funparams

import (
	"encoding/json"
	"errors"
	"net/http"
)

///////////////////////////////////////////////////////////////////////////////
// Boundary Adapter
///////////////////////////////////////////////////////////////////////////////

// Respond writes v as a JSON response. An *ErrorResult, whether passed
// directly or wrapped inside an error, is serialized exactly as its
// {status, errors} wire shape under its own status code; every other value
// is written as-is under 200.
func Respond(w http.ResponseWriter, v any) error {
	if er, ok := asErrorResult(v); ok {
		return writeJSON(w, er.Status, er)
	}
	return writeJSON(w, http.StatusOK, v)
}

// Handler glues a parser and continuation into an http.HandlerFunc: it
// builds the request bag, runs the parser, and responds with either the
// continuation's result or the validation error's wire shape.
func Handler(p *Parser, k Cont) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bag, err := RequestBag(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		v, err := p.Parse(bag, k)
		if err != nil {
			_ = Respond(w, err)
			return
		}
		_ = Respond(w, v)
	}
}

func asErrorResult(v any) (*ErrorResult, bool) {
	switch t := v.(type) {
	case *ErrorResult:
		return t, true
	case error:
		var er *ErrorResult
		if errors.As(t, &er) {
			return er, true
		}
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
