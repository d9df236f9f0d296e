// Package funparams provides composable parsers that turn an untyped
// key/value parameter bag — route params, query string, decoded JSON body —
// into typed, validated values, short-circuiting with a structured error
// description on first failure.
//
// Each parser inspects one or more named parameters and either delivers a
// typed result to a caller-supplied continuation or returns an *ErrorResult
// describing what was expected. Parsers compose:
//
//   - Base parsers (String, Integer, Float, Boolean, UUID, Time) coerce or
//     reject a single parameter.
//   - Collection parsers (Array, Dictionary) validate every member of a
//     sequence or mapping with a supplied element parser, reporting the
//     first failure by original position.
//   - Decorators (Optional, NonEmpty, WithDefault, Map) wrap one child and
//     alter how its result or absence is interpreted.
//   - Aggregators (RequireAll, RequireAny, Either) combine child parsers and
//     dispatch the merged results to the continuation under an explicit
//     calling convention (Unit, Grouped, Positional).
//
// Parsers are built once, typically at route-setup time, and are immutable
// and safe for concurrent use; all per-invocation bookkeeping is request
// scoped. Validation failures are returned values, never panics. Composition
// mistakes — a parser without parameter metadata in an aggregator, two
// siblings claiming the same parameter, an unsupported continuation shape —
// are defects and panic with a *ConfigError diagnostic.
//
// A typical route handler:
//
//	p := funparams.RequireAll(
//		funparams.Integer("id"),
//		funparams.Optional(funparams.String("note")),
//	)
//
//	mux.Get("/items/{id}", funparams.Handler(p, funparams.Grouped(
//		func(params map[funparams.Symbol]any) any {
//			return lookupItem(params["id"].(int64), params["note"])
//		},
//	)))
//
// RequestBag builds the parameter bag from an *http.Request (chi route
// params, query string, JSON body), and Respond serializes an *ErrorResult
// as exactly its {status, errors} wire shape. Application-defined validators
// join the combinator set via MarkParam.
package funparams
