package funparams

import "reflect"

///////////////////////////////////////////////////////////////////////////////
// Decorator Parsers
///////////////////////////////////////////////////////////////////////////////

// requireSingleChild validates that a decorator's child is a bound
// single-parameter parser and returns its parameter identity.
func requireSingleChild(op string, child *Parser) Symbol {
	if child == nil {
		configErrorf("%s requires a non-nil child parser", op)
	}
	if len(child.params) == 0 {
		configErrorf("%s child parser carries no parameter metadata; wrap it with MarkParam", op)
	}
	if child.multi || len(child.params) > 1 {
		configErrorf("%s requires a single-parameter child, got parameters %v", op, child.params)
	}
	return child.params[0]
}

// Optional succeeds with a nil value when the child's parameter is absent
// from the bag, skipping the child's validation entirely. When the parameter
// is present, the child runs in full, including its own failure modes.
func Optional(child *Parser) *Parser {
	name := requireSingleChild("Optional", child)
	return &Parser{
		params: child.params,
		run: func(bag Bag, k Cont) (any, error) {
			if _, ok := bag.Lookup(name); !ok {
				return deliverValue(k, name, nil), nil
			}
			return child.run(bag, k)
		},
	}
}

// NonEmpty requires the child's parameter to be present and its raw value
// (string or collection) to be non-empty before delegating to the child's
// full validation.
func NonEmpty(child *Parser) *Parser {
	name := requireSingleChild("NonEmpty", child)
	return &Parser{
		params: child.params,
		run: func(bag Bag, k Cont) (any, error) {
			raw, ok := bag.Lookup(name)
			if !ok {
				return nil, MissingParameter(name)
			}
			if rawEmpty(raw) {
				return nil, ExpectedNonEmpty(name)
			}
			return child.run(bag, k)
		},
	}
}

// WithDefault substitutes fallback for the child's parameter when the bag
// holds an explicit nil. Absence is left untouched; only a present null is
// replaced. The substitution happens on a copy, never on the caller's bag.
func WithDefault(fallback any, child *Parser) *Parser {
	name := requireSingleChild("WithDefault", child)
	return &Parser{
		params: child.params,
		run: func(bag Bag, k Cont) (any, error) {
			if raw, ok := bag.Lookup(name); ok && raw == nil {
				patched := bag.clone()
				patched[name] = fallback
				return child.run(patched, k)
			}
			return child.run(bag, k)
		},
	}
}

// Map delegates to the child and passes the child's success value through fn
// before it reaches the continuation. Validation is not repeated; only the
// delivered value changes. When the child is an aggregator, fn receives the
// merged parameter map and must return a map[Symbol]any if the outer
// continuation expects the grouped form.
func Map(fn func(v any) any, child *Parser) *Parser {
	if fn == nil {
		configErrorf("Map requires a non-nil transform function")
	}
	if child == nil {
		configErrorf("Map requires a non-nil child parser")
	}
	if len(child.params) == 0 {
		configErrorf("Map child parser carries no parameter metadata; wrap it with MarkParam")
	}
	single := !child.multi && len(child.params) == 1
	return &Parser{
		params: child.params,
		multi:  child.multi,
		run: func(bag Bag, k Cont) (any, error) {
			switch k.kind {
			case contValue:
				return child.run(bag, Value(func(v any) any {
					return k.value(fn(v))
				}))
			case contGrouped:
				if single {
					name := child.params[0]
					return child.run(bag, Value(func(v any) any {
						return k.grouped(map[Symbol]any{name: fn(v)})
					}))
				}
				return child.run(bag, Grouped(func(m map[Symbol]any) any {
					out, ok := fn(m).(map[Symbol]any)
					if !ok {
						configErrorf("Map transform over parameters %v must return map[Symbol]any for a grouped continuation", child.params)
					}
					return k.grouped(out)
				}))
			case contUnit:
				// No value reaches the continuation, so there is nothing to
				// transform; delegate untouched.
				return child.run(bag, k)
			default:
				configErrorf("Map over parameters %v does not support a %s continuation", child.params, k.kind)
				return nil, nil
			}
		},
	}
}

// rawEmpty reports whether a raw bag value counts as empty for NonEmpty:
// zero-length strings, sequences, and mappings. Scalars are never empty; an
// explicit nil is.
func rawEmpty(raw any) bool {
	if raw == nil {
		return true
	}
	switch v := raw.(type) {
	case string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}
