package funparams

///////////////////////////////////////////////////////////////////////////////
// Continuations
///////////////////////////////////////////////////////////////////////////////

type contKind int

const (
	contValue contKind = iota
	contUnit
	contGrouped
	contPositional
)

func (k contKind) String() string {
	switch k {
	case contValue:
		return "value"
	case contUnit:
		return "unit"
	case contGrouped:
		return "grouped"
	case contPositional:
		return "positional"
	}
	return "unknown"
}

// Cont is a success continuation with an explicit calling convention. A
// parser only ever invokes the continuation on success; on failure it
// returns an *ErrorResult instead and the continuation is never called.
//
// The declared shape replaces runtime arity inspection:
//   - Value: receives the parser's single success value
//   - Unit: receives nothing (the caller only cares that validation passed)
//   - Grouped: receives the merged parameter -> value map
//   - Positional: receives one flat value per aggregator child, in order
//
// Which shapes a parser accepts is fixed per parser family; passing an
// unsupported shape is a ConfigError, raised at invocation time.
type Cont struct {
	kind       contKind
	value      func(v any) any
	unit       func() any
	grouped    func(params map[Symbol]any) any
	positional func(vals ...any) any
}

// Value wraps a continuation taking the parser's single success value.
func Value(fn func(v any) any) Cont {
	return Cont{kind: contValue, value: fn}
}

// Unit wraps a continuation taking no value at all.
func Unit(fn func() any) Cont {
	return Cont{kind: contUnit, unit: fn}
}

// Grouped wraps a continuation taking the merged parameter map.
func Grouped(fn func(params map[Symbol]any) any) Cont {
	return Cont{kind: contGrouped, grouped: fn}
}

// Positional wraps a continuation taking one value per aggregator child,
// in child declaration order.
func Positional(fn func(vals ...any) any) Cont {
	return Cont{kind: contPositional, positional: fn}
}

///////////////////////////////////////////////////////////////////////////////
// Parser
///////////////////////////////////////////////////////////////////////////////

// RawFunc is the minimal invocation contract for an externally defined
// validator: inspect the bag, then either call k with the validated value and
// return its result, or return an *ErrorResult. Wrap a RawFunc with MarkParam
// to attach the parameter metadata aggregators require.
type RawFunc func(bag Bag, k func(v any) any) (any, error)

// A Factory is the unbound form of a parser: given a parameter identity it
// returns a bound Parser. Every base parser constructor (Integer, String, ...)
// is itself a Factory, so collections compose directly:
//
//	Array("xs", Integer)
type Factory func(name Symbol) *Parser

// Parser validates one or more named parameters out of a Bag. A Parser is
// immutable once constructed and carries the metadata aggregators need to
// rebuild a parameter map from its success value:
//
//   - params: the declared parameter identities, in declaration order
//   - multi: whether the success continuation receives an aggregate
//     (parameter map) rather than a single flat value
//
// Parsers are stateless; all per-invocation bookkeeping lives on the stack of
// Parse, so a Parser may be shared and invoked concurrently.
type Parser struct {
	params []Symbol
	multi  bool
	run    func(bag Bag, k Cont) (any, error)
}

// Params returns the parameter identities this parser validates, in
// declaration order.
func (p *Parser) Params() []Symbol {
	return p.params
}

// Multi reports whether the parser's success continuation receives a merged
// parameter map rather than a single flat value.
func (p *Parser) Multi() bool {
	return p.multi
}

// Parse runs the parser against bag. On success it invokes k and returns
// k's result with a nil error; on validation failure it returns a non-nil
// *ErrorResult as the error and never invokes k.
func (p *Parser) Parse(bag Bag, k Cont) (any, error) {
	return p.run(bag, k)
}

// deliverValue adapts a single success value to the continuation shapes a
// single-parameter parser supports.
func deliverValue(k Cont, name Symbol, v any) any {
	switch k.kind {
	case contValue:
		return k.value(v)
	case contGrouped:
		return k.grouped(map[Symbol]any{name: v})
	default:
		configErrorf("parser for parameter '%s' does not support a %s continuation", name, k.kind)
		return nil
	}
}

// MarkParam attaches parameter-identity metadata to an application-defined
// validator so it can participate in aggregators alongside the built-in
// parsers.
func MarkParam(name Symbol, raw RawFunc) *Parser {
	if name == "" {
		configErrorf("MarkParam requires a non-empty parameter name")
	}
	if raw == nil {
		configErrorf("MarkParam requires a non-nil validator for parameter '%s'", name)
	}
	return &Parser{
		params: []Symbol{name},
		run: func(bag Bag, k Cont) (any, error) {
			return raw(bag, func(v any) any {
				return deliverValue(k, name, v)
			})
		},
	}
}
