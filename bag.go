package funparams

///////////////////////////////////////////////////////////////////////////////
// Parameter Bag
///////////////////////////////////////////////////////////////////////////////

// Symbol is the symbolic form of a parameter name. Producers that know the
// parameter's identity ahead of time (route params, query strings) key bag
// entries under a Symbol; producers that only see textual keys (a decoded
// JSON body) key entries under plain strings.
type Symbol string

// Bag is the flat input mapping of parameter names to raw, already-decoded
// values (scalars, sequences, mappings). A single logical parameter may be
// stored under either its Symbol key or its textual key; Lookup checks both.
type Bag map[any]any

// Lookup resolves name against the bag, preferring the symbolic key over the
// textual key when both are present.
//
// The returned bool distinguishes absence from an explicit nil value: a bag
// entry holding nil yields (nil, true), a missing entry yields (nil, false).
func (b Bag) Lookup(name Symbol) (any, bool) {
	if v, ok := b[name]; ok {
		return v, true
	}
	if v, ok := b[string(name)]; ok {
		return v, true
	}
	return nil, false
}

// clone returns a shallow copy of the bag. Used by decorators that substitute
// values so that the caller's bag is never mutated.
func (b Bag) clone() Bag {
	out := make(Bag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
