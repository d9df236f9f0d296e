package funparams

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

///////////////////////////////////////////////////////////////////////////////
// Collection Parsers
///////////////////////////////////////////////////////////////////////////////

// Array validates that the named parameter is a sequence and applies elem to
// every element. The element factory is bound per element to the element's
// decimal index, so failures report the index as their parameter.
//
// Every element is evaluated; when several fail the reported failure is the
// one with the lowest original index, independent of evaluation order. An
// empty sequence succeeds with an empty result.
func Array(name Symbol, elem Factory) *Parser {
	if elem == nil {
		configErrorf("Array('%s') requires a non-nil element factory", name)
	}
	return &Parser{
		params: []Symbol{name},
		run: func(bag Bag, k Cont) (any, error) {
			raw, ok := bag.Lookup(name)
			if !ok {
				return nil, MissingParameter(name)
			}
			items, ok := asSequence(raw)
			if !ok {
				return nil, ExpectedArray(name)
			}

			// Request-scoped accumulators: values by original index, plus
			// the lowest failing index seen so far.
			values := make([]any, len(items))
			failedAt := -1
			var failure error
			for i, item := range items {
				idx := Symbol(strconv.Itoa(i))
				p := elem(idx)
				if p == nil {
					configErrorf("Array('%s') element factory returned a nil parser for index %d", name, i)
				}
				v, err := p.Parse(Bag{idx: item}, Value(passThrough))
				if err != nil {
					if failedAt == -1 || i < failedAt {
						failedAt, failure = i, err
					}
					continue
				}
				values[i] = v
			}
			if failure != nil {
				return nil, failure
			}
			return deliverValue(k, name, values), nil
		},
	}
}

// Dictionary validates that the named parameter is a mapping and applies
// entry to every key/value pair. The entry factory is bound to the entry's
// textual key and receives the pair as a [2]any{key, value}; on success it
// must deliver a (possibly transformed) [2]any pair, and the surviving pairs
// are reassembled into a mapping.
//
// Go maps carry no insertion order, so entries are processed in lexicographic
// key order and the reported failure is the first in that order.
func Dictionary(name Symbol, entry Factory) *Parser {
	if entry == nil {
		configErrorf("Dictionary('%s') requires a non-nil entry factory", name)
	}
	return &Parser{
		params: []Symbol{name},
		run: func(bag Bag, k Cont) (any, error) {
			raw, ok := bag.Lookup(name)
			if !ok {
				return nil, MissingParameter(name)
			}
			entries, ok := asMapping(raw)
			if !ok {
				return nil, ExpectedObject(name)
			}

			out := make(map[any]any, len(entries))
			failedAt := -1
			var failure error
			for i, e := range entries {
				sym := Symbol(e.key)
				p := entry(sym)
				if p == nil {
					configErrorf("Dictionary('%s') entry factory returned a nil parser for key '%s'", name, e.key)
				}
				v, err := p.Parse(Bag{sym: [2]any{e.key, e.value}}, Value(passThrough))
				if err != nil {
					if failedAt == -1 || i < failedAt {
						failedAt, failure = i, err
					}
					continue
				}
				pair, ok := v.([2]any)
				if !ok {
					configErrorf("Dictionary('%s') entry parser for key '%s' delivered %T, want [2]any{key, value}", name, e.key, v)
				}
				out[pair[0]] = pair[1]
			}
			if failure != nil {
				return nil, failure
			}
			return deliverValue(k, name, out), nil
		},
	}
}

func passThrough(v any) any { return v }

///////////////////////////////////////////////////////////////////////////////
// Shape Helpers
///////////////////////////////////////////////////////////////////////////////

// asSequence normalizes a raw value to []any. JSON-origin sequences are
// already []any; other slice and array kinds are converted via reflection.
func asSequence(raw any) ([]any, bool) {
	if items, ok := raw.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, true
	default:
		return nil, false
	}
}

type mapEntry struct {
	key   string
	value any
}

// asMapping normalizes a raw value to an ordered entry list, sorted by key.
func asMapping(raw any) ([]mapEntry, bool) {
	var entries []mapEntry

	switch m := raw.(type) {
	case map[string]any:
		entries = make([]mapEntry, 0, len(m))
		for k, v := range m {
			entries = append(entries, mapEntry{key: k, value: v})
		}
	case Bag:
		entries = make([]mapEntry, 0, len(m))
		for k, v := range m {
			entries = append(entries, mapEntry{key: fmt.Sprintf("%v", k), value: v})
		}
	default:
		rv := reflect.ValueOf(raw)
		if rv.Kind() != reflect.Map {
			return nil, false
		}
		entries = make([]mapEntry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, mapEntry{
				key:   fmt.Sprintf("%v", iter.Key().Interface()),
				value: iter.Value().Interface(),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return entries, true
}
