package funparams

///////////////////////////////////////////////////////////////////////////////
// Success Capture
///////////////////////////////////////////////////////////////////////////////

// capture is the request-scoped success cell an aggregator hands to each
// child: if the child succeeds, the cell holds its delivered value; if the
// child fails, the cell is never written and the child's *ErrorResult comes
// back through the error return. A fresh cell is allocated per child per
// invocation, so parsers stay safe for concurrent use.
type capture struct {
	called bool
	value  any
}

// cont returns the capturing continuation matching the child's delivery
// shape: flat value for single-parameter children, merged map otherwise.
func (c *capture) cont(child *Parser) Cont {
	if !child.multi && len(child.params) == 1 {
		return Value(func(v any) any {
			c.called, c.value = true, v
			return nil
		})
	}
	return Grouped(func(m map[Symbol]any) any {
		c.called, c.value = true, m
		return nil
	})
}

type childOutcome struct {
	value any
	err   error
}

// runChildren evaluates every child against the bag. Evaluation is eager;
// selection of the reported failure is the caller's policy, applied over the
// outcomes by original child index.
func runChildren(children []*Parser, bag Bag) []childOutcome {
	outs := make([]childOutcome, len(children))
	for i, c := range children {
		cell := &capture{}
		_, err := c.run(bag, cell.cont(c))
		outs[i] = childOutcome{value: cell.value, err: err}
	}
	return outs
}

// checkChildren validates aggregator composition: every child must carry
// parameter metadata and no parameter may be claimed by two siblings. Both
// are defects, raised immediately at construction regardless of input.
func checkChildren(op string, children []*Parser) []Symbol {
	if len(children) == 0 {
		configErrorf("%s requires at least one child parser", op)
	}
	var params []Symbol
	claimed := make(map[Symbol]int, len(children))
	for i, c := range children {
		if c == nil {
			configErrorf("%s child %d is nil", op, i)
		}
		if len(c.params) == 0 {
			configErrorf("%s child %d carries no parameter metadata; wrap it with MarkParam", op, i)
		}
		for _, p := range c.params {
			if j, dup := claimed[p]; dup {
				configErrorf("%s: parameter '%s' is claimed by both child %d and child %d", op, p, j, i)
			}
			claimed[p] = i
			params = append(params, p)
		}
	}
	return params
}

// mergeOutcomes rebuilds the parameter -> value map from the successful
// children. Single-parameter children contribute their flat value under
// their declared parameter; multi-parameter children contribute their own
// merged map. Disjointness across siblings was enforced at construction.
func mergeOutcomes(children []*Parser, outs []childOutcome) map[Symbol]any {
	merged := make(map[Symbol]any)
	for i, c := range children {
		if outs[i].err != nil {
			continue
		}
		if !c.multi && len(c.params) == 1 {
			merged[c.params[0]] = outs[i].value
		} else {
			for kk, vv := range outs[i].value.(map[Symbol]any) {
				merged[kk] = vv
			}
		}
	}
	return merged
}

///////////////////////////////////////////////////////////////////////////////
// RequireAll
///////////////////////////////////////////////////////////////////////////////

// RequireAll combines children into a parser that succeeds only when every
// child succeeds. All children are evaluated eagerly; when several fail, the
// error of the first failing child in declaration order is returned.
//
// Supported continuation shapes: Unit, Grouped, and Positional. Positional
// delivery hands each child's flat result in declaration order and is only
// legal when no child is itself a multi-parameter composition.
func RequireAll(children ...*Parser) *Parser {
	params := checkChildren("RequireAll", children)
	return &Parser{
		params: params,
		multi:  true,
		run: func(bag Bag, k Cont) (any, error) {
			switch k.kind {
			case contUnit, contGrouped:
			case contPositional:
				for _, c := range children {
					if c.multi || len(c.params) != 1 {
						configErrorf("RequireAll: positional continuation cannot receive multi-parameter child with parameters %v", c.params)
					}
				}
			default:
				configErrorf("RequireAll does not support a %s continuation; use Unit, Grouped, or Positional", k.kind)
			}

			outs := runChildren(children, bag)
			for _, o := range outs {
				if o.err != nil {
					return nil, o.err
				}
			}

			switch k.kind {
			case contUnit:
				return k.unit(), nil
			case contPositional:
				vals := make([]any, len(outs))
				for i, o := range outs {
					vals[i] = o.value
				}
				return k.positional(vals...), nil
			default:
				return k.grouped(mergeOutcomes(children, outs)), nil
			}
		},
	}
}

///////////////////////////////////////////////////////////////////////////////
// RequireAny
///////////////////////////////////////////////////////////////////////////////

// RequireAny combines children into a parser that succeeds when at least one
// child succeeds, delivering the merged map built from the successful
// children only. When every child fails, the reported error prefers a child
// whose parameter was actually present in the bag (an attempted value beats
// a merely missing one); among those, the first in declaration order wins.
// If no child's parameter was present, the last child's error is returned.
//
// Supported continuation shapes: Unit and Grouped. The contributing children
// are data-dependent, so positional delivery cannot be unambiguous here.
func RequireAny(children ...*Parser) *Parser {
	params := checkChildren("RequireAny", children)
	return &Parser{
		params: params,
		multi:  true,
		run: func(bag Bag, k Cont) (any, error) {
			if k.kind != contUnit && k.kind != contGrouped {
				configErrorf("RequireAny does not support a %s continuation; use Unit or Grouped", k.kind)
			}

			outs := runChildren(children, bag)

			succeeded := false
			for _, o := range outs {
				if o.err == nil {
					succeeded = true
					break
				}
			}
			if !succeeded {
				for i, c := range children {
					if anyParamPresent(bag, c) {
						return nil, outs[i].err
					}
				}
				return nil, outs[len(outs)-1].err
			}

			if k.kind == contUnit {
				return k.unit(), nil
			}
			return k.grouped(mergeOutcomes(children, outs)), nil
		},
	}
}

// anyParamPresent reports whether any of the child's declared parameters is
// present in the bag.
func anyParamPresent(bag Bag, child *Parser) bool {
	for _, p := range child.params {
		if _, ok := bag.Lookup(p); ok {
			return true
		}
	}
	return false
}

///////////////////////////////////////////////////////////////////////////////
// Either
///////////////////////////////////////////////////////////////////////////////

// Either tries a, and only if a fails tries b: a true short-circuit, unlike
// the aggregator-wide eager evaluation of RequireAll and RequireAny, since
// there are exactly two fixed children. If both fail, b's error is returned.
//
// The winner's value is delivered to a Value continuation directly, or to a
// Grouped continuation re-associated under the winner's parameter (a
// single-parameter winner is wrapped into a one-key map; a multi-parameter
// winner contributes its own merged map).
func Either(a, b *Parser) *Parser {
	params := checkChildren("Either", []*Parser{a, b})
	return &Parser{
		params: params,
		multi:  a.multi || b.multi,
		run: func(bag Bag, k Cont) (any, error) {
			if k.kind != contValue && k.kind != contGrouped {
				configErrorf("Either does not support a %s continuation; use Value or Grouped", k.kind)
			}
			if v, err := runAlternative(a, bag, k); err == nil {
				return v, nil
			}
			return runAlternative(b, bag, k)
		},
	}
}

// runAlternative invokes one Either child and, on success, delivers the
// captured value under k's declared shape. A multi child only ever delivers
// a merged map; a nested Either delivers its winner's flat value under a
// Value continuation and a re-associated map under a Grouped one.
func runAlternative(c *Parser, bag Bag, k Cont) (any, error) {
	cell := &capture{}
	var kc Cont
	if c.multi || (k.kind == contGrouped && len(c.params) > 1) {
		kc = Grouped(func(m map[Symbol]any) any {
			cell.called, cell.value = true, m
			return nil
		})
	} else {
		kc = Value(func(v any) any {
			cell.called, cell.value = true, v
			return nil
		})
	}
	if _, err := c.run(bag, kc); err != nil {
		return nil, err
	}
	if k.kind == contValue {
		return k.value(cell.value), nil
	}
	if !c.multi && len(c.params) == 1 {
		return k.grouped(map[Symbol]any{c.params[0]: cell.value}), nil
	}
	return k.grouped(cell.value.(map[Symbol]any)), nil
}
