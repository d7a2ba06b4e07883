// Package algebra implements the user-facing term layer: ElementaryTerm
// (variable/constant/addition expressions over the presentation's semantic
// domain) and RelationalAlgebraTerm (atomic relation applications combined
// with the Boolean connectives and existential projection), both of which
// desugar to formula.Formula and delegate compilation to the presentation
// they are evaluated against.
//
// This consolidates what upstream automatic-presentation tooling often
// splits into a separate Relation/Term layer and a RelationalAlgebraTerm/
// ElementaryTerm layer duplicating the same functionality under different
// names: here there is exactly one algebra.
package algebra

import "sort"

// ElementaryTerm is an expression over the semantic domain (naturals or
// integers, depending on the presentation): a variable, a literal constant,
// or the sum of two subterms.
type ElementaryTerm interface {
	elementaryTerm()
	// FreeVars returns the term's free variable names, sorted and deduped.
	FreeVars() []string
}

// Variable references a free variable by name.
type Variable struct {
	Name string
}

// Var builds a Variable term.
func Var(name string) ElementaryTerm { return Variable{Name: name} }

func (Variable) elementaryTerm() {}

// FreeVars implements ElementaryTerm.
func (v Variable) FreeVars() []string { return []string{v.Name} }

// Constant is a literal value of the semantic domain.
type Constant struct {
	N uint64
}

// Const builds a Constant term.
func Const(n uint64) ElementaryTerm { return Constant{N: n} }

func (Constant) elementaryTerm() {}

// FreeVars implements ElementaryTerm.
func (Constant) FreeVars() []string { return nil }

// additionTerm is the sum of two subterms.
type additionTerm struct {
	L, R ElementaryTerm
}

// Add builds the term L + R.
func Add(l, r ElementaryTerm) ElementaryTerm { return additionTerm{L: l, R: r} }

func (additionTerm) elementaryTerm() {}

// FreeVars implements ElementaryTerm.
func (a additionTerm) FreeVars() []string { return unionVars(a.L.FreeVars(), a.R.FreeVars()) }

// Mul desugars multiplication of t by the non-negative constant c via
// binary-expansion doubling: it builds the chain t, t+t, t+t+t+t, ... (each
// entry double the last) and sums the chain entries whose bit of c is set.
// This bounds the number of distinct auxiliary term objects to O(log c)
// instead of the O(c) a naive repeated-addition desugaring would need.
func Mul(t ElementaryTerm, c uint64) ElementaryTerm {
	if c == 0 {
		return Const(0)
	}
	chain := []ElementaryTerm{t}
	for (uint64(1) << uint(len(chain))) <= c {
		prev := chain[len(chain)-1]
		chain = append(chain, Add(prev, prev))
	}

	var sum ElementaryTerm
	for i, entry := range chain {
		if c&(uint64(1)<<uint(i)) == 0 {
			continue
		}
		if sum == nil {
			sum = entry
		} else {
			sum = Add(sum, entry)
		}
	}
	return sum
}

func unionVars(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, v := range a {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range b {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
