package formula

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dekarrin/autstr/automaton"
	"github.com/dekarrin/autstr/convolution"
)

// ErrUnknownRelation is returned when an Application names a predicate not
// present in the RelationEnv.
var ErrUnknownRelation = errors.New("formula: unknown relation")

// RelationEnv is the read-only view of a relation environment the compiler
// needs: the universe relation (for restricting negation to well-formed
// tuples) and lookup of named relations by arity-preserving DFA.
type RelationEnv interface {
	Lookup(name string) (*automaton.DFA, bool)
	Universe() *automaton.DFA
	PaddingSymbol() string
}

// Compile translates phi into a padded DFA over Sigma^k, k = |free(phi)|,
// with columns ordered by the alphabetic sort of phi's free variable names.
func Compile(env RelationEnv, phi Formula) (*automaton.DFA, error) {
	switch phi.Kind() {
	case KindApplication:
		return compileApplication(env, AsApplication(phi))
	case KindAnd:
		left, right := AsAnd(phi)
		return compileBinary(env, left, right, automaton.Intersection)
	case KindOr:
		left, right := AsOr(phi)
		return compileBinary(env, left, right, automaton.Union)
	case KindNot:
		return compileNot(env, AsNot(phi))
	case KindExists:
		vars, body := AsExists(phi)
		return compileExists(env, vars, body)
	case KindForAll:
		vars, body := AsForAll(phi)
		// forall x.psi === not exists x. not psi, restricted to the universe
		// by the Not case's domain intersection.
		return Compile(env, NewNot(NewExists(NewNot(body), vars...)))
	default:
		return nil, fmt.Errorf("formula: unhandled kind %s", phi.Kind())
	}
}

func compileApplication(env RelationEnv, app Application) (*automaton.DFA, error) {
	rel, ok := env.Lookup(app.Pred)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRelation, app.Pred)
	}
	ambient := app.FreeVars()
	oldToNew := make([]int, len(app.Args))
	for i, v := range app.Args {
		oldToNew[i] = indexOf(ambient, v)
	}
	expanded, err := convolution.Expand(rel, len(ambient), oldToNew)
	if err != nil {
		return nil, err
	}
	return automaton.Minimize(expanded), nil
}

func compileBinary(env RelationEnv, left, right Formula, combine func(a, b *automaton.DFA) (*automaton.DFA, error)) (*automaton.DFA, error) {
	lDFA, err := Compile(env, left)
	if err != nil {
		return nil, err
	}
	rDFA, err := Compile(env, right)
	if err != nil {
		return nil, err
	}

	ambient := unionVars(left.FreeVars(), right.FreeVars())
	lExpanded, err := expandToAmbient(lDFA, left.FreeVars(), ambient)
	if err != nil {
		return nil, err
	}
	rExpanded, err := expandToAmbient(rDFA, right.FreeVars(), ambient)
	if err != nil {
		return nil, err
	}

	combined, err := combine(lExpanded, rExpanded)
	if err != nil {
		return nil, err
	}
	return automaton.Minimize(combined), nil
}

func compileNot(env RelationEnv, n Not) (*automaton.DFA, error) {
	// double negation shortcut
	if n.Sub.Kind() == KindNot {
		return Compile(env, AsNot(n.Sub).Sub)
	}

	sub, err := Compile(env, n.Sub)
	if err != nil {
		return nil, err
	}
	arity := len(n.Sub.FreeVars())
	comp := automaton.Complement(sub)

	domain, err := convolution.Product(env.Universe(), arity)
	if err != nil {
		return nil, err
	}
	restricted, err := automaton.Intersection(comp, domain)
	if err != nil {
		return nil, err
	}
	return automaton.Minimize(restricted), nil
}

func compileExists(env RelationEnv, vars []string, body Formula) (*automaton.DFA, error) {
	current, err := Compile(env, body)
	if err != nil {
		return nil, err
	}
	currentVars := body.FreeVars()
	pad := env.PaddingSymbol()

	for _, v := range vars {
		idx := indexOf(currentVars, v)
		if idx < 0 {
			// v does not occur free in the current subresult; no-op.
			continue
		}
		unpadded := convolution.Unpad(current, pad)
		projected, err := convolution.Projection(unpadded, idx)
		if err != nil {
			return nil, err
		}
		projected = automaton.Minimize(projected)
		current = automaton.Minimize(convolution.Pad(projected, pad))
		currentVars = removeAt(currentVars, idx)
	}
	return current, nil
}

// expandToAmbient expands a DFA whose columns correspond to ownVars (sorted)
// to the wider, also-sorted ambient free-variable list.
func expandToAmbient(dfa *automaton.DFA, ownVars, ambient []string) (*automaton.DFA, error) {
	if len(ownVars) == len(ambient) {
		same := true
		for i := range ownVars {
			if ownVars[i] != ambient[i] {
				same = false
				break
			}
		}
		if same {
			return dfa, nil
		}
	}
	oldToNew := make([]int, len(ownVars))
	for i, v := range ownVars {
		oldToNew[i] = indexOf(ambient, v)
	}
	return convolution.Expand(dfa, len(ambient), oldToNew)
}

func indexOf(vars []string, v string) int {
	for i, x := range vars {
		if x == v {
			return i
		}
	}
	return -1
}

func removeAt(vars []string, idx int) []string {
	out := make([]string, 0, len(vars)-1)
	out = append(out, vars[:idx]...)
	out = append(out, vars[idx+1:]...)
	sort.Strings(out)
	return out
}
