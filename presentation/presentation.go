// Package presentation implements AutomaticPresentation: a mutable, named
// environment of relation DFAs rooted at a reserved universe relation "U",
// with formula evaluation delegated to the formula package.
package presentation

import (
	"sort"

	"github.com/google/uuid"

	"github.com/dekarrin/autstr/automaton"
	"github.com/dekarrin/autstr/convolution"
	"github.com/dekarrin/autstr/formula"
	"github.com/dekarrin/autstr/internal/diag"
)

// UniverseKey is the reserved relation name for the universe.
const UniverseKey = "U"

var tracer = diag.New("presentation")

// Presentation is a named environment of relation DFAs, all sharing one
// base alphabet and padding symbol. It implements formula.RelationEnv so
// it can serve as the evaluation environment for its own formulas.
type Presentation struct {
	id        uuid.UUID
	padding   string
	alphabet  []string
	universe  *automaton.DFA
	relations map[string]*automaton.DFA

	// compileCache memoizes formula.Compile by the compiled formula's
	// String() form, since repeated Evaluate/Check calls against an
	// unchanged environment (e.g. an enumerator re-deriving the same
	// subformula) would otherwise recompile from scratch every time. Update
	// clears it, since installing or replacing any relation can change what
	// every cached formula compiles to.
	compileCache map[string]*automaton.DFA
}

// New builds a Presentation from an initial set of relations, which must
// include "U" (a 1-ary DFA over the base alphabet). Every relation is
// prepared per the constructor rule: U is padded and minimized; every other
// relation of arity k is intersected with the k-fold Cartesian product of
// the padded universe and minimized.
func New(padding string, relations map[string]*automaton.DFA) (*Presentation, error) {
	uRaw, ok := relations[UniverseKey]
	if !ok {
		return nil, ErrNoUniverse
	}
	if uRaw.Arity() != 1 {
		return nil, wrapf(nil, "universe relation must have arity 1, got %d", uRaw.Arity())
	}

	p := &Presentation{
		id:           uuid.New(),
		padding:      padding,
		alphabet:     uRaw.Alphabet(),
		relations:    make(map[string]*automaton.DFA, len(relations)),
		compileCache: make(map[string]*automaton.DFA),
	}
	p.universe = automaton.Minimize(convolution.Pad(uRaw, padding))
	p.relations[UniverseKey] = p.universe

	for name, rel := range relations {
		if name == UniverseKey {
			continue
		}
		prepared, err := p.prepare(rel)
		if err != nil {
			return nil, wrapf(err, "preparing relation %q", name)
		}
		p.relations[name] = prepared
	}
	return p, nil
}

// prepare restricts rel to tuples whose every component is a valid,
// already-padded encoding of a universe element, then minimizes.
func (p *Presentation) prepare(rel *automaton.DFA) (*automaton.DFA, error) {
	domain, err := convolution.Product(p.universe, rel.Arity())
	if err != nil {
		return nil, err
	}
	restricted, err := automaton.Intersection(rel, domain)
	if err != nil {
		return nil, err
	}
	return automaton.Minimize(restricted), nil
}

// Lookup implements formula.RelationEnv.
func (p *Presentation) Lookup(name string) (*automaton.DFA, bool) {
	d, ok := p.relations[name]
	return d, ok
}

// Universe implements formula.RelationEnv.
func (p *Presentation) Universe() *automaton.DFA {
	return p.universe
}

// PaddingSymbol implements formula.RelationEnv.
func (p *Presentation) PaddingSymbol() string {
	return p.padding
}

// GetRelationSymbols returns the names currently installed, sorted, so
// callers can allocate fresh symbol names disjoint from them.
func (p *Presentation) GetRelationSymbols() []string {
	names := make([]string, 0, len(p.relations))
	for n := range p.relations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Update installs or replaces the relation named name. value may be a
// *automaton.DFA (prepared the same way as at construction), a
// formula.Formula, or a formula source string (parsed then compiled against
// the current environment). "U" may only be updated with a *automaton.DFA.
//
// If compilation or preparation fails, the environment is left exactly as
// it was before the call.
func (p *Presentation) Update(name string, value any) error {
	id := tracer.Start("update " + name)

	var prepared *automaton.DFA
	var err error

	switch v := value.(type) {
	case *automaton.DFA:
		if name == UniverseKey {
			prepared = automaton.Minimize(convolution.Pad(v, p.padding))
		} else {
			prepared, err = p.prepare(v)
		}
	case formula.Formula:
		if name == UniverseKey {
			return ErrReservedName
		}
		prepared, err = formula.Compile(p, v)
	case string:
		if name == UniverseKey {
			return ErrReservedName
		}
		var phi formula.Formula
		phi, err = formula.Parse(v)
		if err == nil {
			prepared, err = formula.Compile(p, phi)
		}
	default:
		err = ErrBadValue
	}

	if err != nil {
		tracer.Errorf(id, "%s", err)
		return err
	}

	if name == UniverseKey {
		p.universe = prepared
	}
	p.relations[name] = prepared
	p.compileCache = make(map[string]*automaton.DFA)
	tracer.End(id, "update "+name)
	return nil
}

// compileCached compiles f against the current environment, returning a
// cached result if f (by its String() form) was already compiled since the
// last Update. Bypassed entirely while a transient override is in effect,
// since a cache entry keyed only on formula text would otherwise leak
// across different override sets.
func (p *Presentation) compileCached(f formula.Formula, overridden bool) (*automaton.DFA, error) {
	if overridden {
		return formula.Compile(p, f)
	}
	key := f.String()
	if d, ok := p.compileCache[key]; ok {
		return d, nil
	}
	d, err := formula.Compile(p, f)
	if err != nil {
		return nil, err
	}
	p.compileCache[key] = d
	return d, nil
}

// Evaluate compiles phi (a formula.Formula or formula source string) against
// the current environment, optionally overlaid with transient bindings in
// overrides, and unpads the result when phi has free variables. The
// environment is restored to its pre-call state once evaluation finishes,
// whether or not it succeeds.
func (p *Presentation) Evaluate(phi any, overrides map[string]*automaton.DFA) (*automaton.DFA, error) {
	f, err := toFormula(phi)
	if err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		backup := p.relations
		merged := make(map[string]*automaton.DFA, len(backup)+len(overrides))
		for k, v := range backup {
			merged[k] = v
		}
		for k, v := range overrides {
			merged[k] = v
		}
		p.relations = merged
		defer func() { p.relations = backup }()
	}

	result, err := p.compileCached(f, len(overrides) > 0)
	if err != nil {
		return nil, err
	}
	if len(f.FreeVars()) > 0 {
		result = convolution.Unpad(result, p.padding)
	}
	return result, nil
}

// Check returns whether phi is satisfiable: its free variables are
// implicitly existentially quantified.
func (p *Presentation) Check(phi any) (bool, error) {
	f, err := toFormula(phi)
	if err != nil {
		return false, err
	}
	result, err := p.compileCached(f, false)
	if err != nil {
		return false, err
	}
	return !automaton.IsEmpty(result), nil
}

func toFormula(phi any) (formula.Formula, error) {
	switch v := phi.(type) {
	case formula.Formula:
		return v, nil
	case string:
		return formula.Parse(v)
	default:
		return nil, ErrBadValue
	}
}
