package algebra

import (
	"fmt"

	"github.com/dekarrin/autstr/automaton"
	"github.com/dekarrin/autstr/convolution"
	"github.com/dekarrin/autstr/formula"
	"github.com/dekarrin/autstr/presentation"
)

// lsbfLiteral builds the padded single-value automaton a Constant's graph
// is registered under.
func lsbfLiteral(n uint64, padding string) *automaton.DFA {
	return convolution.Pad(convolution.LsbfAutomaton(n), padding)
}

// RelationalAlgebraTerm is a user-facing relational expression: an atomic
// relation applied to ElementaryTerm arguments, or a Boolean/existential
// combination of other RelationalAlgebraTerms.
type RelationalAlgebraTerm interface {
	relationalAlgebraTerm()
	// FreeVars returns the term's free variable names, sorted and deduped.
	FreeVars() []string
	formula(s *scratch) (formula.Formula, error)
}

// scratch threads the presentation an algebra term is being compiled
// against, plus a fresh-name counter for the auxiliary variables and graph
// relations ElementaryTerm compilation introduces.
type scratch struct {
	env        *presentation.Presentation
	addRelName string
	counter    int
}

func (s *scratch) fresh(prefix string) string {
	s.counter++
	return fmt.Sprintf("%s%d", prefix, s.counter)
}

// graph returns a formula whose free variables are t.FreeVars() plus result,
// true iff result equals t's value under the free variable assignment.
// Addition recurses by introducing one auxiliary result variable per
// operand and existentially quantifying them away once both operand graphs
// and the addition relation have pinned their values.
func graph(t ElementaryTerm, result string, s *scratch) (formula.Formula, error) {
	switch v := t.(type) {
	case Constant:
		name := s.fresh("const")
		lit := automaton.Minimize(lsbfLiteral(v.N, s.env.PaddingSymbol()))
		if err := s.env.Update(name, lit); err != nil {
			return nil, err
		}
		return formula.NewApplication(name, result), nil

	case Variable:
		return formula.NewApplication("Eq", v.Name, result), nil

	case additionTerm:
		auxL := s.fresh("aux")
		auxR := s.fresh("aux")
		lf, err := graph(v.L, auxL, s)
		if err != nil {
			return nil, err
		}
		rf, err := graph(v.R, auxR, s)
		if err != nil {
			return nil, err
		}
		sumApp := formula.NewApplication(s.addRelName, auxL, auxR, result)
		body := formula.NewAnd(formula.NewAnd(lf, rf), sumApp)
		return formula.NewExists(body, auxL, auxR), nil

	default:
		return nil, fmt.Errorf("algebra: unhandled elementary term type %T", t)
	}
}

// baseTerm is an atomic relation application R(t1,...,tm).
type baseTerm struct {
	rel  string
	args []ElementaryTerm
}

// Base builds the atomic term rel(args...). A bare Variable argument is
// used directly as the relation's column; any other argument (a Constant or
// an Addition) is bound through an existentially-quantified guard over its
// graph, per the "Base(R, ts) compiles to R(y1,...,ym) with existential
// guards binding each non-variable ti to its graph" rule.
func Base(rel string, args ...ElementaryTerm) RelationalAlgebraTerm {
	return baseTerm{rel: rel, args: args}
}

func (baseTerm) relationalAlgebraTerm() {}

// FreeVars implements RelationalAlgebraTerm.
func (b baseTerm) FreeVars() []string {
	var vars []string
	for _, a := range b.args {
		vars = unionVars(vars, a.FreeVars())
	}
	return vars
}

func (b baseTerm) formula(s *scratch) (formula.Formula, error) {
	columns := make([]string, len(b.args))
	var existsVars []string
	var guards []formula.Formula
	for i, a := range b.args {
		if v, ok := a.(Variable); ok {
			columns[i] = v.Name
			continue
		}
		y := s.fresh("y")
		g, err := graph(a, y, s)
		if err != nil {
			return nil, err
		}
		columns[i] = y
		existsVars = append(existsVars, y)
		guards = append(guards, g)
	}

	body := formula.Formula(formula.NewApplication(b.rel, columns...))
	for _, g := range guards {
		body = formula.NewAnd(body, g)
	}
	if len(existsVars) > 0 {
		body = formula.NewExists(body, existsVars...)
	}
	return body, nil
}

// binaryTerm is the shared shape of Intersection and Union.
type binaryTerm struct {
	and  bool
	l, r RelationalAlgebraTerm
}

// Intersection builds l AND r.
func Intersection(l, r RelationalAlgebraTerm) RelationalAlgebraTerm {
	return binaryTerm{and: true, l: l, r: r}
}

// Union builds l OR r.
func Union(l, r RelationalAlgebraTerm) RelationalAlgebraTerm {
	return binaryTerm{and: false, l: l, r: r}
}

func (binaryTerm) relationalAlgebraTerm() {}

// FreeVars implements RelationalAlgebraTerm.
func (b binaryTerm) FreeVars() []string { return unionVars(b.l.FreeVars(), b.r.FreeVars()) }

func (b binaryTerm) formula(s *scratch) (formula.Formula, error) {
	lf, err := b.l.formula(s)
	if err != nil {
		return nil, err
	}
	rf, err := b.r.formula(s)
	if err != nil {
		return nil, err
	}
	if b.and {
		return formula.NewAnd(lf, rf), nil
	}
	return formula.NewOr(lf, rf), nil
}

// complementTerm negates a term, restricted to the universe's domain by the
// formula compiler's own Not handling.
type complementTerm struct {
	t RelationalAlgebraTerm
}

// Complement builds NOT t.
func Complement(t RelationalAlgebraTerm) RelationalAlgebraTerm { return complementTerm{t: t} }

func (complementTerm) relationalAlgebraTerm() {}

// FreeVars implements RelationalAlgebraTerm.
func (c complementTerm) FreeVars() []string { return c.t.FreeVars() }

func (c complementTerm) formula(s *scratch) (formula.Formula, error) {
	f, err := c.t.formula(s)
	if err != nil {
		return nil, err
	}
	return formula.NewNot(f), nil
}

// dropTerm existentially quantifies away a set of t's free variables.
type dropTerm struct {
	t    RelationalAlgebraTerm
	vars []string
}

// Drop builds exists vars.(t), projecting vars out of t's free variables.
func Drop(t RelationalAlgebraTerm, vars ...string) RelationalAlgebraTerm {
	return dropTerm{t: t, vars: vars}
}

func (dropTerm) relationalAlgebraTerm() {}

// FreeVars implements RelationalAlgebraTerm.
func (d dropTerm) FreeVars() []string {
	dropped := make(map[string]bool, len(d.vars))
	for _, v := range d.vars {
		dropped[v] = true
	}
	var kept []string
	for _, v := range d.t.FreeVars() {
		if !dropped[v] {
			kept = append(kept, v)
		}
	}
	return unionVars(kept, nil)
}

func (d dropTerm) formula(s *scratch) (formula.Formula, error) {
	f, err := d.t.formula(s)
	if err != nil {
		return nil, err
	}
	return formula.NewExists(f, d.vars...), nil
}

// Compiled pairs a RelationalAlgebraTerm with the presentation it is
// evaluated against and caches the compiled DFA until Substitute
// invalidates it.
type Compiled struct {
	term       RelationalAlgebraTerm
	env        *presentation.Presentation
	addRelName string
	cache      *automaton.DFA
}

// NewCompiled builds a Compiled term. addRelName names the binary addition
// relation installed in env (the builtin presentations use "A") that
// ElementaryTerm Addition compiles against.
func NewCompiled(env *presentation.Presentation, addRelName string, term RelationalAlgebraTerm) *Compiled {
	return &Compiled{term: term, env: env, addRelName: addRelName}
}

// Term returns the current (possibly substituted) term.
func (c *Compiled) Term() RelationalAlgebraTerm { return c.term }

// DFA compiles (or returns the cached compilation of) the term against its
// presentation.
func (c *Compiled) DFA() (*automaton.DFA, error) {
	if c.cache != nil {
		return c.cache, nil
	}
	s := &scratch{env: c.env, addRelName: c.addRelName}
	f, err := c.term.formula(s)
	if err != nil {
		return nil, err
	}
	d, err := c.env.Evaluate(f, nil)
	if err != nil {
		return nil, err
	}
	c.cache = d
	return d, nil
}

// Substitute renames free variables per renaming, avoiding capture by a
// Drop term's bound variables unless allowCollision is set, and invalidates
// the compiled-DFA cache.
func (c *Compiled) Substitute(renaming map[string]string, allowCollision bool) error {
	renamed, err := substituteRelational(c.term, renaming, allowCollision)
	if err != nil {
		return err
	}
	c.term = renamed
	c.cache = nil
	return nil
}
