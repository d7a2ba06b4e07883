// Package autstr is the top-level façade over the regular-relation engine:
// it wires a configured automatic presentation, the relational-algebra term
// layer, and length-lexicographic enumeration into a small surface a caller
// builds once and queries repeatedly. Building blocks (automaton, presentation,
// algebra, enumerate) remain independently usable; this package only saves a
// caller from wiring their configuration together by hand.
package autstr

import (
	"github.com/dekarrin/autstr/algebra"
	"github.com/dekarrin/autstr/automaton"
	"github.com/dekarrin/autstr/enumerate"
	"github.com/dekarrin/autstr/internal/config"
	"github.com/dekarrin/autstr/internal/diag"
	"github.com/dekarrin/autstr/presentation"
)

var tracer = diag.New("autstr")

// Structure is a configured automatic presentation together with the
// relation-addition symbol its ElementaryTerm Add desugars against. It is
// the handle most callers hold for the lifetime of a session.
type Structure struct {
	cfg        config.Engine
	pres       *presentation.Presentation
	addRelName string
}

// Naturals builds the Büchi arithmetic structure over ℕ: ⟨ℕ, +, |₂⟩, with
// relations "A" (addition), "B" (power-of-two divisibility), "Lt" (strict
// order), and "Eq".
func Naturals() (*Structure, error) {
	return fromPresentation(config.Default(), presentation.BuechiArithmeticN, "A")
}

// Integers builds the Büchi arithmetic structure over ℤ, using sign-extended
// two's-complement lsbf encodings.
func Integers() (*Structure, error) {
	return fromPresentation(config.Default(), presentation.BuechiArithmeticZ, "A")
}

func fromPresentation(cfg config.Engine, build func() (*presentation.Presentation, error), addRelName string) (*Structure, error) {
	id := tracer.Start("build structure")
	p, err := build()
	if err != nil {
		tracer.Errorf(id, "%s", err)
		return nil, err
	}
	tracer.End(id, "build structure")
	return &Structure{cfg: cfg, pres: p, addRelName: addRelName}, nil
}

// Presentation returns the underlying AutomaticPresentation, for callers
// that need direct access to Update/Evaluate/Check/GetRelationSymbols.
func (s *Structure) Presentation() *presentation.Presentation {
	return s.pres
}

// Config returns the engine configuration the structure was built with.
func (s *Structure) Config() config.Engine {
	return s.cfg
}

// Define installs a new named relation, compiling it against the current
// environment if value is a formula or formula source string. See
// Presentation.Update for the accepted value types.
func (s *Structure) Define(name string, value any) error {
	return s.pres.Update(name, value)
}

// Compile builds a Compiled term bound to this structure's presentation,
// ready for DFA compilation, enumeration, or capture-avoiding substitution.
func (s *Structure) Compile(term algebra.RelationalAlgebraTerm) *algebra.Compiled {
	return algebra.NewCompiled(s.pres, s.addRelName, term)
}

// Evaluate compiles phi (a formula.Formula or formula source string) and
// returns the resulting DFA, unpadded when phi has free variables. See
// Presentation.Evaluate for the overrides semantics.
func (s *Structure) Evaluate(phi any, overrides map[string]*automaton.DFA) (*automaton.DFA, error) {
	return s.pres.Evaluate(phi, overrides)
}

// Check reports whether phi is satisfiable, its free variables implicitly
// existentially quantified.
func (s *Structure) Check(phi any) (bool, error) {
	return s.pres.Check(phi)
}

// Enumerate returns a forward Enumerator over d's accepted tuples in
// length-lexicographic order, using this structure's padding symbol.
func (s *Structure) Enumerate(d *automaton.DFA) *enumerate.Enumerator {
	return enumerate.New(d, s.pres.PaddingSymbol(), false)
}

// EnumerateBackward is like Enumerate but searches from the accepting
// states back toward the start, which can be cheaper when d has far fewer
// accepting states than reachable ones. Each word it yields is spelled in
// reverse reading order (it enumerates the reverse language of d).
func (s *Structure) EnumerateBackward(d *automaton.DFA) *enumerate.Enumerator {
	return enumerate.New(d, s.pres.PaddingSymbol(), true)
}

// Solutions compiles term and enumerates its solutions in
// length-lexicographic order in one step.
func (s *Structure) Solutions(term algebra.RelationalAlgebraTerm) (*enumerate.Enumerator, error) {
	d, err := s.Compile(term).DFA()
	if err != nil {
		return nil, err
	}
	return s.Enumerate(d), nil
}
