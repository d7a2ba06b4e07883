package formula

import (
	"testing"

	"github.com/dekarrin/autstr/automaton"
	"github.com/dekarrin/autstr/convolution"
	"github.com/stretchr/testify/assert"
)

const testAlphabet0 = "0"
const testAlphabet1 = "1"
const testPad = "*"

// fakeEnv is a minimal RelationEnv for exercising the compiler in isolation
// from the presentation package.
type fakeEnv struct {
	universe  *automaton.DFA
	relations map[string]*automaton.DFA
}

func (e *fakeEnv) Lookup(name string) (*automaton.DFA, bool) {
	d, ok := e.relations[name]
	return d, ok
}

func (e *fakeEnv) Universe() *automaton.DFA { return e.universe }

func (e *fakeEnv) PaddingSymbol() string { return testPad }

// unpaddedUniverse accepts any string over {0,1}: every natural number has a
// well-formed lsbf encoding.
func unpaddedUniverse() *automaton.DFA {
	d := automaton.New([]string{testAlphabet0, testAlphabet1}, 1)
	d.AddState("s", true)
	_ = d.SetStart("s")
	_ = d.AddTransition("s", automaton.Letter{testAlphabet0}, "s")
	_ = d.AddTransition("s", automaton.Letter{testAlphabet1}, "s")
	return d
}

// zeroRelation (Z) accepts only the all-padding encoding of zero.
func zeroRelation() *automaton.DFA {
	d := automaton.New([]string{testAlphabet0, testAlphabet1, testPad}, 1)
	d.AddState("s", true)
	_ = d.SetStart("s")
	_ = d.AddTransition("s", automaton.Letter{testPad}, "s")
	return d.MakeTotal()
}

// eqRelation (Eq) accepts tuples whose components read identical symbols in
// lockstep, including matching padding.
func eqRelation() *automaton.DFA {
	d := automaton.New([]string{testAlphabet0, testAlphabet1, testPad}, 2)
	d.AddState("s", true)
	_ = d.SetStart("s")
	for _, sym := range []string{testAlphabet0, testAlphabet1, testPad} {
		_ = d.AddTransition("s", automaton.Letter{sym, sym}, "s")
	}
	return d.MakeTotal()
}

func newFakeEnv() *fakeEnv {
	u := automaton.Minimize(convolution.Pad(unpaddedUniverse(), testPad))
	return &fakeEnv{
		universe: u,
		relations: map[string]*automaton.DFA{
			"U":  u,
			"Z":  zeroRelation(),
			"Eq": eqRelation(),
		},
	}
}

func TestCompile_Application(t *testing.T) {
	assert := assert.New(t)

	env := newFakeEnv()
	f, err := Parse("Z(x)")
	assert.NoError(err)

	d, err := Compile(env, f)
	assert.NoError(err)
	assert.Equal(1, d.Arity())
	assert.False(automaton.IsEmpty(d))
}

func TestCompile_And(t *testing.T) {
	assert := assert.New(t)

	env := newFakeEnv()
	f, err := Parse("(Z(x) and (Eq(x,y)))")
	assert.NoError(err)

	d, err := Compile(env, f)
	assert.NoError(err)
	assert.Equal(2, d.Arity())
	assert.False(automaton.IsEmpty(d))
}

func TestCompile_Not_DoubleNegationShortcut(t *testing.T) {
	assert := assert.New(t)

	env := newFakeEnv()
	f, err := Parse("Z(x)")
	assert.NoError(err)
	nn := NewNot(NewNot(f))

	direct, err := Compile(env, f)
	assert.NoError(err)
	viaDoubleNeg, err := Compile(env, nn)
	assert.NoError(err)

	eq, err := automaton.Intersection(direct, automaton.Complement(viaDoubleNeg))
	assert.NoError(err)
	assert.True(automaton.IsEmpty(eq))
}

func TestCompile_Exists(t *testing.T) {
	assert := assert.New(t)

	env := newFakeEnv()
	f, err := Parse("exists y.((Z(y) and (Eq(x,y))))")
	assert.NoError(err)
	assert.Equal([]string{"x"}, f.FreeVars())

	d, err := Compile(env, f)
	assert.NoError(err)
	assert.Equal(1, d.Arity())
	assert.False(automaton.IsEmpty(d))
}

func TestCompile_ForAll(t *testing.T) {
	assert := assert.New(t)

	env := newFakeEnv()
	f, err := Parse("forall x.(Eq(x,x))")
	assert.NoError(err)
	assert.Empty(f.FreeVars())

	d, err := Compile(env, f)
	assert.NoError(err)
	assert.False(automaton.IsEmpty(d))
}

func TestCompile_UnknownRelation(t *testing.T) {
	assert := assert.New(t)

	env := newFakeEnv()
	f, err := Parse("NoSuchRelation(x)")
	assert.NoError(err)

	_, err = Compile(env, f)
	assert.ErrorIs(err, ErrUnknownRelation)
}
