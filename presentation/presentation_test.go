package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/autstr/automaton"
	"github.com/dekarrin/autstr/formula"
)

// anyOneBit is a tiny unary universe over {"0","1"}: accepts "0" or "1",
// nothing else, with no padding yet applied (New applies it).
func anyOneBit() *automaton.DFA {
	d := automaton.New([]string{"0", "1"}, 1)
	d.AddState("s", false)
	d.AddState("accepted", true)
	_ = d.SetStart("s")
	_ = d.AddTransition("s", automaton.Letter{"0"}, "accepted")
	_ = d.AddTransition("s", automaton.Letter{"1"}, "accepted")
	return d
}

func TestNew_RequiresUniverse(t *testing.T) {
	_, err := New("*", map[string]*automaton.DFA{})
	assert.ErrorIs(t, err, ErrNoUniverse)
}

func TestNew_RejectsNonUnaryUniverse(t *testing.T) {
	bad := automaton.New([]string{"0", "1"}, 2)
	bad.AddState("s", true)
	_ = bad.SetStart("s")
	_, err := New("*", map[string]*automaton.DFA{UniverseKey: bad})
	assert.Error(t, err)
}

func TestNew_InstallsUniverseAndRelations(t *testing.T) {
	p, err := New("*", map[string]*automaton.DFA{UniverseKey: anyOneBit()})
	require.NoError(t, err)
	assert.Equal(t, []string{UniverseKey}, p.GetRelationSymbols())
	assert.NotNil(t, p.Universe())
	assert.Equal(t, "*", p.PaddingSymbol())
}

func TestUpdate_ReservedNameRejectsFormula(t *testing.T) {
	p, err := New("*", map[string]*automaton.DFA{UniverseKey: anyOneBit()})
	require.NoError(t, err)

	err = p.Update(UniverseKey, "R(x)")
	assert.ErrorIs(t, err, ErrReservedName)
}

func TestUpdate_BadValueType(t *testing.T) {
	p, err := New("*", map[string]*automaton.DFA{UniverseKey: anyOneBit()})
	require.NoError(t, err)

	err = p.Update("R", 42)
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestUpdate_RollsBackOnCompileError(t *testing.T) {
	p, err := New("*", map[string]*automaton.DFA{UniverseKey: anyOneBit()})
	require.NoError(t, err)

	before := p.GetRelationSymbols()
	err = p.Update("Bad", "NoSuchRelation(x)")
	assert.Error(t, err)
	assert.Equal(t, before, p.GetRelationSymbols())
	_, ok := p.Lookup("Bad")
	assert.False(t, ok)
}

func TestUpdate_WithFormulaString(t *testing.T) {
	p, err := BuechiArithmeticN()
	require.NoError(t, err)

	require.NoError(t, p.Update("Small", "Lt(x,y)"))
	_, ok := p.Lookup("Small")
	assert.True(t, ok)
}

func TestUpdate_WithFormulaValue(t *testing.T) {
	p, err := BuechiArithmeticN()
	require.NoError(t, err)

	f, err := formula.Parse("Lt(x,y)")
	require.NoError(t, err)
	require.NoError(t, p.Update("Small2", f))
	_, ok := p.Lookup("Small2")
	assert.True(t, ok)
}

func TestEvaluate_RestoresEnvironmentAfterOverrides(t *testing.T) {
	p, err := BuechiArithmeticN()
	require.NoError(t, err)

	before, ok := p.Lookup("A")
	require.True(t, ok)

	overrides := map[string]*automaton.DFA{"A": before}
	_, err = p.Evaluate("A(x,y,z)", overrides)
	require.NoError(t, err)

	after, ok := p.Lookup("A")
	require.True(t, ok)
	assert.Same(t, before, after)
}

func TestCheck_UnknownRelation(t *testing.T) {
	p, err := New("*", map[string]*automaton.DFA{UniverseKey: anyOneBit()})
	require.NoError(t, err)

	_, err = p.Check("NoSuchRelation(x)")
	assert.ErrorIs(t, err, formula.ErrUnknownRelation)
}

func TestGetRelationSymbols_Sorted(t *testing.T) {
	p, err := BuechiArithmeticN()
	require.NoError(t, err)

	symbols := p.GetRelationSymbols()
	for i := 1; i < len(symbols); i++ {
		assert.LessOrEqual(t, symbols[i-1], symbols[i])
	}
}
