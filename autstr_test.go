package autstr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/autstr/algebra"
	"github.com/dekarrin/autstr/enumerate"
)

func TestNaturals_BuildsUsableStructure(t *testing.T) {
	s, err := Naturals()
	require.NoError(t, err)
	require.NotNil(t, s.Presentation())
	assert.Contains(t, s.Presentation().GetRelationSymbols(), "A")
}

func TestStructure_Check_SatisfiableAndUnsatisfiable(t *testing.T) {
	s, err := Naturals()
	require.NoError(t, err)

	ok, err := s.Check("exists y.(A(x,x,y))")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Check("not(A(x,x,x))")
	require.NoError(t, err)
	assert.True(t, ok, "x=1 satisfies not(A(x,x,x)) since only x=0 has x+x=x")
}

func TestStructure_Solutions_DoublingMatchesSpecExample(t *testing.T) {
	s, err := Naturals()
	require.NoError(t, err)

	term := algebra.Base("A", algebra.Var("x"), algebra.Var("x"), algebra.Var("y"))
	e, err := s.Solutions(term)
	require.NoError(t, err)

	want := [][2]uint64{{0, 0}, {1, 2}, {2, 4}, {3, 6}}
	for i, w := range want {
		word, ok := e.Next()
		require.True(t, ok, "expected element %d", i)
		tuple := enumerate.DecodeUnsignedTuple(word, s.Presentation().PaddingSymbol())
		assert.Equal(t, w[0], tuple[0])
		assert.Equal(t, w[1], tuple[1])
	}
}

func TestStructure_Compile_SubstituteInvalidatesCache(t *testing.T) {
	s, err := Naturals()
	require.NoError(t, err)

	term := algebra.Base("Lt", algebra.Var("x"), algebra.Var("y"))
	c := s.Compile(term)

	d1, err := c.DFA()
	require.NoError(t, err)
	require.NotNil(t, d1)

	require.NoError(t, c.Substitute(map[string]string{"y": "z"}, false))
	assert.Equal(t, []string{"x", "z"}, c.Term().FreeVars())

	d2, err := c.DFA()
	require.NoError(t, err)
	require.NotNil(t, d2)
}

func TestIntegers_BuildsUsableStructure(t *testing.T) {
	s, err := Integers()
	require.NoError(t, err)
	require.NotNil(t, s.Presentation())
}
