package enumerate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/autstr/automaton"
	"github.com/dekarrin/autstr/convolution"
	"github.com/dekarrin/autstr/presentation"
)

func TestDecodeUnsigned_RoundTrips(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 3, 4, 5, 13, 255} {
		word := Word(EncodeUnsigned(n, 1, 0, "*"))
		assert.Equal(t, n, DecodeUnsigned(word, 0, "*"))
	}
}

func TestEnumerator_BoundedLessThan_YieldsExactlyTenAndStops(t *testing.T) {
	p, err := presentation.BuechiArithmeticN()
	require.NoError(t, err)

	lit10 := automaton.Minimize(convolution.Pad(convolution.LsbfAutomaton(10), p.PaddingSymbol()))
	require.NoError(t, p.Update("Lit10", lit10))

	d, err := p.Evaluate("exists y.((Lit10(y) and (Lt(x,y))))", nil)
	require.NoError(t, err)
	assert.True(t, automaton.IsFinite(d))

	e := New(d, p.PaddingSymbol(), false)
	seen := map[uint64]bool{}
	for i := 0; i < 10; i++ {
		w, ok := e.Next()
		require.True(t, ok, "expected element %d", i)
		n := DecodeUnsigned(w, 0, p.PaddingSymbol())
		assert.False(t, seen[n], "duplicate element %d", n)
		seen[n] = true
	}
	_, ok := e.Next()
	assert.False(t, ok, "expected enumeration to be exhausted after 10 elements")

	for i := uint64(0); i < 10; i++ {
		assert.True(t, seen[i], "missing expected element %d", i)
	}
}

func TestEnumerator_Doubling_FirstFourMatchSpecExample(t *testing.T) {
	p, err := presentation.BuechiArithmeticN()
	require.NoError(t, err)

	d, err := p.Evaluate("A(x,x,y)", nil)
	require.NoError(t, err)

	e := New(d, p.PaddingSymbol(), false)

	want := [][2]uint64{{0, 0}, {1, 2}, {2, 4}, {3, 6}}
	for i, w := range want {
		word, ok := e.Next()
		require.True(t, ok, "expected element %d", i)
		x := DecodeUnsigned(word, 0, p.PaddingSymbol())
		y := DecodeUnsigned(word, 1, p.PaddingSymbol())
		assert.Equal(t, w[0], x, "x at position %d", i)
		assert.Equal(t, w[1], y, "y at position %d", i)
	}
}

func TestEnumerator_Addition_FirstElementIsAllZero(t *testing.T) {
	p, err := presentation.BuechiArithmeticN()
	require.NoError(t, err)

	d, err := p.Evaluate("A(x,y,z)", nil)
	require.NoError(t, err)
	assert.False(t, automaton.IsEmpty(d))
	assert.False(t, automaton.IsFinite(d))

	e := New(d, p.PaddingSymbol(), false)
	word, ok := e.Next()
	require.True(t, ok)
	assert.Equal(t, []uint64{0, 0, 0}, DecodeUnsignedTuple(word, p.PaddingSymbol()))
}

func TestEnumerator_PowersOfTwo_MatchesS4(t *testing.T) {
	p, err := presentation.BuechiArithmeticN()
	require.NoError(t, err)

	d, err := p.Evaluate("B(x,x)", nil)
	require.NoError(t, err)

	e := New(d, p.PaddingSymbol(), false)
	want := []uint64{1, 2, 4, 8, 16}
	for i, w := range want {
		word, ok := e.Next()
		require.True(t, ok, "expected element %d", i)
		assert.Equal(t, w, DecodeUnsigned(word, 0, p.PaddingSymbol()))
	}
}

func TestEnumerator_Backward_SameCardinalityAsForward(t *testing.T) {
	p, err := presentation.BuechiArithmeticN()
	require.NoError(t, err)

	lit10 := automaton.Minimize(convolution.Pad(convolution.LsbfAutomaton(10), p.PaddingSymbol()))
	require.NoError(t, p.Update("Lit10b", lit10))

	d, err := p.Evaluate("exists y.((Lit10b(y) and (Lt(x,y))))", nil)
	require.NoError(t, err)

	forward := New(d, p.PaddingSymbol(), false)
	var forwardCount int
	for {
		if _, ok := forward.Next(); !ok {
			break
		}
		forwardCount++
	}

	backward := New(d, p.PaddingSymbol(), true)
	var backwardCount int
	for {
		if _, ok := backward.Next(); !ok {
			break
		}
		backwardCount++
	}

	assert.Equal(t, forwardCount, backwardCount)
	assert.Equal(t, 10, forwardCount)
}

func TestEnumerator_Reset_RestartsFromBeginning(t *testing.T) {
	p, err := presentation.BuechiArithmeticN()
	require.NoError(t, err)

	d, err := p.Evaluate("B(x,x)", nil)
	require.NoError(t, err)

	e := New(d, p.PaddingSymbol(), false)
	first, ok := e.Next()
	require.True(t, ok)
	_, ok = e.Next()
	require.True(t, ok)

	e.Reset()
	again, ok := e.Next()
	require.True(t, ok)
	assert.Equal(t, first, again)
}
