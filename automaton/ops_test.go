package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// acceptsExactly builds a DFA over {"0","1"} (arity 1) accepting only the
// single given word, read letter by letter.
func acceptsExactly(word string) *DFA {
	d := New([]string{"0", "1"}, 1)
	prev := "s0"
	d.AddState(prev, word == "")
	_ = d.SetStart(prev)
	for i, c := range word {
		name := "s" + string(rune('1'+i))
		d.AddState(name, i == len(word)-1)
		_ = d.AddTransition(prev, Letter{string(c)}, name)
		prev = name
	}
	return d
}

func TestIntersection(t *testing.T) {
	assert := assert.New(t)

	a := acceptsExactly("01")
	b := acceptsExactly("01")
	c := acceptsExactly("10")

	ab, err := Intersection(a, b)
	assert.NoError(err)
	assert.False(IsEmpty(ab))

	ac, err := Intersection(a, c)
	assert.NoError(err)
	assert.True(IsEmpty(ac))
}

func TestUnion(t *testing.T) {
	assert := assert.New(t)

	a := acceptsExactly("01")
	c := acceptsExactly("10")

	u, err := Union(a, c)
	assert.NoError(err)
	assert.False(IsEmpty(u))

	min := Minimize(u)
	to, ok := min.Step(min.Start(), Letter{"0"})
	assert.True(ok)
	to2, ok := min.Step(to, Letter{"1"})
	assert.True(ok)
	assert.True(min.IsAccepting(to2))
}

func TestIntersection_ArityMismatch(t *testing.T) {
	assert := assert.New(t)

	a := New([]string{"0", "1"}, 1)
	a.AddState("s", true)
	_ = a.SetStart("s")

	b := New([]string{"0", "1"}, 2)
	b.AddState("s", true)
	_ = b.SetStart("s")

	_, err := Intersection(a, b)
	assert.ErrorIs(err, ErrArityMismatch)
}

func TestComplement(t *testing.T) {
	assert := assert.New(t)

	a := acceptsExactly("01")
	comp := Complement(a)

	assert.False(IsEmpty(comp))

	both, err := Intersection(a, comp)
	assert.NoError(err)
	assert.True(IsEmpty(both))
}

func TestIsEmpty(t *testing.T) {
	assert := assert.New(t)

	d := New([]string{"0"}, 1)
	d.AddState("s", false)
	_ = d.SetStart("s")
	_ = d.AddTransition("s", Letter{"0"}, "s")
	assert.True(IsEmpty(d))

	_ = d.SetAccepting("s", true)
	assert.False(IsEmpty(d))
}

func TestIsFinite(t *testing.T) {
	assert := assert.New(t)

	// a self-loop on an accepting state makes the language infinite.
	loop := New([]string{"0"}, 1)
	loop.AddState("s", true)
	_ = loop.SetStart("s")
	_ = loop.AddTransition("s", Letter{"0"}, "s")
	assert.False(IsFinite(loop))

	// a single accepted word with no cycle through a productive state is finite.
	finite := acceptsExactly("01")
	assert.True(IsFinite(finite))
}

func TestMinimize_CollapsesEquivalentStates(t *testing.T) {
	assert := assert.New(t)

	d := New([]string{"0", "1"}, 1)
	d.AddState("even1", true)
	d.AddState("even2", true)
	d.AddState("odd", false)
	_ = d.SetStart("even1")
	_ = d.AddTransition("even1", Letter{"0"}, "even2")
	_ = d.AddTransition("even1", Letter{"1"}, "odd")
	_ = d.AddTransition("even2", Letter{"0"}, "even1")
	_ = d.AddTransition("even2", Letter{"1"}, "odd")
	_ = d.AddTransition("odd", Letter{"0"}, "odd")
	_ = d.AddTransition("odd", Letter{"1"}, "even1")

	min := Minimize(d)
	assert.Len(min.States(), 2)
}

func TestMinimize_PreservesLanguage(t *testing.T) {
	assert := assert.New(t)

	d := acceptsExactly("011")
	min := Minimize(d)

	to, ok := min.Step(min.Start(), Letter{"0"})
	assert.True(ok)
	to, ok = min.Step(to, Letter{"1"})
	assert.True(ok)
	to, ok = min.Step(to, Letter{"1"})
	assert.True(ok)
	assert.True(min.IsAccepting(to))

	other, ok := min.Step(min.Start(), Letter{"1"})
	assert.True(ok)
	assert.False(min.IsAccepting(other))
}
