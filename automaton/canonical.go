package automaton

// Canonical is a flat, exported-field snapshot of a DFA suitable for
// reflection-based binary encoding (see presentation/snapshot.go). It exists
// because rezi needs exported struct fields to walk, and DFA's internal
// state map is unexported.
type Canonical struct {
	Alphabet    []string
	Arity       int
	Start       string
	StateNames  []string
	Accepting   []bool
	Transitions []CanonicalTransition
}

// CanonicalTransition is one (from, letter, to) edge in a Canonical snapshot.
type CanonicalTransition struct {
	From   string
	Letter []string
	To     string
}

// Canonicalize renders d into a Canonical snapshot with states in sorted
// order, suitable for encoding with rezi.
func (d *DFA) Canonicalize() Canonical {
	names := d.States()
	c := Canonical{
		Alphabet:   d.Alphabet(),
		Arity:      d.arity,
		Start:      d.start,
		StateNames: names,
		Accepting:  make([]bool, len(names)),
	}
	for i, n := range names {
		c.Accepting[i] = d.IsAccepting(n)
		s := d.states[n]
		for letterKey, to := range s.trans {
			c.Transitions = append(c.Transitions, CanonicalTransition{
				From:   n,
				Letter: letterFromKey(letterKey),
				To:     to,
			})
		}
	}
	return c
}

// FromCanonical rebuilds a DFA from a snapshot produced by Canonicalize.
func FromCanonical(c Canonical) *DFA {
	d := New(c.Alphabet, c.Arity)
	for i, n := range c.StateNames {
		d.AddState(n, c.Accepting[i])
	}
	for _, tr := range c.Transitions {
		_ = d.AddTransition(tr.From, Letter(tr.Letter), tr.To)
	}
	if c.Start != "" {
		_ = d.SetStart(c.Start)
	}
	return d
}
