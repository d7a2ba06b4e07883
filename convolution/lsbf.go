package convolution

import "github.com/dekarrin/autstr/automaton"

// LsbfAutomaton returns a unary (arity 1) DFA over {"0","1"} accepting
// exactly the least-significant-bit-first binary encoding of n, with no
// trailing padding. It is used to build the automaton for a constant term
// before convolving it into a wider relation.
func LsbfAutomaton(n uint64) *automaton.DFA {
	var bits []string
	for n > 0 {
		if n&1 == 1 {
			bits = append(bits, "1")
		} else {
			bits = append(bits, "0")
		}
		n >>= 1
	}

	d := automaton.New([]string{"0", "1"}, 1)
	prev := "s0"
	d.AddState(prev, len(bits) == 0)
	_ = d.SetStart(prev)
	for i, b := range bits {
		name := stateName(i + 1)
		d.AddState(name, i == len(bits)-1)
		_ = d.AddTransition(prev, automaton.Letter{b}, name)
		prev = name
	}
	return d
}

func stateName(i int) string {
	const digits = "0123456789"
	if i == 0 {
		return "s0"
	}
	out := []byte{}
	for i > 0 {
		out = append([]byte{digits[i%10]}, out...)
		i /= 10
	}
	return "s" + string(out)
}
