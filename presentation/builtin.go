package presentation

import (
	"fmt"

	"github.com/dekarrin/autstr/automaton"
)

const (
	sym0   = "0"
	sym1   = "1"
	symPad = "*"
)

func digit(s string) int {
	if s == sym1 {
		return 1
	}
	return 0
}

// buildUniverseN returns the canonical lsbf-over-{0,1} universe automaton
// for naturals: the empty word (immediately padded) is the unique encoding
// of 0, and every other accepted word's last real symbol must be "1" (a
// trailing "0" immediately before padding would be a redundant, non-unique
// encoding of the same value).
func buildUniverseN() *automaton.DFA {
	d := automaton.New([]string{sym0, sym1, symPad}, 1)
	d.AddState("start", false)
	d.AddState("one", false)
	d.AddState("zero", false)
	d.AddState("padded", true)
	_ = d.SetStart("start")

	_ = d.AddTransition("start", automaton.Letter{sym0}, "zero")
	_ = d.AddTransition("start", automaton.Letter{sym1}, "one")
	_ = d.AddTransition("start", automaton.Letter{symPad}, "padded")

	_ = d.AddTransition("one", automaton.Letter{sym0}, "zero")
	_ = d.AddTransition("one", automaton.Letter{sym1}, "one")
	_ = d.AddTransition("one", automaton.Letter{symPad}, "padded")

	_ = d.AddTransition("zero", automaton.Letter{sym0}, "zero")
	_ = d.AddTransition("zero", automaton.Letter{sym1}, "one")
	// no transition on pad from "zero": a trailing 0 right before padding
	// starts is non-canonical.

	_ = d.AddTransition("padded", automaton.Letter{symPad}, "padded")
	// no transitions on 0/1 from "padded": once padding starts it cannot
	// resume reading real digits.

	return automaton.Minimize(d)
}

// buildUniverseZ returns the canonical two's-complement-style lsbf universe
// for integers: padding sign-extends the last real bit, so "...0" before
// padding denotes a non-negative tail and "...1" denotes a negative one. A
// word is canonical iff its last two real bits differ, with base cases: the
// empty word is the unique encoding of 0, and a lone "1" is the unique
// encoding of -1.
func buildUniverseZ() *automaton.DFA {
	d := automaton.New([]string{sym0, sym1, symPad}, 1)
	for _, s := range []string{"start", "b0", "b1", "p00", "p01", "p10", "p11", "padded"} {
		d.AddState(s, s == "padded")
	}
	_ = d.SetStart("start")

	_ = d.AddTransition("start", automaton.Letter{sym0}, "b0")
	_ = d.AddTransition("start", automaton.Letter{sym1}, "b1")
	_ = d.AddTransition("start", automaton.Letter{symPad}, "padded") // empty word: value 0

	// b0/b1: exactly one real bit seen so far.
	// no pad transition from b0: lone "0" then pad is redundant with the
	// empty word (both would denote 0).
	_ = d.AddTransition("b0", automaton.Letter{sym0}, "p00")
	_ = d.AddTransition("b0", automaton.Letter{sym1}, "p01")

	_ = d.AddTransition("b1", automaton.Letter{symPad}, "padded") // lone "1": value -1
	_ = d.AddTransition("b1", automaton.Letter{sym0}, "p10")
	_ = d.AddTransition("b1", automaton.Letter{sym1}, "p11")

	// p<ab>: last two real bits were a then b.
	// no pad transition when the last two bits are equal: redundant.
	_ = d.AddTransition("p00", automaton.Letter{sym0}, "p00")
	_ = d.AddTransition("p00", automaton.Letter{sym1}, "p01")

	_ = d.AddTransition("p01", automaton.Letter{symPad}, "padded") // differ, last=1: negative
	_ = d.AddTransition("p01", automaton.Letter{sym0}, "p10")
	_ = d.AddTransition("p01", automaton.Letter{sym1}, "p11")

	_ = d.AddTransition("p10", automaton.Letter{symPad}, "padded") // differ, last=0: non-negative
	_ = d.AddTransition("p10", automaton.Letter{sym0}, "p00")
	_ = d.AddTransition("p10", automaton.Letter{sym1}, "p01")

	_ = d.AddTransition("p11", automaton.Letter{sym0}, "p10")
	_ = d.AddTransition("p11", automaton.Letter{sym1}, "p11")

	_ = d.AddTransition("padded", automaton.Letter{symPad}, "padded")

	return automaton.Minimize(d)
}

// addState is the bookkeeping an addition automaton carries per step: the
// arithmetic carry, and the effective digit last read for each of the three
// columns. For signed operands padding on a column holds its last real digit
// unchanged (sign extension, as buildUniverseZ reads padding); for unsigned
// operands padding reads as 0 (as buildUniverseN reads padding). Either way,
// checking the result column against the running sum is identical whether
// its current symbol is a real digit or padding.
type addState struct {
	carry, effX, effY, effZ int
}

func (s addState) key() string {
	return fmt.Sprintf("%d,%d,%d,%d", s.carry, s.effX, s.effY, s.effZ)
}

const deadKey = "dead"

// buildAddition generates the three-track addition automaton A(x,y,z) =
// x+y=z by BFS over addState, reading one lsbf digit of each operand per
// step. With signed set, operands are sign-extended two's complement (Büchi
// arithmetic over Z) and padding repeats a column's last real digit;
// otherwise operands are unsigned (Büchi arithmetic over N) and padding
// reads as 0.
func buildAddition(signed bool) *automaton.DFA {
	d := automaton.New([]string{sym0, sym1, symPad}, 3)

	start := addState{0, 0, 0, 0}
	seen := map[string]addState{start.key(): start}
	queue := []addState{start}
	d.AddState(start.key(), false)
	d.AddState(deadKey, false)
	_ = d.SetStart(start.key())

	letters := [][3]string{}
	for _, x := range []string{sym0, sym1, symPad} {
		for _, y := range []string{sym0, sym1, symPad} {
			for _, z := range []string{sym0, sym1, symPad} {
				letters = append(letters, [3]string{x, y, z})
			}
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, l := range letters {
			x, y, z := l[0], l[1], l[2]
			effX, effY := cur.effX, cur.effY
			if x != symPad {
				effX = digit(x)
			} else if !signed {
				effX = 0
			}
			if y != symPad {
				effY = digit(y)
			} else if !signed {
				effY = 0
			}
			required := (cur.carry + effX + effY) % 2
			carryOut := (cur.carry + effX + effY) / 2

			effZ := cur.effZ
			if z != symPad {
				effZ = digit(z)
			} else if !signed {
				effZ = 0
			}

			if effZ != required {
				_ = d.AddTransition(cur.key(), automaton.Letter{x, y, z}, deadKey)
				continue
			}

			next := addState{carryOut, effX, effY, effZ}
			if _, ok := seen[next.key()]; !ok {
				seen[next.key()] = next
				d.AddState(next.key(), false)
				queue = append(queue, next)
			}
			_ = d.AddTransition(cur.key(), automaton.Letter{x, y, z}, next.key())
		}
	}
	for _, l := range letters {
		_ = d.AddTransition(deadKey, automaton.Letter{l[0], l[1], l[2]}, deadKey)
	}

	markAcceptingByPadClosure(d, padLetter3)
	return automaton.Minimize(d)
}

var padLetter3 = automaton.Letter{symPad, symPad, symPad}

// markAcceptingByPadClosure marks every state accepting whose trajectory
// under repeatedly reading the all-padding letter never reaches deadKey:
// that is exactly the condition for "the word may legally end here".
func markAcceptingByPadClosure(d *automaton.DFA, padLetter automaton.Letter) {
	names := d.States()
	for _, name := range names {
		cur := name
		ok := true
		for i := 0; i < len(names)+1; i++ {
			next, has := d.Step(cur, padLetter)
			if !has || next == deadKey {
				ok = false
				break
			}
			cur = next
		}
		if ok {
			_ = d.SetAccepting(name, true)
		}
	}
}

// buildWeakDiv returns B(x,y) = "y is a power of 2 dividing x": reads a
// shared prefix of zero bits from both x and y (the low-order bits that
// must vanish from x below y's single set bit; padding on x there means x is
// 0, which every power of 2 divides), then frees x once y's one
// set bit has been read, and demands y read only padding afterward. This
// construction depends only on low-order bits, so it is correct whether x
// is read as an unsigned or sign-extended operand.
func buildWeakDiv() *automaton.DFA {
	d := automaton.New([]string{sym0, sym1, symPad}, 2)
	d.AddState("zeroPrefix", false)
	d.AddState("done", true)
	d.AddState(deadKey, false)
	_ = d.SetStart("zeroPrefix")

	_ = d.AddTransition("zeroPrefix", automaton.Letter{sym0, sym0}, "zeroPrefix")
	_ = d.AddTransition("zeroPrefix", automaton.Letter{sym1, sym0}, deadKey)
	_ = d.AddTransition("zeroPrefix", automaton.Letter{symPad, sym0}, "zeroPrefix")
	_ = d.AddTransition("zeroPrefix", automaton.Letter{sym0, sym1}, "done")
	_ = d.AddTransition("zeroPrefix", automaton.Letter{sym1, sym1}, "done")
	_ = d.AddTransition("zeroPrefix", automaton.Letter{symPad, sym1}, "done")
	_ = d.AddTransition("zeroPrefix", automaton.Letter{sym0, symPad}, deadKey)
	_ = d.AddTransition("zeroPrefix", automaton.Letter{sym1, symPad}, deadKey)
	_ = d.AddTransition("zeroPrefix", automaton.Letter{symPad, symPad}, deadKey)

	for _, xs := range []string{sym0, sym1, symPad} {
		_ = d.AddTransition("done", automaton.Letter{xs, symPad}, "done")
		_ = d.AddTransition("done", automaton.Letter{xs, sym0}, deadKey)
		_ = d.AddTransition("done", automaton.Letter{xs, sym1}, deadKey)
	}

	for _, l := range [][2]string{{sym0, sym0}, {sym0, sym1}, {sym0, symPad}, {sym1, sym0}, {sym1, sym1}, {sym1, symPad}, {symPad, sym0}, {symPad, sym1}, {symPad, symPad}} {
		_ = d.AddTransition(deadKey, automaton.Letter{l[0], l[1]}, deadKey)
	}

	return automaton.Minimize(d)
}

// BuechiArithmeticN builds the automatic presentation for Büchi arithmetic
// over the naturals: ⟨N, +, |2⟩. Installs U, A(x,y,z)=x+y=z, B(x,y)=y is a
// power of 2 dividing x, and the derived relations Z, Eq, Pt, Lt.
func BuechiArithmeticN() (*Presentation, error) {
	p, err := New(symPad, map[string]*automaton.DFA{
		UniverseKey: buildUniverseN(),
		"A":         buildAddition(false),
		"B":         buildWeakDiv(),
	})
	if err != nil {
		return nil, err
	}
	for _, derived := range []struct{ name, formula string }{
		{"Z", "A(x,x,x)"},
		{"Eq", "exists z.((Z(z) and (A(x,z,y))))"},
		{"Pt", "B(x,x)"},
		{"Lt", "exists z.((not (Z(z)) and (A(x,z,y))))"},
	} {
		if err := p.Update(derived.name, derived.formula); err != nil {
			return nil, wrapf(err, "installing built-in relation %q", derived.name)
		}
	}
	return p, nil
}

// BuechiArithmeticZ builds the automatic presentation for Büchi arithmetic
// over the integers: ⟨Z, +, |2⟩. Installs U, A(x,y,z)=x+y=z over
// sign-extended operands, B(x,y)=y is a power of 2 dividing x, and the
// derived relations N0 (non-negativity), Z, Eq, Pt, Lt, Neg.
func BuechiArithmeticZ() (*Presentation, error) {
	p, err := New(symPad, map[string]*automaton.DFA{
		UniverseKey: buildUniverseZ(),
		"A":         buildAddition(true),
		"B":         buildWeakDiv(),
		"N0":        buildNonNegative(),
	})
	if err != nil {
		return nil, err
	}
	for _, derived := range []struct{ name, formula string }{
		{"Z", "A(x,x,x)"},
		{"Eq", "exists z.((Z(z) and (A(x,z,y))))"},
		{"Pt", "(N0(x) and (B(x,x)))"},
		{"Lt", "exists z.((N0(z) and ((not (Z(z)) and (A(x,z,y))))))"},
		{"Neg", "exists z.((Z(z) and (A(x,y,z))))"},
	} {
		if err := p.Update(derived.name, derived.formula); err != nil {
			return nil, wrapf(err, "installing built-in relation %q", derived.name)
		}
	}
	return p, nil
}

// buildNonNegative returns N0(x) = "x >= 0": under sign-extended encoding,
// x is non-negative iff its sticky (sign-extension) digit, the value
// padding would repeat forever, is 0.
func buildNonNegative() *automaton.DFA {
	d := automaton.New([]string{sym0, sym1, symPad}, 1)
	d.AddState("eff0", true)
	d.AddState("eff1", false)
	d.AddState(deadKey, false)
	_ = d.SetStart("eff0")

	_ = d.AddTransition("eff0", automaton.Letter{sym0}, "eff0")
	_ = d.AddTransition("eff0", automaton.Letter{sym1}, "eff1")
	_ = d.AddTransition("eff0", automaton.Letter{symPad}, "eff0")

	_ = d.AddTransition("eff1", automaton.Letter{sym0}, "eff0")
	_ = d.AddTransition("eff1", automaton.Letter{sym1}, "eff1")
	_ = d.AddTransition("eff1", automaton.Letter{symPad}, "eff1")

	_ = d.AddTransition(deadKey, automaton.Letter{sym0}, deadKey)
	_ = d.AddTransition(deadKey, automaton.Letter{sym1}, deadKey)
	_ = d.AddTransition(deadKey, automaton.Letter{symPad}, deadKey)

	return automaton.Minimize(d)
}
