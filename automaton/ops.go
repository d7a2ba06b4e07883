package automaton

import (
	"sort"
	"strings"
)

func sameAlphabet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkCompatible(a, b *DFA) error {
	if a.arity != b.arity {
		return wrapf(ErrArityMismatch, "%d vs %d", a.arity, b.arity)
	}
	if !sameAlphabet(a.alphabet, b.alphabet) {
		return ErrIncompatibleAlphabet
	}
	return nil
}

func pairKey(a, b string) string {
	return a + letterSep + b
}

// product runs a's and b's transition functions in lockstep, calling accept
// to decide which pairs of (a-state, b-state) are accepting in the result.
// Both operands are made total first so the walk never gets stuck.
func product(a, b *DFA, accept func(aAccept, bAccept bool) bool) *DFA {
	a = a.MakeTotal()
	b = b.MakeTotal()
	letters := allLetters(a.alphabet, a.arity)

	result := New(a.alphabet, a.arity)
	start := pairKey(a.start, b.start)
	result.SetStartUnchecked(start)

	queue := []string{start}
	seen := map[string]bool{start: true}
	result.AddState(start, accept(a.IsAccepting(a.start), b.IsAccepting(b.start)))

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		parts := strings.SplitN(cur, letterSep, 2)
		aName, bName := parts[0], parts[1]

		for _, l := range letters {
			aNext, _ := a.Step(aName, l)
			bNext, _ := b.Step(bName, l)
			next := pairKey(aNext, bNext)
			if !seen[next] {
				seen[next] = true
				result.AddState(next, accept(a.IsAccepting(aNext), b.IsAccepting(bNext)))
				queue = append(queue, next)
			}
			// AddTransition cannot fail here: both states already exist and
			// the letter's arity matches by construction.
			_ = result.AddTransition(cur, l, next)
		}
	}

	return result
}

// SetStartUnchecked sets the start state without requiring it to already
// exist as a state; used internally by operations that add the start state
// and its transitions in the same pass.
func (d *DFA) SetStartUnchecked(name string) {
	d.start = name
}

// Intersection returns a DFA accepting L(a) ∩ L(b). a and b must have equal
// arity and the same base alphabet.
func Intersection(a, b *DFA) (*DFA, error) {
	if err := checkCompatible(a, b); err != nil {
		return nil, err
	}
	return product(a, b, func(x, y bool) bool { return x && y }), nil
}

// Union returns a DFA accepting L(a) ∪ L(b). a and b must have equal arity
// and the same base alphabet.
func Union(a, b *DFA) (*DFA, error) {
	if err := checkCompatible(a, b); err != nil {
		return nil, err
	}
	return product(a, b, func(x, y bool) bool { return x || y }), nil
}

// Complement returns a DFA accepting Sigma^k* \ L(a). The result is over the
// total closure of a (a.MakeTotal()), so complementing twice with no other
// operations in between is language-equivalent to the identity.
func Complement(a *DFA) *DFA {
	total := a.MakeTotal()
	cp := total.Copy()
	for _, name := range cp.States() {
		s := cp.states[name]
		s.accepting = !s.accepting
		cp.states[name] = s
	}
	return cp
}

// reachableFrom returns the set of state names reachable from start,
// including start itself.
func reachableFrom(d *DFA, start string) map[string]bool {
	seen := map[string]bool{start: true}
	queue := []string{start}
	letters := allLetters(d.alphabet, d.arity)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, l := range letters {
			next, ok := d.Step(cur, l)
			if ok && !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// coreachable returns the set of state names from which some accepting state
// is reachable, using the reverse transition relation.
func coreachable(d *DFA) map[string]bool {
	reverse := map[string][]string{}
	for _, name := range d.States() {
		s := d.states[name]
		for _, to := range s.trans {
			reverse[to] = append(reverse[to], name)
		}
	}
	seen := map[string]bool{}
	queue := []string{}
	for _, name := range d.States() {
		if d.IsAccepting(name) {
			seen[name] = true
			queue = append(queue, name)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, prev := range reverse[cur] {
			if !seen[prev] {
				seen[prev] = true
				queue = append(queue, prev)
			}
		}
	}
	return seen
}

// Productive returns the set of state names that are both reachable from
// the start state and co-reachable to some accepting state. States outside
// this set can never lie on an accepting run and are safe to exclude from
// exploration (the enumerator's frontier, in particular).
func Productive(a *DFA) map[string]bool {
	if a.start == "" {
		return map[string]bool{}
	}
	reach := reachableFrom(a, a.start)
	core := coreachable(a)
	productive := map[string]bool{}
	for name := range reach {
		if core[name] {
			productive[name] = true
		}
	}
	return productive
}

// IsEmpty returns whether L(a) is empty: no accepting state is reachable
// from the start state.
func IsEmpty(a *DFA) bool {
	if a.start == "" {
		return true
	}
	reach := reachableFrom(a, a.start)
	for name := range reach {
		if a.IsAccepting(name) {
			return false
		}
	}
	return true
}

// IsFinite returns whether L(a) is finite: no productive state (reachable
// from start AND co-reachable to an accepting state) lies on a cycle.
func IsFinite(a *DFA) bool {
	if IsEmpty(a) {
		return true
	}
	reach := reachableFrom(a, a.start)
	core := coreachable(a)
	productive := map[string]bool{}
	for name := range reach {
		if core[name] {
			productive[name] = true
		}
	}

	letters := allLetters(a.alphabet, a.arity)
	color := map[string]int{} // 0 unvisited, 1 in progress, 2 done
	var hasCycle bool
	var visit func(string)
	visit = func(name string) {
		if hasCycle || color[name] == 2 {
			return
		}
		if color[name] == 1 {
			hasCycle = true
			return
		}
		color[name] = 1
		for _, l := range letters {
			next, ok := a.Step(name, l)
			if ok && productive[next] {
				visit(next)
			}
		}
		color[name] = 2
	}
	for name := range productive {
		if !hasCycle {
			visit(name)
		}
	}
	return !hasCycle
}

// trim removes every state that is unreachable from the start state or not
// co-reachable to an accepting state, keeping at most one dead sink for
// any transitions that would otherwise dangle. It assumes a is total.
func trim(a *DFA) *DFA {
	reach := reachableFrom(a, a.start)
	core := coreachable(a)
	keep := map[string]bool{}
	for name := range reach {
		if core[name] {
			keep[name] = true
		}
	}
	if !keep[a.start] {
		// whole language is empty; keep a single dead state.
		result := New(a.alphabet, a.arity)
		result.AddState("dead", false)
		_ = result.SetStart("dead")
		letters := allLetters(a.alphabet, a.arity)
		for _, l := range letters {
			_ = result.AddTransition("dead", l, "dead")
		}
		return result
	}

	result := New(a.alphabet, a.arity)
	needSink := false
	for name := range keep {
		result.AddState(name, a.IsAccepting(name))
	}
	letters := allLetters(a.alphabet, a.arity)
	for name := range keep {
		for _, l := range letters {
			next, ok := a.Step(name, l)
			if ok && keep[next] {
				_ = result.AddTransition(name, l, next)
			} else {
				needSink = true
			}
		}
	}
	if needSink {
		sink := result.freshStateName("dead")
		result.AddState(sink, false)
		for _, l := range letters {
			_ = result.AddTransition(sink, l, sink)
		}
		for name := range keep {
			for _, l := range letters {
				if _, ok := result.Step(name, l); !ok {
					_ = result.AddTransition(name, l, sink)
				}
			}
		}
	}
	_ = result.SetStart(a.start)
	return result
}

// Minimize returns a language-equivalent DFA with the minimum number of
// states, using Moore-style partition refinement. The result has no
// unreachable or dead states except a single sink kept when required to
// keep the transition function total.
func Minimize(a *DFA) *DFA {
	a = trim(a.MakeTotal())
	letters := allLetters(a.alphabet, a.arity)
	names := a.States()

	// initial partition: accepting vs non-accepting
	partitionOf := map[string]int{}
	for _, n := range names {
		if a.IsAccepting(n) {
			partitionOf[n] = 1
		} else {
			partitionOf[n] = 0
		}
	}
	numParts := 2

	for {
		// signature groups states by (partition, [partition of successor per letter])
		type sigKey string
		sigOf := map[string]sigKey{}
		for _, n := range names {
			var b strings.Builder
			b.WriteString(string(rune('A' + partitionOf[n])))
			for _, l := range letters {
				next, _ := a.Step(n, l)
				b.WriteByte(',')
				fmtInt(&b, partitionOf[next])
			}
			sigOf[n] = sigKey(b.String())
		}

		sigToPart := map[sigKey]int{}
		newPartitionOf := map[string]int{}
		nextPart := 0
		// assign in sorted name order for determinism
		sortedNames := append([]string{}, names...)
		sort.Strings(sortedNames)
		for _, n := range sortedNames {
			sig := sigOf[n]
			p, ok := sigToPart[sig]
			if !ok {
				p = nextPart
				sigToPart[sig] = p
				nextPart++
			}
			newPartitionOf[n] = p
		}

		if nextPart == numParts {
			same := true
			for _, n := range names {
				if newPartitionOf[n] != partitionOf[n] {
					same = false
					break
				}
			}
			if same {
				partitionOf = newPartitionOf
				break
			}
		}
		partitionOf = newPartitionOf
		numParts = nextPart
	}

	// build the minimized automaton: one state per partition class
	result := New(a.alphabet, a.arity)
	partName := func(p int) string { return intToState(p) }
	for p := 0; p < numParts; p++ {
		// an accepting class contains only accepting members, by construction
		var accepting bool
		for _, n := range names {
			if partitionOf[n] == p {
				accepting = a.IsAccepting(n)
				break
			}
		}
		result.AddState(partName(p), accepting)
	}
	for p := 0; p < numParts; p++ {
		var rep string
		for _, n := range names {
			if partitionOf[n] == p {
				rep = n
				break
			}
		}
		for _, l := range letters {
			next, _ := a.Step(rep, l)
			_ = result.AddTransition(partName(p), l, partName(partitionOf[next]))
		}
	}
	_ = result.SetStart(partName(partitionOf[a.start]))
	return result
}

func fmtInt(b *strings.Builder, n int) {
	b.WriteString(intToState(n))
}

func intToState(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
