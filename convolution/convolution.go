// Package convolution implements the operators that translate between plain
// automata and the convolved encoding automatic presentations use to
// represent k-ary relations: padding ragged tuples to a common length,
// expanding/projecting columns, and building the product alphabet an
// n-ary relation is encoded over.
package convolution

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/autstr/automaton"
)

// Pad returns a DFA of the same arity as a, over a's alphabet extended with
// padSymbol (if it is not already part of it), accepting the padded closure
// of L(a): every accepted word w, followed by any number of all-padding
// letters (padSymbol repeated arity times). Once a run leaves L(a) by reading
// a non-padding letter after padding has started, it is rejected; so is any
// letter a itself has no transition for.
func Pad(a *automaton.DFA, padSymbol string) *automaton.DFA {
	total := a.MakeTotal()
	alphabet := total.Alphabet()
	hasPad := false
	for _, s := range alphabet {
		if s == padSymbol {
			hasPad = true
		}
	}
	if !hasPad {
		alphabet = append(alphabet, padSymbol)
	}
	result := automaton.New(alphabet, total.Arity())

	padLetter := paddingLetter(total.Arity(), padSymbol)

	good := "good"
	bad := "bad"
	for _, name := range total.States() {
		result.AddState(name, total.IsAccepting(name))
	}
	result.AddState(good, true)
	result.AddState(bad, false)

	letters := allLetters(result.Alphabet(), total.Arity())
	for _, name := range total.States() {
		for _, l := range letters {
			to, ok := total.Step(name, l)
			if !ok {
				to = bad
			}
			_ = result.AddTransition(name, l, to)
		}
		// an accepting state may additionally start padding
		if total.IsAccepting(name) {
			_ = result.AddTransition(name, padLetter, good)
		}
	}
	for _, l := range letters {
		if l.Key() == padLetter.Key() {
			_ = result.AddTransition(good, l, good)
		} else {
			_ = result.AddTransition(good, l, bad)
		}
		_ = result.AddTransition(bad, l, bad)
	}
	_ = result.SetStart(total.Start())
	return result
}

// Unpad returns a DFA over the same alphabet and arity as a, accepting the
// unpadded closure of L(a): a word w that contains no all-padding letter is
// accepted if w followed by zero or more all-padding letters is in L(a).
// Every all-padding letter leads to a rejecting sink. This is pad's inverse
// on already-padded languages.
func Unpad(a *automaton.DFA, padSymbol string) *automaton.DFA {
	total := a.MakeTotal()
	padLetter := paddingLetter(total.Arity(), padSymbol)
	letters := allLetters(total.Alphabet(), total.Arity())

	// a state is "pad-accepting" if reading padLetter from it some finite
	// number of times (possibly zero) reaches an accepting state. Compute by
	// fixpoint over the finite state set.
	padAccepting := make(map[string]bool, len(total.States()))
	for _, name := range total.States() {
		padAccepting[name] = total.IsAccepting(name)
	}
	for changed := true; changed; {
		changed = false
		for _, name := range total.States() {
			if padAccepting[name] {
				continue
			}
			to, ok := total.Step(name, padLetter)
			if ok && padAccepting[to] {
				padAccepting[name] = true
				changed = true
			}
		}
	}

	result := automaton.New(total.Alphabet(), total.Arity())
	sink := "unpadSink"
	for total.HasState(sink) {
		sink += "_"
	}
	result.AddState(sink, false)
	for _, name := range total.States() {
		result.AddState(name, padAccepting[name])
	}
	for _, name := range total.States() {
		for _, l := range letters {
			to, _ := total.Step(name, l)
			if l.Key() == padLetter.Key() {
				to = sink
			}
			_ = result.AddTransition(name, l, to)
		}
	}
	for _, l := range letters {
		_ = result.AddTransition(sink, l, sink)
	}
	_ = result.SetStart(total.Start())
	return result
}

// Expand re-reads an n-ary relation automaton as one of a wider arity by
// mapping each of a's own columns onto a column of the new, wider letter:
// oldToNew[i] gives the new-letter position that feeds old column i. Every
// new column not named by oldToNew is unconstrained (free): a's transition
// function is consulted only through the columns it names, so two old
// columns mapped to the same new column are forced to agree, which is
// exactly the diagonal constraint a repeated variable like R(x,x) needs.
// Expand is used to align relations of different arity onto a common
// ambient free-variable list before intersecting or unioning them.
func Expand(a *automaton.DFA, newArity int, oldToNew []int) (*automaton.DFA, error) {
	if len(oldToNew) != a.Arity() {
		return nil, fmt.Errorf("convolution: expand: len(oldToNew)=%d != arity=%d: %w", len(oldToNew), a.Arity(), automaton.ErrArityMismatch)
	}
	for _, n := range oldToNew {
		if n < 0 || n >= newArity {
			return nil, fmt.Errorf("convolution: expand: target column %d out of range for new arity %d: %w", n, newArity, automaton.ErrArityMismatch)
		}
	}
	total := a.MakeTotal()
	result := automaton.New(total.Alphabet(), newArity)
	for _, name := range total.States() {
		result.AddState(name, total.IsAccepting(name))
	}
	newLetters := allLetters(total.Alphabet(), newArity)
	for _, name := range total.States() {
		for _, nl := range newLetters {
			old := make(automaton.Letter, total.Arity())
			for i, newCol := range oldToNew {
				old[i] = nl[newCol]
			}
			to, ok := total.Step(name, old)
			if ok {
				_ = result.AddTransition(name, nl, to)
			}
		}
	}
	_ = result.SetStart(total.Start())
	return result, nil
}

// Product returns a DFA over alphabet^n recognizing the n-fold convolution
// of the universe relation: words whose every one of the n columns, read
// alone, is accepted by a. Product(a, 0) returns the arity-0 automaton built
// by one.
func Product(a *automaton.DFA, n int) (*automaton.DFA, error) {
	if n == 0 {
		return one(a.Alphabet()), nil
	}
	result, err := Expand(a, n, []int{0})
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		col, err := Expand(a, n, []int{i})
		if err != nil {
			return nil, err
		}
		result, err = automaton.Intersection(result, col)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// one returns the automaton over arity 0 whose single accepting state loops
// on the empty letter, the only letter of arity 0. It accepts every word over
// that letter, which is the padded form of the language {ε}.
func one(alphabet []string) *automaton.DFA {
	d := automaton.New(alphabet, 0)
	d.AddState("s", true)
	_ = d.SetStart("s")
	letter := automaton.Letter{}
	_ = d.AddTransition("s", letter, "s")
	return d
}

// Projection returns a DFA over an (n-1)-ary product alphabet, recognizing
// the projection of L(a) that existentially quantifies column i: a word w is
// accepted iff some word obtained from w by inserting an arbitrary symbol at
// column i is in L(a). Determinism is restored via subset construction.
func Projection(a *automaton.DFA, i int) (*automaton.DFA, error) {
	if i < 0 || i >= a.Arity() {
		return nil, fmt.Errorf("convolution: projection: index %d out of range for arity %d: %w", i, a.Arity(), automaton.ErrArityMismatch)
	}
	total := a.MakeTotal()
	newArity := total.Arity() - 1
	fullLetters := allLetters(total.Alphabet(), total.Arity())
	narrowLetters := allLetters(total.Alphabet(), newArity)

	startSet := []string{total.Start()}
	startKey := subsetKey(startSet)

	result := automaton.New(total.Alphabet(), newArity)
	result.AddState(startKey, containsAccepting(total, startSet))
	queue := [][]string{startSet}
	seen := map[string]bool{startKey: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curKey := subsetKey(cur)

		for _, nl := range narrowLetters {
			nextSet := map[string]bool{}
			for _, fl := range fullLetters {
				if !matchesNarrow(fl, nl, i) {
					continue
				}
				for _, s := range cur {
					if to, ok := total.Step(s, fl); ok {
						nextSet[to] = true
					}
				}
			}
			nextList := setToSortedSlice(nextSet)
			nextKey := subsetKey(nextList)
			if !seen[nextKey] {
				seen[nextKey] = true
				result.AddState(nextKey, containsAccepting(total, nextList))
				queue = append(queue, nextList)
			}
			_ = result.AddTransition(curKey, nl, nextKey)
		}
	}
	_ = result.SetStart(startKey)
	return result, nil
}

func matchesNarrow(full, narrow automaton.Letter, skip int) bool {
	j := 0
	for idx, sym := range full {
		if idx == skip {
			continue
		}
		if sym != narrow[j] {
			return false
		}
		j++
	}
	return true
}

func containsAccepting(a *automaton.DFA, states []string) bool {
	for _, s := range states {
		if a.IsAccepting(s) {
			return true
		}
	}
	return false
}

func setToSortedSlice(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func subsetKey(states []string) string {
	sorted := append([]string{}, states...)
	sort.Strings(sorted)
	if len(sorted) == 0 {
		return "{}"
	}
	return "{" + strings.Join(sorted, ",") + "}"
}

func paddingLetter(arity int, padSymbol string) automaton.Letter {
	l := make(automaton.Letter, arity)
	for i := range l {
		l[i] = padSymbol
	}
	return l
}

func allLetters(alphabet []string, arity int) []automaton.Letter {
	if arity == 0 {
		return []automaton.Letter{{}}
	}
	letters := []automaton.Letter{{}}
	for i := 0; i < arity; i++ {
		next := make([]automaton.Letter, 0, len(letters)*len(alphabet))
		for _, l := range letters {
			for _, a := range alphabet {
				ext := make(automaton.Letter, len(l)+1)
				copy(ext, l)
				ext[len(l)] = a
				next = append(next, ext)
			}
		}
		letters = next
	}
	return letters
}
