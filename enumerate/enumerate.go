// Package enumerate implements length-lexicographic enumeration of the
// tuples accepted by an unpadded relation automaton: a lazy, restartable
// best-first search over words, used both for iteration and (by taking the
// first element) membership-adjacent checks.
package enumerate

import (
	"container/heap"
	"sort"

	"github.com/dekarrin/autstr/automaton"
)

// Word is one accepted run's sequence of letters, in the order the DFA read
// them (forward mode) or in already-reversed order (backward mode — see
// New).
type Word []automaton.Letter

// Enumerator lazily enumerates L(d) (or its reverse language, in backward
// mode) in length-lexicographic order: by max component length, ties broken
// componentwise. Padding-only transitions — every column reading padSymbol
// at once — are excluded from exploration entirely, so the length measure
// never counts padding. An Enumerator holds its search frontier across
// Next calls; it does not rebuild or mutate d.
type Enumerator struct {
	d          *automaton.DFA
	padSymbol  string
	padLetter  automaton.Letter
	backward   bool
	alphaRank  map[string]int
	productive map[string]bool
	reverse    map[string][]automaton.Transition // only built for backward mode
	frontier   *wordHeap
}

// New builds an Enumerator over d. If backward is false, it enumerates
// L(d) by forward best-first search from d.Start(). If backward is true, it
// enumerates the reverse language L(d)^R by searching from the accepting
// states back toward the start state along reversed transitions, yielding
// each already-reversed word.
func New(d *automaton.DFA, padSymbol string, backward bool) *Enumerator {
	e := &Enumerator{
		d:          d,
		padSymbol:  padSymbol,
		padLetter:  allPadLetter(d.Arity(), padSymbol),
		backward:   backward,
		alphaRank:  rankAlphabet(d.Alphabet(), padSymbol),
		productive: automaton.Productive(d),
	}
	if backward {
		e.reverse = buildReverse(d, e.productive, e.padLetter)
	}
	e.Reset()
	return e
}

// Reset reinitializes the search frontier to its starting position,
// discarding any in-progress exploration, so enumeration can begin again
// from the first element.
func (e *Enumerator) Reset() {
	e.frontier = &wordHeap{rank: e.alphaRank, arity: e.d.Arity()}
	heap.Init(e.frontier)

	if e.backward {
		for _, name := range e.d.States() {
			if e.d.IsAccepting(name) && e.productive[name] {
				heap.Push(e.frontier, frontierItem{state: name})
			}
		}
		return
	}

	start := e.d.Start()
	if e.productive[start] {
		heap.Push(e.frontier, frontierItem{state: start})
	}
}

// Next pops the next word in length-lexicographic order, or returns
// ok=false once the frontier is exhausted (which, for an infinite
// language, never happens — callers drive this themselves).
func (e *Enumerator) Next() (word Word, ok bool) {
	for e.frontier.Len() > 0 {
		cur := heap.Pop(e.frontier).(frontierItem)

		if e.backward {
			if cur.state == e.d.Start() {
				ok = true
				word = append(Word(nil), cur.word...)
			}
			for _, rt := range e.reverse[cur.state] {
				if !e.productive[rt.To] {
					continue
				}
				heap.Push(e.frontier, frontierItem{
					word:  appendLetter(cur.word, rt.Letter),
					state: rt.To,
				})
			}
		} else {
			if e.d.IsAccepting(cur.state) {
				ok = true
				word = append(Word(nil), cur.word...)
			}
			for _, t := range e.d.Transitions(cur.state) {
				if t.Letter.Key() == e.padLetter.Key() {
					continue
				}
				if !e.productive[t.To] {
					continue
				}
				heap.Push(e.frontier, frontierItem{
					word:  appendLetter(cur.word, t.Letter),
					state: t.To,
				})
			}
		}

		if ok {
			return word, true
		}
	}
	return nil, false
}

func appendLetter(word []automaton.Letter, l automaton.Letter) []automaton.Letter {
	out := make([]automaton.Letter, len(word)+1)
	copy(out, word)
	out[len(word)] = l
	return out
}

func allPadLetter(arity int, padSymbol string) automaton.Letter {
	l := make(automaton.Letter, arity)
	for i := range l {
		l[i] = padSymbol
	}
	return l
}

// buildReverse constructs, for every productive state, the set of
// transitions (from some productive predecessor) that lead into it,
// excluding the all-padding letter — the same exclusion forward exploration
// applies.
func buildReverse(d *automaton.DFA, productive map[string]bool, padLetter automaton.Letter) map[string][]automaton.Transition {
	reverse := make(map[string][]automaton.Transition)
	for _, name := range d.States() {
		if !productive[name] {
			continue
		}
		for _, t := range d.Transitions(name) {
			if t.Letter.Key() == padLetter.Key() {
				continue
			}
			if !productive[t.To] {
				continue
			}
			reverse[t.To] = append(reverse[t.To], automaton.Transition{Letter: t.Letter, To: name})
		}
	}
	return reverse
}

func rankAlphabet(alphabet []string, padSymbol string) map[string]int {
	real := make([]string, 0, len(alphabet))
	for _, s := range alphabet {
		if s != padSymbol {
			real = append(real, s)
		}
	}
	sort.Strings(real)
	rank := make(map[string]int, len(alphabet))
	for i, s := range real {
		rank[s] = i
	}
	rank[padSymbol] = len(real) // padding always sorts last within a column
	return rank
}

// frontierItem is one pending (partial word, current state) pair in the
// search frontier.
type frontierItem struct {
	word  []automaton.Letter
	state string
}

// wordHeap is a min-heap ordered by the length-lexicographic comparator:
// shorter words first; among equal lengths, compare whole columns in order
// (every letter of column 0 before considering column 1, and so on) rather
// than comparing letters position by position.
type wordHeap struct {
	items []frontierItem
	rank  map[string]int
	arity int
}

func (h *wordHeap) Len() int { return len(h.items) }

func (h *wordHeap) Less(i, j int) bool {
	a, b := h.items[i].word, h.items[j].word
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for col := 0; col < h.arity; col++ {
		for pos := 0; pos < len(a); pos++ {
			ra, rb := h.rank[a[pos][col]], h.rank[b[pos][col]]
			if ra != rb {
				return ra < rb
			}
		}
	}
	return false
}

func (h *wordHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *wordHeap) Push(x any) { h.items = append(h.items, x.(frontierItem)) }

func (h *wordHeap) Pop() any {
	n := len(h.items)
	item := h.items[n-1]
	h.items = h.items[:n-1]
	return item
}
