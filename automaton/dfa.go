// Package automaton implements deterministic finite automata over
// product alphabets (AutomatonCore) and the minimization / reachability
// machinery the rest of this module builds on.
//
// A DFA's states carry no payload beyond their name and whether they accept:
// per the data model's "opaque identity" invariant, nothing outside this
// package should depend on exact state names surviving an operation.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
)

type dfaState struct {
	name      string
	accepting bool
	order     uint64
	trans     map[string]string // Letter.Key() -> destination state name
}

func (s dfaState) copy() dfaState {
	cp := dfaState{name: s.name, accepting: s.accepting, order: s.order, trans: make(map[string]string, len(s.trans))}
	for k, v := range s.trans {
		cp.trans[k] = v
	}
	return cp
}

// DFA is a deterministic finite automaton over a product alphabet Sigma^k.
// Arity k is fixed at construction. The zero value is not usable; build one
// with New.
type DFA struct {
	alphabet []string // base alphabet, e.g. {"0", "1", "*"}
	arity    int
	start    string
	states   map[string]dfaState
	order    uint64
}

// New creates an empty DFA with the given base alphabet and arity. States and
// transitions are added with AddState and AddTransition; the transition
// function need not be total until an operation that requires totality
// (Complement, Minimize) is invoked — those call MakeTotal themselves.
func New(alphabet []string, arity int) *DFA {
	ab := make([]string, len(alphabet))
	copy(ab, alphabet)
	sort.Strings(ab)
	return &DFA{
		alphabet: ab,
		arity:    arity,
		states:   make(map[string]dfaState),
	}
}

// Alphabet returns the base alphabet (not the product alphabet).
func (d *DFA) Alphabet() []string {
	ab := make([]string, len(d.alphabet))
	copy(ab, d.alphabet)
	return ab
}

// Arity returns the tuple length of every letter this automaton reads.
func (d *DFA) Arity() int {
	return d.arity
}

// Start returns the name of the initial state.
func (d *DFA) Start() string {
	return d.start
}

// AddState adds a new state. No effect if the name already exists.
func (d *DFA) AddState(name string, accepting bool) {
	if _, ok := d.states[name]; ok {
		return
	}
	d.states[name] = dfaState{
		name:      name,
		accepting: accepting,
		order:     d.order,
		trans:     make(map[string]string),
	}
	d.order++
}

// SetStart sets the initial state, which must already have been added.
func (d *DFA) SetStart(name string) error {
	if _, ok := d.states[name]; !ok {
		return wrapf(ErrUnknownState, "set start to %q", name)
	}
	d.start = name
	return nil
}

// SetAccepting updates whether state is an accepting state.
func (d *DFA) SetAccepting(name string, accepting bool) error {
	s, ok := d.states[name]
	if !ok {
		return wrapf(ErrUnknownState, "set accepting on %q", name)
	}
	s.accepting = accepting
	d.states[name] = s
	return nil
}

// IsAccepting returns whether state is an accepting state. Returns false if
// the state does not exist.
func (d *DFA) IsAccepting(name string) bool {
	return d.states[name].accepting
}

// HasState returns whether name has been added to d.
func (d *DFA) HasState(name string) bool {
	_, ok := d.states[name]
	return ok
}

// States returns every state name, sorted for deterministic iteration.
func (d *DFA) States() []string {
	names := make([]string, 0, len(d.states))
	for n := range d.states {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AddTransition records a transition from -- letter --> to. from and to must
// already exist as states. letter's length must equal d.Arity().
func (d *DFA) AddTransition(from string, letter Letter, to string) error {
	if len(letter) != d.arity {
		return wrapf(ErrArityMismatch, "transition letter %v has length %d, want %d", letter, len(letter), d.arity)
	}
	fs, ok := d.states[from]
	if !ok {
		return wrapf(ErrUnknownState, "transition from %q", from)
	}
	if _, ok := d.states[to]; !ok {
		return wrapf(ErrUnknownState, "transition to %q", to)
	}
	fs.trans[letter.Key()] = to
	d.states[from] = fs
	return nil
}

// Transition pairs a letter with the destination state it leads to, for
// callers that need a state's whole outgoing transition set rather than
// probing letter by letter (the enumerator's exploration frontier, in
// particular).
type Transition struct {
	Letter Letter
	To     string
}

// Transitions returns every defined transition out of state, in
// deterministic (product-alphabet) letter order. Returns nil if state does
// not exist.
func (d *DFA) Transitions(state string) []Transition {
	s, ok := d.states[state]
	if !ok {
		return nil
	}
	letters := allLetters(d.alphabet, d.arity)
	out := make([]Transition, 0, len(s.trans))
	for _, l := range letters {
		if to, ok := s.trans[l.Key()]; ok {
			out = append(out, Transition{Letter: l, To: to})
		}
	}
	return out
}

// Step returns the destination state for (from, letter), and whether that
// transition is defined.
func (d *DFA) Step(from string, letter Letter) (string, bool) {
	s, ok := d.states[from]
	if !ok {
		return "", false
	}
	to, ok := s.trans[letter.Key()]
	return to, ok
}

// IsTotal returns whether delta is defined for every state and every letter
// of the product alphabet.
func (d *DFA) IsTotal() bool {
	letters := allLetters(d.alphabet, d.arity)
	for _, s := range d.states {
		if len(s.trans) < len(letters) {
			return false
		}
		for _, l := range letters {
			if _, ok := s.trans[l.Key()]; !ok {
				return false
			}
		}
	}
	return true
}

// MakeTotal returns a copy of d with a single dead (non-accepting,
// self-looping) sink state added and used to fill in every missing
// transition. If d is already total, a plain copy is returned with no sink
// added.
func (d *DFA) MakeTotal() *DFA {
	if d.IsTotal() {
		return d.Copy()
	}
	cp := d.Copy()
	sink := cp.freshStateName("dead")
	cp.AddState(sink, false)
	letters := allLetters(cp.alphabet, cp.arity)
	for _, name := range cp.States() {
		s := cp.states[name]
		for _, l := range letters {
			if _, ok := s.trans[l.Key()]; !ok {
				s.trans[l.Key()] = sink
			}
		}
		cp.states[name] = s
	}
	sinkState := cp.states[sink]
	for _, l := range letters {
		sinkState.trans[l.Key()] = sink
	}
	cp.states[sink] = sinkState
	return cp
}

// freshStateName returns a state name not currently in use, derived from
// base.
func (d *DFA) freshStateName(base string) string {
	if !d.HasState(base) {
		return base
	}
	for i := 0; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !d.HasState(candidate) {
			return candidate
		}
	}
}

// Copy returns a deep duplicate of d.
func (d *DFA) Copy() *DFA {
	cp := &DFA{
		alphabet: d.Alphabet(),
		arity:    d.arity,
		start:    d.start,
		order:    d.order,
		states:   make(map[string]dfaState, len(d.states)),
	}
	for k, v := range d.states {
		cp.states[k] = v.copy()
	}
	return cp
}

// NumberStates renames every state to a small sequential number, starting
// state first, then ordered by insertion order. This is the normalization
// pass the data model requires callers to run if they need reproducible
// state IDs; nothing in this package depends on names surviving it.
func (d *DFA) NumberStates() {
	if d.start == "" {
		return
	}
	names := d.States()
	ordered := make([]string, 0, len(names))
	ordered = append(ordered, d.start)
	type byOrder struct {
		name  string
		order uint64
	}
	rest := make([]byOrder, 0, len(names))
	for _, n := range names {
		if n == d.start {
			continue
		}
		rest = append(rest, byOrder{n, d.states[n].order})
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].order < rest[j].order })
	for _, r := range rest {
		ordered = append(ordered, r.name)
	}

	mapping := make(map[string]string, len(ordered))
	for i, n := range ordered {
		mapping[n] = fmt.Sprintf("%d", i)
	}

	newStates := make(map[string]dfaState, len(d.states))
	for _, n := range ordered {
		old := d.states[n]
		ns := dfaState{
			name:      mapping[n],
			accepting: old.accepting,
			order:     old.order,
			trans:     make(map[string]string, len(old.trans)),
		}
		for letterKey, to := range old.trans {
			ns.trans[letterKey] = mapping[to]
		}
		newStates[ns.name] = ns
	}
	d.states = newStates
	d.start = mapping[d.start]
}

// String renders a human-readable transition table via rosed.
func (d *DFA) String() string {
	letters := allLetters(d.alphabet, d.arity)
	header := []string{"state", "accept"}
	for _, l := range letters {
		header = append(header, "["+strings.Join(l, ",")+"]")
	}
	data := [][]string{header}
	for _, name := range d.States() {
		s := d.states[name]
		label := name
		if name == d.start {
			label = "->" + label
		}
		row := []string{label, fmt.Sprintf("%v", s.accepting)}
		for _, l := range letters {
			to, ok := s.trans[l.Key()]
			if !ok {
				to = "-"
			}
			row = append(row, to)
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 12, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
