package automaton

import "strings"

// letterSep separates the components of a product-alphabet letter when it is
// flattened to a map key. It is a control character that cannot appear in any
// base-alphabet symbol used by this package's callers (single characters like
// "0", "1", "*").
const letterSep = "\x1f"

// Letter is one character of the product alphabet Sigma^k: a k-tuple of base
// alphabet symbols, one per component/column of the relation being encoded.
type Letter []string

// Key returns a canonical string form of l suitable for use as a map key.
func (l Letter) Key() string {
	return strings.Join(l, letterSep)
}

func (l Letter) copy() Letter {
	cp := make(Letter, len(l))
	copy(cp, l)
	return cp
}

// letterFromKey is the inverse of Letter.Key.
func letterFromKey(key string) Letter {
	if key == "" {
		return Letter{}
	}
	return Letter(strings.Split(key, letterSep))
}

// allLetters returns every letter of alphabet^arity, in a deterministic
// order (lexicographic in alphabet's given order, most significant component
// first). arity == 0 yields the single empty letter.
func allLetters(alphabet []string, arity int) []Letter {
	if arity == 0 {
		return []Letter{{}}
	}
	letters := []Letter{{}}
	for i := 0; i < arity; i++ {
		next := make([]Letter, 0, len(letters)*len(alphabet))
		for _, l := range letters {
			for _, a := range alphabet {
				ext := make(Letter, len(l)+1)
				copy(ext, l)
				ext[len(l)] = a
				next = append(next, ext)
			}
		}
		letters = next
	}
	return letters
}
