package presentation

import (
	"github.com/dekarrin/rezi"

	"github.com/dekarrin/autstr/automaton"
)

// Snapshot is a rezi-encodable byte form of a single relation's Canonical
// automaton, named so it can be reinstalled with Update. This is an
// in-memory encode/decode pair (for relation caching and transport between
// two live Presentations) — it does not read or write a file itself.
type Snapshot struct {
	Name string
	Data []byte
}

// Export encodes the named relation's Canonical form for later reinstallation
// via Import, on this or another compatible Presentation.
func (p *Presentation) Export(name string) (Snapshot, error) {
	d, ok := p.relations[name]
	if !ok {
		return Snapshot{}, wrapf(ErrUnknownRelation, "export %q", name)
	}
	return Snapshot{Name: name, Data: rezi.EncBinary(d.Canonicalize())}, nil
}

// Import decodes a Snapshot and installs it under its original name, running
// it back through the same preparation Update applies to a raw *automaton.DFA.
func (p *Presentation) Import(s Snapshot) error {
	var c automaton.Canonical
	n, err := rezi.DecBinary(s.Data, &c)
	if err != nil {
		return wrapf(err, "decoding snapshot %q", s.Name)
	}
	if n != len(s.Data) {
		return wrapf(nil, "snapshot %q: decoded %d/%d bytes", s.Name, n, len(s.Data))
	}
	return p.Update(s.Name, automaton.FromCanonical(c))
}
