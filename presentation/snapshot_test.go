package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/autstr/automaton"
)

func TestExportImport_RoundTripsRelationLanguage(t *testing.T) {
	p, err := New("*", map[string]*automaton.DFA{"U": anyOneBit()})
	require.NoError(t, err)

	snap, err := p.Export("U")
	require.NoError(t, err)
	assert.Equal(t, "U", snap.Name)
	assert.NotEmpty(t, snap.Data)

	q, err := New("*", map[string]*automaton.DFA{"U": anyOneBit()})
	require.NoError(t, err)
	require.NoError(t, q.Import(snap))

	got, ok := q.Lookup("U")
	require.True(t, ok)
	assert.False(t, automaton.IsEmpty(got))
	assert.Equal(t, len(p.Universe().States()), len(got.States()))
}

func TestExport_UnknownRelation_Errors(t *testing.T) {
	p, err := New("*", map[string]*automaton.DFA{"U": anyOneBit()})
	require.NoError(t, err)

	_, err = p.Export("DoesNotExist")
	assert.Error(t, err)
}
