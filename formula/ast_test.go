package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplication_FreeVars_DedupsAndSorts(t *testing.T) {
	assert := assert.New(t)

	app := NewApplication("R", "y", "x", "y")
	assert.Equal([]string{"x", "y"}, app.FreeVars())
}

func TestQuantifier_FreeVars_RemovesBoundVars(t *testing.T) {
	assert := assert.New(t)

	body := NewApplication("A", "x", "y", "z")
	f := NewExists(body, "y")
	assert.Equal([]string{"x", "z"}, f.FreeVars())
}

func TestAsApplication_PanicsOnWrongKind(t *testing.T) {
	assert := assert.New(t)

	f := NewAnd(NewApplication("R", "x"), NewApplication("S", "x"))
	assert.Panics(func() { AsApplication(f) })
}

func TestBinary_String(t *testing.T) {
	assert := assert.New(t)

	f := NewAnd(NewApplication("R", "x"), NewApplication("S", "x"))
	assert.Contains(f.String(), "and")
}
