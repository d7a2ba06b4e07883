// Package diag holds the logging conventions shared across this module:
// Presentation.Update and the autstr structure builders log each call under
// a correlation ID so a slow or failing call can be traced through the log
// even though the engine has no request/response boundary of its own.
package diag

import (
	"log"

	"github.com/google/uuid"
)

// Tracer emits "ERROR"/"INFO" lines tagged with a per-call correlation ID,
// in the form LEVEL: <component>[<id>]: <detail>.
type Tracer struct {
	component string
}

// New returns a Tracer that prefixes every line with component.
func New(component string) *Tracer {
	return &Tracer{component: component}
}

// Start begins a traced operation, returning its correlation ID for the
// caller to pass to End/Errorf.
func (t *Tracer) Start(op string) uuid.UUID {
	id := uuid.New()
	log.Printf("INFO: %s[%s]: start %s", t.component, id, op)
	return id
}

// End logs the successful completion of a traced operation.
func (t *Tracer) End(id uuid.UUID, op string) {
	log.Printf("INFO: %s[%s]: done %s", t.component, id, op)
}

// Errorf logs a failure within a traced operation.
func (t *Tracer) Errorf(id uuid.UUID, format string, args ...any) {
	log.Printf("ERROR: %s[%s]: "+format, append([]any{t.component, id}, args...)...)
}
