// Package plotsink names the seam between the VM's plot/histogram
// quadruples and whatever actually renders them, the way the teacher's
// internal/backend/backend.go names the seam between its evaluator and a
// concrete execution strategy rather than hard-wiring one.
//
// Raoul's spec treats the renderer as an external collaborator (spec §1):
// the VM only needs to know that a call blocks until the window closes,
// then the program ends. A concrete GUI/terminal backend is out of
// scope here; Null is the headless default tests and the CLI's
// non-interactive path use.
package plotsink

// Sink receives the two dataframe visualization calls a Raoul program can
// make. Implementations must block until the rendered view is dismissed,
// matching spec §5/§6's "blocks" requirement.
type Sink interface {
	Plot(xs, ys []float64) error
	Histogram(values []float64, bins int) error
}

// Null is a no-op Sink: it records nothing and returns immediately,
// used by tests and by the CLI when run non-interactively.
type Null struct{}

func (Null) Plot(xs, ys []float64) error          { return nil }
func (Null) Histogram(values []float64, bins int) error { return nil }
