package sweep

import "github.com/pkg/errors"

// Threading errors up and down the deeply recursive sweep operations would add
// a ton of complexity to the code. Instead, we use panics, and the public API
// recovers to convert to an error. Every fatal condition wraps one of the
// sentinel errors below, so callers can discriminate with errors.Is.

// Categorical failures of the sweep. All of them mean the current
// triangulation is unusable; the context must be thrown away.
var (
	// ErrNullTriangle means a traversal required a neighbor triangle that did
	// not exist. The input is likely self-intersecting, or a point lies
	// outside the bootstrap region.
	ErrNullTriangle = errors.New("null triangle")

	// ErrNullNode means locating a point on the advancing front failed. The
	// point's x value was outside the front's span.
	ErrNullNode = errors.New("null front node")

	// ErrCollinearPoints means a constraint edge is collinear with a third
	// point that it does not contain.
	ErrCollinearPoints = errors.New("collinear points")

	// ErrDegenerateTriangle means a triangle was missing a CCW or CW vertex
	// relative to a pivot point. Mesh invariants have been violated.
	ErrDegenerateTriangle = errors.New("degenerate triangle")

	// ErrRecursionDepth is the safety net for adversarial input that would
	// otherwise send the flip and fill chains into runaway recursion.
	ErrRecursionDepth = errors.New("recursion depth exceeded")

	// ErrInvalidInput covers problems caught before the sweep starts: rings
	// with fewer than three vertices, coincident edge endpoints, or a context
	// that has already been used.
	ErrInvalidInput = errors.New("invalid input")
)

type triangulateError struct{ err error }

// Panic with a triangulateError wrapping the given sentinel.
func fatal(kind error, format string, args ...interface{}) {
	panic(triangulateError{errors.Wrapf(kind, format, args...)})
}

// Recover handler for the public API. Converts triangulateError panics raised
// by the engine into ordinary errors and re-panics on anything else.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if te, ok := r.(triangulateError); ok {
			return te.err
		}
		panic(r)
	}
	return nil
}
