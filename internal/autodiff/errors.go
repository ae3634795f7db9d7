package autodiff

import "github.com/pkg/errors"

// Common errors.
var (
	// ErrUnsupportedExponent is returned by Power when the exponent is a graph
	// node rather than a constant.
	ErrUnsupportedExponent = errors.New("unsupported exponent type")

	// ErrCyclicGraph reports a predecessor that does not precede its consumer
	// in the arena. The public API cannot produce one.
	ErrCyclicGraph = errors.New("cyclic graph")
)
