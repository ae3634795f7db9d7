package train

import (
	"github.com/pkg/errors"
)

// ErrDataset is returned for empty or ragged datasets.
var ErrDataset = errors.New("invalid dataset")

// DemoDataset returns the four-sample binary classification set of the
// classic micrograd demo. Targets are ±1 to match a tanh output.
func DemoDataset() (xs [][]float64, ys []float64) {
	xs = [][]float64{
		{2.0, 3.0, -1.0},
		{3.0, -1.0, 0.5},
		{0.5, 1.0, 1.0},
		{1.0, 1.0, -1.0},
	}
	ys = []float64{1.0, -1.0, -1.0, 1.0}
	return xs, ys
}

// validateDataset checks that xs and ys pair up and every sample has nin features.
func validateDataset(xs [][]float64, ys []float64, nin int) error {
	if len(xs) == 0 {
		return errors.Wrap(ErrDataset, "no samples")
	}
	if len(xs) != len(ys) {
		return errors.Wrapf(ErrDataset, "%d samples, %d targets", len(xs), len(ys))
	}
	for i, x := range xs {
		if len(x) != nin {
			return errors.Wrapf(ErrDataset, "sample %d has %d features, model expects %d", i, len(x), nin)
		}
	}
	return nil
}
