package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// ErrLengthMismatch is returned when predictions and targets differ in length
// or are empty.
var ErrLengthMismatch = errors.New("predictions and targets length mismatch")

// MSELoss returns the summed squared error Σ (pred_i - target_i)².
//
// The sum is not divided by the sample count, matching the classic
// micrograd demo whose learning rates assume a plain sum.
func MSELoss(g *autodiff.Graph, preds []autodiff.Value, targets []float64) (autodiff.Value, error) {
	if len(preds) != len(targets) || len(preds) == 0 {
		return autodiff.Value{}, errors.Wrapf(ErrLengthMismatch, "%d predictions, %d targets", len(preds), len(targets))
	}

	terms := make([]autodiff.Operand, len(preds))
	for i, p := range preds {
		terms[i] = p.Sub(autodiff.Const(targets[i])).Pow(2)
	}
	return g.Sum(terms...), nil
}
