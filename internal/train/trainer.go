// Package train runs full-batch gradient descent on an nn.MLP.
//
// Each iteration builds a fresh computation graph:
//
//	forward -> loss -> zero grad -> backward -> collect -> step
//
// and logs the iteration index and loss.
package train

import (
	"context"
	"io"
	"log/slog"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/born-ml/micrograd/internal/parallel"
)

// History records the loss of every completed iteration.
type History struct {
	Losses []float64
}

// Final returns the last recorded loss, or NaN if nothing ran.
func (h *History) Final() float64 {
	if len(h.Losses) == 0 {
		return math.NaN()
	}
	return h.Losses[len(h.Losses)-1]
}

// Trainer owns the model, its optimizer, and a graph reused between iterations.
type Trainer struct {
	model      *nn.MLP
	optimizer  optim.Optimizer
	graph      *autodiff.Graph
	parallel   parallel.Config
	logger     *slog.Logger
	iterations int
	logEvery   int
}

// NewTrainer creates a trainer. A nil logger discards output.
func NewTrainer(model *nn.MLP, optimizer optim.Optimizer, config Config, logger *slog.Logger) *Trainer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.LogEvery <= 0 {
		config.LogEvery = 1
	}
	return &Trainer{
		model:      model,
		optimizer:  optimizer,
		graph:      autodiff.NewGraph(),
		parallel:   parallel.DefaultConfig(),
		logger:     logger,
		iterations: config.Iterations,
		logEvery:   config.LogEvery,
	}
}

// Model returns the model being trained.
func (t *Trainer) Model() *nn.MLP {
	return t.model
}

// Step runs one full-batch iteration and returns the loss before the update.
func (t *Trainer) Step(xs [][]float64, ys []float64) (float64, error) {
	if err := validateDataset(xs, ys, t.model.InFeatures()); err != nil {
		return 0, err
	}
	return t.step(xs, ys)
}

func (t *Trainer) step(xs [][]float64, ys []float64) (float64, error) {
	g := t.graph
	g.Reset()

	preds := make([]autodiff.Value, len(xs))
	for i, x := range xs {
		preds[i] = t.model.Predict(g, x)
	}
	loss, err := nn.MSELoss(g, preds, ys)
	if err != nil {
		return 0, err
	}

	t.optimizer.ZeroGrad()
	loss.Backward()
	nn.Collect(t.model)
	t.optimizer.Step()

	return loss.Data(), nil
}

// Run trains for the configured number of iterations.
//
// Cancellation is checked between iterations; on cancellation the history
// of completed iterations is returned together with the context error.
func (t *Trainer) Run(ctx context.Context, xs [][]float64, ys []float64) (*History, error) {
	if err := validateDataset(xs, ys, t.model.InFeatures()); err != nil {
		return nil, err
	}

	history := &History{Losses: make([]float64, 0, t.iterations)}
	for i := 0; i < t.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return history, errors.Wrapf(err, "training stopped at iteration %d", i)
		}

		loss, err := t.step(xs, ys)
		if err != nil {
			return history, errors.Wrapf(err, "iteration %d", i)
		}
		history.Losses = append(history.Losses, loss)

		if i%t.logEvery == 0 || i == t.iterations-1 {
			t.logger.InfoContext(ctx, "train step",
				slog.Int("iteration", i),
				slog.Float64("loss", loss),
				slog.Float64("lr", t.optimizer.GetLR()),
			)
		}
	}
	return history, nil
}

// Predict returns the model's first output for every sample.
// Samples are evaluated without a graph, in parallel for large inputs.
func (t *Trainer) Predict(xs [][]float64) ([]float64, error) {
	if len(xs) == 0 {
		return nil, errors.Wrap(ErrDataset, "no samples")
	}
	for i, x := range xs {
		if len(x) != t.model.InFeatures() {
			return nil, errors.Wrapf(ErrDataset, "sample %d has %d features, model expects %d", i, len(x), t.model.InFeatures())
		}
	}

	return parallel.Map(xs, func(x []float64) float64 {
		return t.model.Eval(x)[0]
	}, t.parallel), nil
}

// RMSE returns the root-mean-square error between preds and targets.
// It returns 0 for empty input and NaN when the lengths differ.
func RMSE(preds, targets []float64) float64 {
	if len(preds) != len(targets) {
		return math.NaN()
	}
	if len(preds) == 0 {
		return 0
	}
	return floats.Distance(preds, targets, 2) / math.Sqrt(float64(len(preds)))
}
