package train_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/optim"
	"github.com/born-ml/micrograd/internal/train"
)

func newTrainer(t *testing.T, cfg train.Config, logger *slog.Logger) *train.Trainer {
	t.Helper()
	model, opt, err := cfg.Build(3)
	require.NoError(t, err)
	return train.NewTrainer(model, opt, cfg, logger)
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := train.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20, cfg.Iterations)
	assert.Equal(t, 0.05, cfg.LearningRate)
	assert.Equal(t, []int{4, 4, 1}, cfg.Layers)
}

func TestConfig_ValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *train.Config)
	}{
		{"iterations", func(c *train.Config) { c.Iterations = 0 }},
		{"learning rate", func(c *train.Config) { c.LearningRate = -1 }},
		{"momentum", func(c *train.Config) { c.Momentum = 1 }},
		{"log every", func(c *train.Config) { c.LogEvery = 0 }},
		{"no layers", func(c *train.Config) { c.Layers = nil }},
		{"empty layer", func(c *train.Config) { c.Layers = []int{4, 0} }},
		{"activation", func(c *train.Config) { c.Activation = "softsign" }},
		{"optimizer", func(c *train.Config) { c.Optimizer = "rmsprop" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := train.DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), train.ErrInvalidConfig)
		})
	}
}

func TestParseConfig_Overlay(t *testing.T) {
	cfg, err := train.ParseConfig([]byte(`
iterations: 50
optimizer: adam
layers: [8, 1]
`))
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Iterations)
	assert.Equal(t, "adam", cfg.Optimizer)
	assert.Equal(t, []int{8, 1}, cfg.Layers)
	assert.Equal(t, 0.05, cfg.LearningRate, "unset keys keep their defaults")
	assert.Equal(t, "tanh", cfg.Activation)
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := train.ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, train.DefaultConfig(), cfg)
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := train.ParseConfig([]byte("iteratons: 5\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = train.ParseConfig([]byte("iterations: -1\n"))
	assert.ErrorIs(t, err, train.ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\nlearning_rate: 0.1\n"), 0o600))

	cfg, err := train.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 0.1, cfg.LearningRate)

	_, err = train.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Build(t *testing.T) {
	cfg := train.DefaultConfig()
	model, opt, err := cfg.Build(3)
	require.NoError(t, err)
	assert.Equal(t, "MLP(3 -> 4 -> 4 -> 1, tanh)", model.String())
	assert.IsType(t, &optim.SGD{}, opt)

	cfg.Optimizer = "Adam"
	_, opt, err = cfg.Build(3)
	require.NoError(t, err)
	assert.IsType(t, &optim.Adam{}, opt)

	cfg.Iterations = 0
	_, _, err = cfg.Build(3)
	assert.ErrorIs(t, err, train.ErrInvalidConfig)
}

func TestTrainer_DemoLossDecreases(t *testing.T) {
	cfg := train.DefaultConfig()
	cfg.Iterations = 100
	tr := newTrainer(t, cfg, nil)

	xs, ys := train.DemoDataset()
	history, err := tr.Run(context.Background(), xs, ys)
	require.NoError(t, err)
	require.Len(t, history.Losses, 100)
	assert.Less(t, history.Final(), history.Losses[0])

	preds, err := tr.Predict(xs)
	require.NoError(t, err)
	assert.Len(t, preds, len(ys))
	for _, p := range preds {
		assert.LessOrEqual(t, math.Abs(p), 1.0)
	}
}

func TestTrainer_Deterministic(t *testing.T) {
	cfg := train.DefaultConfig()
	xs, ys := train.DemoDataset()

	h1, err := newTrainer(t, cfg, nil).Run(context.Background(), xs, ys)
	require.NoError(t, err)
	h2, err := newTrainer(t, cfg, nil).Run(context.Background(), xs, ys)
	require.NoError(t, err)

	assert.Equal(t, h1.Losses, h2.Losses)
}

// The loss reported by Step is the loss of the parameters before the update.
func TestTrainer_StepReportsPreUpdateLoss(t *testing.T) {
	tr := newTrainer(t, train.DefaultConfig(), nil)
	xs, ys := train.DemoDataset()

	preds, err := tr.Predict(xs)
	require.NoError(t, err)
	want := 0.0
	for i, p := range preds {
		want += (p - ys[i]) * (p - ys[i])
	}

	got, err := tr.Step(xs, ys)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-12)

	after, err := tr.Predict(xs)
	require.NoError(t, err)
	assert.NotEqual(t, preds, after)
}

func TestTrainer_PredictLargeBatch(t *testing.T) {
	tr := newTrainer(t, train.DefaultConfig(), nil)

	xs := make([][]float64, 500)
	for i := range xs {
		f := float64(i) / 100
		xs[i] = []float64{f, -f, 0.5 * f}
	}

	preds, err := tr.Predict(xs)
	require.NoError(t, err)
	require.Len(t, preds, len(xs))
	for i, x := range xs {
		assert.Equal(t, tr.Model().Eval(x)[0], preds[i], "sample %d", i)
	}
}

func TestTrainer_Cancelled(t *testing.T) {
	tr := newTrainer(t, train.DefaultConfig(), nil)
	xs, ys := train.DemoDataset()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	history, err := tr.Run(ctx, xs, ys)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, history.Losses)
	assert.True(t, math.IsNaN(history.Final()))
}

func TestTrainer_DatasetErrors(t *testing.T) {
	tr := newTrainer(t, train.DefaultConfig(), nil)

	_, err := tr.Run(context.Background(), nil, nil)
	assert.ErrorIs(t, err, train.ErrDataset)

	_, err = tr.Run(context.Background(), [][]float64{{1, 2, 3}}, []float64{1, 2})
	assert.ErrorIs(t, err, train.ErrDataset)

	_, err = tr.Step([][]float64{{1, 2}}, []float64{1})
	assert.ErrorIs(t, err, train.ErrDataset)

	_, err = tr.Predict([][]float64{{1}})
	assert.ErrorIs(t, err, train.ErrDataset)
}

func TestTrainer_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	cfg := train.DefaultConfig()
	cfg.Iterations = 5
	cfg.LogEvery = 2
	tr := newTrainer(t, cfg, logger)

	xs, ys := train.DemoDataset()
	history, err := tr.Run(context.Background(), xs, ys)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // iterations 0, 2, 4

	var entry struct {
		Msg       string  `json:"msg"`
		Iteration int     `json:"iteration"`
		Loss      float64 `json:"loss"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "train step", entry.Msg)
	assert.Equal(t, 2, entry.Iteration)
	assert.Equal(t, history.Losses[2], entry.Loss)
}

func TestRMSE(t *testing.T) {
	assert.InDelta(t, 1.0, train.RMSE([]float64{1, -1}, []float64{0, 0}), 1e-12)
	assert.InDelta(t, 0.0, train.RMSE([]float64{0.5}, []float64{0.5}), 1e-12)
	assert.Equal(t, 0.0, train.RMSE(nil, nil))

	assert.NotPanics(t, func() {
		assert.True(t, math.IsNaN(train.RMSE([]float64{1, 2}, []float64{1})))
		assert.True(t, math.IsNaN(train.RMSE(nil, []float64{1})))
	})
}
