package train

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid training config")

// Config describes one training run.
type Config struct {
	Iterations   int     `yaml:"iterations"`    // Number of full-batch steps (default: 20)
	LearningRate float64 `yaml:"learning_rate"` // Step size (default: 0.05)
	Momentum     float64 `yaml:"momentum"`      // SGD momentum, [0, 1) (default: 0)
	Optimizer    string  `yaml:"optimizer"`     // "sgd" or "adam" (default: "sgd")
	Seed         int64   `yaml:"seed"`          // Parameter initialization seed (default: 1337)
	Layers       []int   `yaml:"layers"`        // Neurons per layer (default: [4, 4, 1])
	Activation   string  `yaml:"activation"`    // "tanh", "relu" or "linear" (default: "tanh")
	LogEvery     int     `yaml:"log_every"`     // Log every N iterations (default: 1)
}

// DefaultConfig returns the settings of the classic micrograd demo.
func DefaultConfig() Config {
	return Config{
		Iterations:   20,
		LearningRate: 0.05,
		Optimizer:    "sgd",
		Seed:         1337,
		Layers:       []int{4, 4, 1},
		Activation:   "tanh",
		LogEvery:     1,
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	switch {
	case c.Iterations <= 0:
		return errors.Wrapf(ErrInvalidConfig, "iterations must be positive, got %d", c.Iterations)
	case c.LearningRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "learning_rate must be positive, got %g", c.LearningRate)
	case c.Momentum < 0 || c.Momentum >= 1:
		return errors.Wrapf(ErrInvalidConfig, "momentum must be in [0, 1), got %g", c.Momentum)
	case c.LogEvery <= 0:
		return errors.Wrapf(ErrInvalidConfig, "log_every must be positive, got %d", c.LogEvery)
	case len(c.Layers) == 0:
		return errors.Wrap(ErrInvalidConfig, "layers must not be empty")
	}
	for i, n := range c.Layers {
		if n <= 0 {
			return errors.Wrapf(ErrInvalidConfig, "layer %d has %d neurons", i, n)
		}
	}
	if _, err := nn.ParseActivation(c.Activation); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	switch strings.ToLower(c.Optimizer) {
	case "sgd", "adam":
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown optimizer %q", c.Optimizer)
	}
	return nil
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates the result.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	//nolint:gosec // G304: config path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decode config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Build creates the model and optimizer described by c for nin inputs.
func (c Config) Build(nin int) (*nn.MLP, optim.Optimizer, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	act, err := nn.ParseActivation(c.Activation)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	model := nn.NewMLP(nin, c.Layers, act, nn.NewRand(c.Seed))

	var opt optim.Optimizer
	switch strings.ToLower(c.Optimizer) {
	case "adam":
		opt = optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: c.LearningRate})
	default:
		opt = optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: c.LearningRate, Momentum: c.Momentum})
	}
	return model, opt, nil
}
