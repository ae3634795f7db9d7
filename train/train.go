// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train runs gradient descent on an MLP and checkpoints the result.
package train

import (
	"log/slog"

	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/born-ml/micrograd/internal/serialization"
	"github.com/born-ml/micrograd/internal/train"
)

// Config describes one training run.
type Config = train.Config

// Trainer runs training iterations.
type Trainer = train.Trainer

// History records per-iteration losses.
type History = train.History

// Errors.
var (
	ErrInvalidConfig = train.ErrInvalidConfig
	ErrDataset       = train.ErrDataset
)

// DefaultConfig returns the classic demo settings.
func DefaultConfig() Config {
	return train.DefaultConfig()
}

// LoadConfig reads a YAML config on top of the defaults.
func LoadConfig(path string) (Config, error) {
	return train.LoadConfig(path)
}

// NewTrainer creates a trainer. A nil logger discards output.
func NewTrainer(model *nn.MLP, optimizer optim.Optimizer, config Config, logger *slog.Logger) *Trainer {
	return train.NewTrainer(model, optimizer, config, logger)
}

// DemoDataset returns the four-sample demo dataset.
func DemoDataset() (xs [][]float64, ys []float64) {
	return train.DemoDataset()
}

// RMSE returns the root-mean-square error between preds and targets.
// It returns 0 for empty input and NaN when the lengths differ.
func RMSE(preds, targets []float64) float64 {
	return train.RMSE(preds, targets)
}

// SaveModel writes model's parameters to path as SafeTensors.
func SaveModel(path string, model *nn.MLP) error {
	return serialization.WriteSafeTensors(path, model.StateDict(), map[string]string{"arch": model.String()})
}

// LoadModel reads parameters written by SaveModel into model.
func LoadModel(path string, model *nn.MLP) error {
	state, _, err := serialization.ReadSafeTensors(path)
	if err != nil {
		return err
	}
	return model.LoadStateDict(state)
}
