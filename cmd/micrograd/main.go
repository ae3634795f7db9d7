// Package main provides the micrograd CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/serialization"
	"github.com/born-ml/micrograd/internal/train"
)

const version = "v0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 0
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "micrograd %s\n", version)
		return 0
	case "train":
		if err := runTrain(ctx, args[1:], stdout, stderr); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return 0
			}
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "micrograd - scalar autodiff and a tiny MLP trainer")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  train      Train an MLP on the demo dataset (train -h for flags)")
}

func runTrain(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML config file")
	iterations := fs.Int("iterations", 0, "number of iterations (overrides config)")
	lr := fs.Float64("lr", 0, "learning rate (overrides config)")
	seed := fs.Int64("seed", 0, "initialization seed (overrides config)")
	optimizer := fs.String("optimizer", "", "sgd or adam (overrides config)")
	savePath := fs.String("save", "", "write trained parameters to this SafeTensors file")
	logFormat := fs.String("log-format", "text", "log format: text or json")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := train.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = train.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "iterations":
			cfg.Iterations = *iterations
		case "lr":
			cfg.LearningRate = *lr
		case "seed":
			cfg.Seed = *seed
		case "optimizer":
			cfg.Optimizer = *optimizer
		}
	})

	logger, err := newLogger(*logFormat, stderr)
	if err != nil {
		return err
	}

	xs, ys := train.DemoDataset()
	model, opt, err := cfg.Build(len(xs[0]))
	if err != nil {
		return err
	}
	trainer := train.NewTrainer(model, opt, cfg, logger)

	before, err := trainer.Predict(xs)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Model: %s\n", model)
	fmt.Fprintf(stdout, "Desired outcomes: %v\n", ys)
	fmt.Fprintf(stdout, "Result without training: %.4f\n", before)

	history, err := trainer.Run(ctx, xs, ys)
	if err != nil {
		return err
	}

	after, err := trainer.Predict(xs)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Result after training: %.4f\n", after)
	fmt.Fprintf(stdout, "Final loss: %.6f (RMSE %.4f)\n", history.Final(), train.RMSE(after, ys))

	if *savePath != "" {
		meta := map[string]string{"arch": model.String(), "version": version}
		if err := serialization.WriteSafeTensors(*savePath, model.StateDict(), meta); err != nil {
			return errors.Wrapf(err, "save %s", *savePath)
		}
		logger.Info("saved model", slog.String("path", *savePath))
	}
	return nil
}

func newLogger(format string, w io.Writer) (*slog.Logger, error) {
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, nil)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, nil)), nil
	default:
		return nil, errors.Errorf("unknown log format %q", format)
	}
}
