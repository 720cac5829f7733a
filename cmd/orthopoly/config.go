package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tuneinsight/orthopoly/convergence"
	"github.com/tuneinsight/orthopoly/orthogonal"
	"gopkg.in/yaml.v3"
)

// Config is the content of the YAML configuration file.
type Config struct {
	Basis BasisConfig                   `yaml:"basis"`
	Sweep convergence.ParametersLiteral `yaml:"sweep"`
	Log   LogConfig                     `yaml:"log"`
}

// BasisConfig selects the basis built by the basis and eval commands.
type BasisConfig struct {
	Size int `yaml:"size"`
	// Strategy is one of analytic, quadrature or gauss.
	Strategy string `yaml:"strategy"`
	// Samples is the number of quadrature samples, or of Gauss-Legendre nodes.
	Samples int `yaml:"samples"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

func defaultConfig() Config {
	return Config{
		Basis: BasisConfig{
			Size:     5,
			Strategy: "analytic",
			Samples:  1000,
		},
		Sweep: convergence.ParametersLiteral{
			BasisSize:    convergence.DefaultParametersLiteral.BasisSize,
			SampleCounts: append([]int(nil), convergence.DefaultParametersLiteral.SampleCounts...),
			Workers:      convergence.DefaultParametersLiteral.Workers,
		},
		Log: LogConfig{Level: "info"},
	}
}

// loadConfig reads the configuration file at path on top of the default configuration.
// An empty path returns the default configuration.
func loadConfig(path string) (config Config, err error) {

	config = defaultConfig()

	if path == "" {
		return
	}

	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err = dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// InnerProduct returns the inner product selected by the configuration.
func (c BasisConfig) InnerProduct() (orthogonal.InnerProduct, error) {
	switch strings.ToLower(c.Strategy) {
	case "analytic":
		return orthogonal.Analytic{}, nil
	case "quadrature":
		return orthogonal.Quadrature{Samples: c.Samples}, nil
	case "gauss":
		return orthogonal.GaussLegendre{Nodes: c.Samples}, nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q, must be analytic, quadrature or gauss", orthogonal.ErrInvalidArgument, c.Strategy)
	}
}
