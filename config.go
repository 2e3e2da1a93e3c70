package govq

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/govq/block"
	"github.com/hupe1980/govq/imageio"
	"github.com/hupe1980/govq/vq"
)

// Config is the file form of the Compress options.
//
//	shape: 2x2
//	codewords: 64
//	convergence_threshold: 1.0
//	shrink: drop
//	input:
//	  width: 352
//	  height: 288
//	log:
//	  level: info
//	  format: text
type Config struct {
	Shape                    string  `yaml:"shape"`
	Codewords                int     `yaml:"codewords"`
	ConvergenceThreshold     float64 `yaml:"convergence_threshold"`
	MaxRepairIterations      int     `yaml:"max_repair_iterations"`
	MaxConvergenceIterations int     `yaml:"max_convergence_iterations"`
	Shrink                   string  `yaml:"shrink"`
	Overflow                 string  `yaml:"overflow"`
	Workers                  int     `yaml:"workers"`

	Input InputConfig `yaml:"input"`
	Log   LogConfig   `yaml:"log"`
}

// InputConfig is the geometry of headerless inputs.
type InputConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration matching Compress defaults.
func DefaultConfig() Config {
	def := vq.DefaultConfig(DefaultCodewords)
	return Config{
		Shape:                    block.TwoByTwo.String(),
		Codewords:                def.Codewords,
		ConvergenceThreshold:     def.ConvergenceThreshold,
		MaxRepairIterations:      def.MaxRepairIterations,
		MaxConvergenceIterations: def.MaxConvergenceIterations,
		Shrink:                   def.Shrink.String(),
		Overflow:                 def.Overflow.String(),
		Input:                    InputConfig{Width: imageio.DefaultWidth, Height: imageio.DefaultHeight},
		Log:                      LogConfig{Level: "info", Format: "text"},
	}
}

// ParseConfig decodes YAML on top of DefaultConfig. Unknown keys are errors.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("govq: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// Validate checks every field without building options.
func (c Config) Validate() error {
	_, err := c.Options()
	return err
}

// Options converts the configuration into Compress options. Logging is not
// included; see LogConfig.
func (c Config) Options() ([]Option, error) {
	shape, err := block.ParseShape(c.Shape)
	if err != nil {
		return nil, err
	}
	shrink, err := vq.ParseShrinkPolicy(c.Shrink)
	if err != nil {
		return nil, err
	}
	overflow, err := vq.ParseOverflowPolicy(c.Overflow)
	if err != nil {
		return nil, err
	}
	if c.Workers < 0 {
		return nil, ErrInvalidWorkers
	}

	train := vq.Config{
		Codewords:                c.Codewords,
		ConvergenceThreshold:     c.ConvergenceThreshold,
		MaxRepairIterations:      c.MaxRepairIterations,
		MaxConvergenceIterations: c.MaxConvergenceIterations,
		Shrink:                   shrink,
		Overflow:                 overflow,
	}
	if err := train.Validate(); err != nil {
		return nil, err
	}

	return []Option{
		WithShape(shape),
		WithCodewords(c.Codewords),
		WithConvergenceThreshold(c.ConvergenceThreshold),
		WithMaxRepairIterations(c.MaxRepairIterations),
		WithMaxConvergenceIterations(c.MaxConvergenceIterations),
		WithShrinkPolicy(shrink),
		WithOverflowPolicy(overflow),
		WithWorkers(c.Workers),
	}, nil
}
