// Package config loads the YAML configuration of the elementwise runtime and converts it
// into the settings of the packages it drives.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/born-ml/elementwise/internal/iter"
	"github.com/born-ml/elementwise/internal/parallel"
	"github.com/born-ml/elementwise/internal/unary"
)

// Config holds the whole runtime configuration.
type Config struct {
	// CPU kernel fan-out
	Parallel parallel.Config `yaml:"parallel"`

	// Checks run before kernels
	Validation ValidationConfig `yaml:"validation"`

	// Device backends registered next to the CPU
	Backends BackendsConfig `yaml:"backends"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ValidationConfig configures the checks applied by the variant adapter.
type ValidationConfig struct {
	CheckMemOverlap         bool `yaml:"check_mem_overlap"`
	MvlgammaDomainCheck     bool `yaml:"mvlgamma_domain_check"`
	MaxExactOverlapElements int  `yaml:"max_exact_overlap_elements"` // beyond it, strided overlap is not resolved
}

// BackendsConfig selects optional device backends.
type BackendsConfig struct {
	WebGPU bool `yaml:"webgpu"`
}

// LoggingConfig configures klog.
type LoggingConfig struct {
	Verbosity int  `yaml:"verbosity"` // klog -v level: 2 registrations, 3 per-call dispatch
	ToStderr  bool `yaml:"to_stderr"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	def := iter.DefaultConfig()
	return &Config{
		Parallel: parallel.DefaultConfig(),
		Validation: ValidationConfig{
			CheckMemOverlap:         def.CheckMemOverlap,
			MvlgammaDomainCheck:     true,
			MaxExactOverlapElements: def.MaxExactOverlapElements,
		},
		Logging: LoggingConfig{ToStderr: true},
	}
}

// Load reads configuration from a YAML file on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			klog.V(2).Infof("config: %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, errors.Wrap(err, "failed to read config")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write config")
	}
	return nil
}

// Marshal returns the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return data, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Parallel.NumWorkers < 1 {
		return errors.Errorf("parallel.num_workers must be at least 1, got %d", c.Parallel.NumWorkers)
	}
	if c.Parallel.MinChunkSize < 1 {
		return errors.Errorf("parallel.min_chunk_size must be at least 1, got %d", c.Parallel.MinChunkSize)
	}
	if c.Validation.MaxExactOverlapElements < 0 {
		return errors.Errorf("validation.max_exact_overlap_elements must not be negative, got %d",
			c.Validation.MaxExactOverlapElements)
	}
	if c.Logging.Verbosity < 0 {
		return errors.Errorf("logging.verbosity must not be negative, got %d", c.Logging.Verbosity)
	}
	return nil
}

// Iter returns the plan-building configuration.
func (c *Config) Iter() iter.Config {
	cfg := iter.DefaultConfig()
	cfg.CheckMemOverlap = c.Validation.CheckMemOverlap
	cfg.MaxExactOverlapElements = c.Validation.MaxExactOverlapElements
	return cfg
}

// Unary returns the op configuration.
func (c *Config) Unary() unary.Config {
	return unary.Config{
		Iter:                c.Iter(),
		MvlgammaDomainCheck: c.Validation.MvlgammaDomainCheck,
	}
}

// ApplyLogging sets klog's verbosity and output from the logging section.
func (c *Config) ApplyLogging() error {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	if err := fs.Set("v", strconv.Itoa(c.Logging.Verbosity)); err != nil {
		return errors.Wrap(err, "failed to set klog verbosity")
	}
	if err := fs.Set("logtostderr", strconv.FormatBool(c.Logging.ToStderr)); err != nil {
		return errors.Wrap(err, "failed to set klog output")
	}
	return nil
}
