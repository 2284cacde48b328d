package config

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"runtime"
)

import (
	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is read by every stage of a run. Values come from Default, then an
// optional YAML file, then GSPAN_* environment variables and finally the
// command line.
type Config struct {
	MinSupport  float64 `yaml:"min-support" envconfig:"MIN_SUPPORT"`
	Directed    bool    `yaml:"directed" envconfig:"DIRECTED"`
	MultiGraph  bool    `yaml:"multigraph" envconfig:"MULTIGRAPH"`
	MaxEdges    int     `yaml:"max-edges" envconfig:"MAX_EDGES"`
	MinEdges    int     `yaml:"min-edges" envconfig:"MIN_EDGES"`
	Likeliness  float64 `yaml:"likeliness" envconfig:"LIKELINESS"`
	Parallelism int     `yaml:"parallelism" envconfig:"PARALLELISM"`
	Partitions  int     `yaml:"partitions" envconfig:"PARTITIONS"`
	CacheSize   int     `yaml:"cache-size" envconfig:"CACHE_SIZE"`
	Output      string  `yaml:"output" envconfig:"OUTPUT"`
	RunId       string  `yaml:"-" ignored:"true"`
}

// ConfigError is an unusable configuration. Runs stop before mining when
// they get one.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bad configuration %v: %v", e.Field, e.Reason)
}

func Default() *Config {
	return &Config{
		MaxEdges:    1000,
		MinEdges:    0,
		Likeliness:  0.05,
		Parallelism: -1,
		Partitions:  1,
		CacheSize:   4096,
		RunId:       uuid.New().String(),
	}
}

// Load overlays the YAML file at path on the defaults.
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, &ConfigError{Field: path, Reason: err.Error()}
	}
	return c, nil
}

// FromEnv overlays the GSPAN_* environment variables that are set.
func (c *Config) FromEnv() error {
	if err := envconfig.Process("GSPAN", c); err != nil {
		return &ConfigError{Field: "environment", Reason: err.Error()}
	}
	return nil
}

func (c *Config) Validate() error {
	if !(c.MinSupport > 0 && c.MinSupport <= 1) {
		return &ConfigError{Field: "min-support", Reason: fmt.Sprintf("%v is not in (0, 1]", c.MinSupport)}
	} else if c.MaxEdges < 0 {
		return &ConfigError{Field: "max-edges", Reason: fmt.Sprintf("%v is negative", c.MaxEdges)}
	} else if c.MinEdges < 0 {
		return &ConfigError{Field: "min-edges", Reason: fmt.Sprintf("%v is negative", c.MinEdges)}
	} else if c.Likeliness < 0 || c.Likeliness > 1 {
		return &ConfigError{Field: "likeliness", Reason: fmt.Sprintf("%v is not in [0, 1]", c.Likeliness)}
	} else if c.Parallelism < -1 {
		return &ConfigError{Field: "parallelism", Reason: fmt.Sprintf("%v is below -1", c.Parallelism)}
	} else if c.Partitions < 1 {
		return &ConfigError{Field: "partitions", Reason: fmt.Sprintf("%v is below 1", c.Partitions)}
	} else if c.CacheSize < 1 {
		return &ConfigError{Field: "cache-size", Reason: fmt.Sprintf("%v is below 1", c.CacheSize)}
	}
	return nil
}

func (c *Config) Copy() *Config {
	d := *c
	return &d
}

func (c *Config) Workers() int {
	if c.Parallelism == 0 {
		return 1
	} else if c.Parallelism == -1 {
		return runtime.NumCPU()
	} else {
		return c.Parallelism
	}
}

func (c *Config) OutputFile(name string) string {
	return filepath.Join(c.Output, name)
}

// RunFile names a file unique to this run.
func (c *Config) RunFile(name string) string {
	return c.OutputFile(c.RunId + "-" + name)
}
