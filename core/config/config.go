package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gtechsltn/csharp-to-js/core/logger"
	"github.com/gtechsltn/csharp-to-js/core/naming"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// FileNames are searched, in order, in the working directory.
var FileNames = []string{"tojs.yaml", "tojs.yml"}

type Config struct {
	// Schema is the YAML type schema to generate from.
	Schema string `yaml:"schema"`
	// Output is the directory generated classes are written to.
	Output string `yaml:"output"`
	// RootNamespace is trimmed from namespaces before they become directories.
	RootNamespace      string     `yaml:"root_namespace"`
	IncludedNamespaces []string   `yaml:"included_namespaces"`
	ExcludedNamespaces []string   `yaml:"excluded_namespaces"`
	NameStyle          string     `yaml:"name_style"`
	Serializer         Serializer `yaml:"serializer"`

	// Dir is the directory the config was loaded from; relative paths resolve against it.
	Dir string `yaml:"-"`
}

type Serializer struct {
	KeyStyle string `yaml:"key_style"`
	OmitNil  bool   `yaml:"omit_nil"`
}

func Default() *Config {
	return &Config{
		Schema:    "types.yaml",
		Output:    "js",
		NameStyle: naming.StyleCamel,
		Serializer: Serializer{
			KeyStyle: naming.StyleCamel,
		},
	}
}

// Load reads the first config file found in the working directory, falling
// back to Default when there is none.
func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working dir: %w", err)
	}
	return LoadFromDir(wd)
}

func LoadFromDir(dir string) (*Config, error) {
	var filePath string
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			filePath = p
			break
		}
	}

	if filePath == "" {
		logger.Debug("No config file found, using default config")
		cfg := Default()
		cfg.Dir = dir
		return cfg, nil
	}

	return LoadFile(filePath)
}

func LoadFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", filePath, err)
	}
	cfg.Dir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Config file found: %s", filePath)
	logger.Debug("Config: %+v", *cfg)

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("%w: output must not be empty", ErrInvalidConfig)
	}
	if _, err := naming.ForStyle(c.NameStyle); err != nil {
		return fmt.Errorf("%w: name_style: %v", ErrInvalidConfig, err)
	}
	if _, err := naming.ForStyle(c.Serializer.KeyStyle); err != nil {
		return fmt.Errorf("%w: serializer.key_style: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SchemaPath returns the schema location resolved against Dir.
func (c *Config) SchemaPath() string {
	return c.resolve(c.Schema)
}

// OutputDir returns the output directory resolved against Dir.
func (c *Config) OutputDir() string {
	return c.resolve(c.Output)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}
