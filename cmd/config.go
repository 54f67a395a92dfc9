package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// configFileName is the default project configuration file.
const configFileName = ".stubgen.yaml"

// Config represents the structure of a .stubgen.yaml configuration file.
type Config struct {
	RootNamespace string       `yaml:"rootNamespace,omitempty"` // stripped from qualified names, e.g. "cv"
	Sources       []string     `yaml:"sources,omitempty"`       // dump files, directories or glob patterns
	Exclude       []string     `yaml:"exclude,omitempty"`       // dump base-name patterns to skip
	Output        string       `yaml:"output,omitempty"`        // stub output file; empty or "-" means stdout
	Parser        ParserConfig `yaml:"parser,omitempty"`
}

// ParserConfig holds the feature flags forwarded to the header parser.
type ParserConfig struct {
	UnifiedVariants bool `yaml:"unifiedVariants"`
	DeviceVariants  bool `yaml:"deviceVariants"`
}

func defaultConfig() *Config {
	return &Config{RootNamespace: "cv"}
}

// loadConfig reads a project configuration file. A missing file is not an
// error: the defaults apply. A present-but-empty rootNamespace disables the
// root strip.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return config, nil
}
