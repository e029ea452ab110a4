package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// File is the shape of a --config YAML document: CLI defaults a user can
// pin once instead of repeating flags every run, grounded on the teacher's
// direct gopkg.in/yaml.v3 dependency (used there by
// internal/evaluator/builtins_yaml.go for the language's own yaml builtin;
// here it configures the host CLI itself).
type File struct {
	Debug          bool   `yaml:"debug"`
	PlotBackend    string `yaml:"plot_backend"`
	RecursionDepth int    `yaml:"recursion_depth"`
}

// Load reads and parses a --config YAML file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
