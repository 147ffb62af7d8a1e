package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/besynth/harmonium"
)

// LoadRequest reads a generation request from a YAML file, layered over the
// harmonium defaults so partial files only override what they mention. An
// empty path returns the defaults.
func LoadRequest(path string) (harmonium.Request, error) {
	req := harmonium.DefaultRequest()
	if path == "" {
		return req, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("could not read request file: %w", err)
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("could not parse request file %v: %w", path, err)
	}
	return req, nil
}
