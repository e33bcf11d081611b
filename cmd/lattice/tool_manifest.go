package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// toolConfig is the optional lattice.toml next to (or above) the working
// directory. Flags win over the manifest.
type toolConfig struct {
	Output outputConfig `toml:"output"`
}

type outputConfig struct {
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

func findLatticeToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "lattice.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadToolConfig(startDir string) (toolConfig, bool, error) {
	path, ok, err := findLatticeToml(startDir)
	if err != nil || !ok {
		return toolConfig{}, ok, err
	}
	var cfg toolConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return toolConfig{}, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, true, nil
}
