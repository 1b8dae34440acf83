package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type templateBinding struct {
	Source   string `toml:"source"`
	Output   string `toml:"output"`
	Language string `toml:"language,omitempty"`
}

type templateManifest struct {
	Compiler  string            `toml:"compiler"`
	OutputDir string            `toml:"output_dir"`
	Language  string            `toml:"language"`
	Timeout   string            `toml:"timeout"`
	Bindings  []templateBinding `toml:"bindings"`
}

// Template renders a starter manifest with one example binding.
func Template() ([]byte, error) {
	def := DefaultManifest()
	out, err := toml.Marshal(templateManifest{
		Compiler:  def.Compiler,
		OutputDir: def.OutputDir,
		Language:  def.Language,
		Timeout:   def.Timeout.String(),
		Bindings: []templateBinding{
			{Source: "schema/messages.bragi", Output: "messages.bragi.go"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render manifest template: %w", err)
	}
	return out, nil
}

func WriteTemplate(path string, overwrite bool) error {
	template, err := Template()
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, template, 0o600)
}
