package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	DefaultManifestName = "bragi.toml"
	DefaultCompiler     = "bragi"
	DefaultOutputDir    = "gen"
	DefaultLanguage     = "go"
	DefaultTimeout      = 30 * time.Second
)

// Languages accepted by the compiler's language subcommand.
var Languages = []string{"cpp", "go", "rust", "wireshark"}

// Manifest lists the schema sources of a project and where their
// bindings are generated.
type Manifest struct {
	// Root is the directory holding the manifest; relative paths resolve
	// against it.
	Root         string
	Compiler     string
	OutputDir    string
	Language     string
	LanguageArgs []string
	Timeout      time.Duration
	Bindings     []Binding
}

type Binding struct {
	Sources      []string
	Output       string
	Language     string
	LanguageArgs []string
}

type fileBinding struct {
	Source       string   `toml:"source"`
	Sources      []string `toml:"sources"`
	Output       string   `toml:"output"`
	Language     string   `toml:"language"`
	LanguageArgs []string `toml:"language_args"`
}

type fileManifest struct {
	Compiler     string        `toml:"compiler"`
	OutputDir    string        `toml:"output_dir"`
	Language     string        `toml:"language"`
	LanguageArgs []string      `toml:"language_args"`
	Timeout      string        `toml:"timeout"`
	Bindings     []fileBinding `toml:"bindings"`
}

func DefaultManifest() Manifest {
	return Manifest{
		Root:      ".",
		Compiler:  DefaultCompiler,
		OutputDir: DefaultOutputDir,
		Language:  DefaultLanguage,
		Timeout:   DefaultTimeout,
	}
}

// LoadManifest reads a bragi.toml file, applies defaults for keys it does
// not set, and validates the result. Unknown keys are rejected.
func LoadManifest(path string) (Manifest, error) {
	cfg := DefaultManifest()
	cfg.Root = filepath.Dir(path)

	var raw fileManifest
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Manifest{}, errors.Wrapf(err, "load manifest %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Manifest{}, fmt.Errorf("manifest %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("compiler") {
		cfg.Compiler = strings.TrimSpace(raw.Compiler)
	}
	if meta.IsDefined("output_dir") {
		cfg.OutputDir = strings.TrimSpace(raw.OutputDir)
	}
	if meta.IsDefined("language") {
		cfg.Language = normalizeLanguage(raw.Language)
	}
	if meta.IsDefined("language_args") {
		cfg.LanguageArgs = raw.LanguageArgs
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return Manifest{}, errors.Wrap(err, "parse timeout")
		}
		cfg.Timeout = d
	}

	for _, b := range raw.Bindings {
		sources := b.Sources
		if s := strings.TrimSpace(b.Source); s != "" {
			sources = append([]string{s}, sources...)
		}
		cfg.Bindings = append(cfg.Bindings, Binding{
			Sources:      sources,
			Output:       strings.TrimSpace(b.Output),
			Language:     normalizeLanguage(b.Language),
			LanguageArgs: b.LanguageArgs,
		})
	}

	if err := ValidateManifest(cfg); err != nil {
		return Manifest{}, errors.Wrapf(err, "manifest %s", path)
	}
	return cfg, nil
}

func normalizeLanguage(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func knownLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

func ValidateManifest(cfg Manifest) error {
	if strings.TrimSpace(cfg.Compiler) == "" {
		return fmt.Errorf("manifest missing compiler")
	}
	if !knownLanguage(cfg.Language) {
		return fmt.Errorf("manifest language %q not one of %s", cfg.Language, strings.Join(Languages, ", "))
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("manifest timeout must be positive, got %s", cfg.Timeout)
	}
	outputs := make(map[string]int, len(cfg.Bindings))
	for i, b := range cfg.Bindings {
		if err := ValidateBinding(b); err != nil {
			return fmt.Errorf("bindings[%d] invalid: %w", i, err)
		}
		if prev, ok := outputs[b.Output]; ok {
			return fmt.Errorf("bindings[%d] output %q already produced by bindings[%d]", i, b.Output, prev)
		}
		outputs[b.Output] = i
	}
	return nil
}

func ValidateBinding(b Binding) error {
	if len(b.Sources) == 0 {
		return fmt.Errorf("source is required")
	}
	for _, s := range b.Sources {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("empty source path")
		}
	}
	if strings.TrimSpace(b.Output) == "" {
		return fmt.Errorf("output is required")
	}
	if b.Language != "" && !knownLanguage(b.Language) {
		return fmt.Errorf("language %q not one of %s", b.Language, strings.Join(Languages, ", "))
	}
	return nil
}
