package config

import (
	"path/filepath"

	"github.com/danmuck/bragi/internal/compiler"
)

// Requests turns every binding into a compiler request. Outputs land
// under OutputDir unless they are absolute; per-binding language settings
// override the manifest's.
func (m Manifest) Requests() []compiler.Request {
	reqs := make([]compiler.Request, 0, len(m.Bindings))
	for _, b := range m.Bindings {
		lang, args := m.Language, m.LanguageArgs
		if b.Language != "" {
			lang, args = b.Language, b.LanguageArgs
		}
		output := b.Output
		if !filepath.IsAbs(output) && m.OutputDir != "" {
			output = filepath.Join(m.OutputDir, output)
		}
		reqs = append(reqs, compiler.Request{
			Compiler:     m.Compiler,
			Sources:      append([]string(nil), b.Sources...),
			Output:       output,
			Language:     lang,
			LanguageArgs: args,
			Dir:          m.Root,
		})
	}
	return reqs
}
