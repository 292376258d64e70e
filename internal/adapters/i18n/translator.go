// Package i18n resolves language-string keys from YAML catalogues, one flat
// key/value file per language under a directory (configs/lang/en-GB.yaml).
package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen11/guidedtours/internal/domain/tour"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// Compile-time interface check.
var _ ports.Translator = (*Catalogue)(nil)

// Catalogue is an immutable set of translated strings.
type Catalogue struct {
	language string
	strings  map[string]string
}

// Load reads the fallback catalogue and overlays the requested language on
// it, so keys missing from language resolve through fallback. A missing file
// for language is tolerated; a missing fallback file is not.
func Load(dir, language, fallback string) (*Catalogue, error) {
	for _, lang := range []string{language, fallback} {
		if !tour.IsValidLanguage(lang) || lang == tour.LanguageAll {
			return nil, fmt.Errorf("i18n: invalid language %q", lang)
		}
	}

	c := &Catalogue{language: language, strings: make(map[string]string)}
	if err := c.merge(filepath.Join(dir, fallback+".yaml")); err != nil {
		return nil, err
	}
	if language == fallback {
		return c, nil
	}
	if err := c.merge(filepath.Join(dir, language+".yaml")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return c, nil
}

// FromMap builds a catalogue from in-memory strings.
func FromMap(language string, strings map[string]string) *Catalogue {
	c := &Catalogue{language: language, strings: make(map[string]string, len(strings))}
	for k, v := range strings {
		c.strings[k] = v
	}
	return c
}

// Language returns the catalogue's language.
func (c *Catalogue) Language() string { return c.language }

// Translate returns the string for key, or key itself when unknown.
func (c *Catalogue) Translate(key string) string {
	if v, ok := c.strings[key]; ok {
		return v
	}
	return key
}

func (c *Catalogue) merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("i18n: reading %s: %w", path, err)
	}

	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("i18n: parsing %s: %w", path, err)
	}
	for k, v := range entries {
		c.strings[k] = v
	}
	return nil
}
