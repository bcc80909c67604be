// Package i18n looks up translated strings by dotted key.
//
// Catalogs are YAML documents, one per language, named <lang>.yaml.
// Nested maps become dotted keys and list items are addressed by index,
// so
//
//	presentation:
//	  mainTitle: T-Rek Components
//	  typewriter: [first, second]
//
// defines presentation.mainTitle, presentation.typewriter.0 and
// presentation.typewriter.1. The en and es catalogs are built in; a
// directory of catalogs can add languages or override keys.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/henri123lemoine/trek/internal/reactive"
)

// DefaultLanguage is used when a key is missing from the active language.
const DefaultLanguage = "en"

// ErrUnknownLanguage is returned by SetLanguage for a language with no
// catalog.
var ErrUnknownLanguage = errors.New("unknown language")

//go:embed locales/*.yaml
var builtin embed.FS

type catalog map[string]string

// Translator resolves keys against the active language.
type Translator struct {
	mu       sync.RWMutex
	catalogs map[string]catalog
	lang     *reactive.Signal[string]
}

// New creates a Translator with the built-in catalogs plus any found in
// dir, which may be empty. lang must name a loaded catalog.
func New(lang, dir string) (*Translator, error) {
	t := &Translator{catalogs: make(map[string]catalog)}

	if err := t.loadFS(builtin, "locales"); err != nil {
		return nil, fmt.Errorf("loading built-in catalogs: %w", err)
	}
	if dir != "" {
		if err := t.loadFS(os.DirFS(dir), "."); err != nil {
			return nil, fmt.Errorf("loading catalogs from %s: %w", dir, err)
		}
	}

	if lang == "" {
		lang = DefaultLanguage
	}
	if _, ok := t.catalogs[lang]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	t.lang = reactive.NewComparableSignal(lang)
	return t, nil
}

func (t *Translator) loadFS(fsys fs.FS, dir string) error {
	paths, err := fs.Glob(fsys, filepath.ToSlash(filepath.Join(dir, "*.yaml")))
	if err != nil {
		return err
	}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		lang := strings.TrimSuffix(filepath.Base(path), ".yaml")
		if err := t.Load(lang, data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// Load merges a YAML catalog into lang, overriding existing keys.
func (t *Translator) Load(lang string, data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}

	entries := make(catalog)
	flatten("", doc, entries)

	t.mu.Lock()
	c, ok := t.catalogs[lang]
	if !ok {
		c = make(catalog)
		t.catalogs[lang] = c
	}
	maps.Copy(c, entries)
	t.mu.Unlock()
	return nil
}

func flatten(prefix string, v any, out catalog) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}

	switch v := v.(type) {
	case map[string]any:
		for k, child := range v {
			flatten(join(k), child, out)
		}
	case []any:
		for i, child := range v {
			flatten(join(strconv.Itoa(i)), child, out)
		}
	case nil:
	default:
		out[prefix] = fmt.Sprint(v)
	}
}

// Language returns the active language.
func (t *Translator) Language() string {
	return t.lang.Get()
}

// Languages returns the loaded languages, sorted.
func (t *Translator) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.catalogs))
}

// SetLanguage switches the active language.
func (t *Translator) SetLanguage(lang string) error {
	t.mu.RLock()
	_, ok := t.catalogs[lang]
	t.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	t.lang.Set(lang)
	return nil
}

// Translate returns key in the active language, falling back to
// DefaultLanguage and then to the key itself.
func (t *Translator) Translate(key string) string {
	return t.lookup(t.lang.Get(), key)
}

// List returns the items key.0, key.1, ... in the active language.
func (t *Translator) List(key string) []string {
	lang := t.lang.Get()
	var out []string
	for i := 0; ; i++ {
		k := key + "." + strconv.Itoa(i)
		if !t.has(lang, k) && !t.has(DefaultLanguage, k) {
			return out
		}
		out = append(out, t.lookup(lang, k))
	}
}

// SelectTranslate returns a signal holding the translation of key, updated
// whenever the language changes, and a function that detaches it.
func (t *Translator) SelectTranslate(key string) (*reactive.Signal[string], func()) {
	return reactive.Derive(t.lang, func(lang string) string {
		return t.lookup(lang, key)
	})
}

// Subscribe calls fn with the active language now and on every change.
func (t *Translator) Subscribe(fn func(string)) func() {
	return t.lang.Subscribe(fn)
}

func (t *Translator) has(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.catalogs[lang][key]
	return ok
}

func (t *Translator) lookup(lang, key string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if s, ok := t.catalogs[lang][key]; ok {
		return s
	}
	if s, ok := t.catalogs[DefaultLanguage][key]; ok {
		return s
	}
	return key
}
