// Package i18n loads the static translation tables and decides which display
// language a client sees.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed locales/*.toml
var localeFiles embed.FS

// ErrUnsupportedLanguage is returned for language codes without a table.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Bundle holds one flattened translation table per language.
type Bundle struct {
	fallback  string
	supported []string
	tables    map[string]map[string]string
}

// NewBundle loads the embedded tables for each supported language.
// fallback must be one of them; it backs keys missing from other tables.
func NewBundle(fallback string, supported []string) (*Bundle, error) {
	if !slices.Contains(supported, fallback) {
		return nil, fmt.Errorf("%w: fallback %q not in %v", ErrUnsupportedLanguage, fallback, supported)
	}

	b := &Bundle{
		fallback:  fallback,
		supported: slices.Clone(supported),
		tables:    make(map[string]map[string]string, len(supported)),
	}
	for _, lang := range supported {
		data, err := localeFiles.ReadFile("locales/" + lang + ".toml")
		if err != nil {
			return nil, fmt.Errorf("%w: no table for %q", ErrUnsupportedLanguage, lang)
		}
		table, err := parseTable(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s table: %w", lang, err)
		}
		b.tables[lang] = table
	}
	return b, nil
}

func parseTable(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	flatten("", raw, out)
	return out, nil
}

// flatten turns nested TOML tables into dotted keys.
func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Fallback returns the configured default language.
func (b *Bundle) Fallback() string { return b.fallback }

// Supported returns the supported language codes in configuration order.
func (b *Bundle) Supported() []string { return slices.Clone(b.supported) }

// Supports reports whether lang has a table.
func (b *Bundle) Supports(lang string) bool {
	_, ok := b.tables[lang]
	return ok
}

// Lookup translates key for lang. Missing keys fall back to the default
// table, then to the key itself.
func (b *Bundle) Lookup(lang, key string) string {
	if v, ok := b.tables[lang][key]; ok {
		return v
	}
	if v, ok := b.tables[b.fallback][key]; ok {
		return v
	}
	return key
}

// Keys returns all keys of the fallback table, sorted.
func (b *Bundle) Keys() []string {
	keys := make([]string, 0, len(b.tables[b.fallback]))
	for k := range b.tables[b.fallback] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Localizer is a Bundle bound to one language.
type Localizer struct {
	bundle *Bundle
	lang   string
}

// For returns a Localizer for lang; unsupported codes use the fallback.
func (b *Bundle) For(lang string) Localizer {
	lang = strings.ToLower(lang)
	if !b.Supports(lang) {
		lang = b.fallback
	}
	return Localizer{bundle: b, lang: lang}
}

// T translates key.
func (l Localizer) T(key string) string { return l.bundle.Lookup(l.lang, key) }

// Lang returns the bound language code.
func (l Localizer) Lang() string { return l.lang }

var (
	embeddedOnce   sync.Once
	embeddedBundle *Bundle

	overrideMu sync.RWMutex
	override   *Bundle
)

// Default returns the process-wide bundle. The embedded bundle (English
// fallback, every shipped table) is built once on first use. SetDefault
// installs a replacement, for configured languages or for tests.
func Default() *Bundle {
	overrideMu.RLock()
	b := override
	overrideMu.RUnlock()
	if b != nil {
		return b
	}

	embeddedOnce.Do(func() {
		eb, err := NewBundle("en", EmbeddedLanguages())
		if err != nil {
			panic(fmt.Sprintf("i18n: embedded tables are broken: %v", err))
		}
		embeddedBundle = eb
	})
	return embeddedBundle
}

// SetDefault installs b as the process-wide bundle and returns the previous
// override (nil when none). SetDefault(nil) restores the embedded bundle.
func SetDefault(b *Bundle) *Bundle {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	prev := override
	override = b
	return prev
}

// EmbeddedLanguages lists the language codes that ship a table, sorted.
func EmbeddedLanguages() []string {
	entries, err := localeFiles.ReadDir("locales")
	if err != nil {
		return nil
	}
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".toml"); ok {
			langs = append(langs, name)
		}
	}
	sort.Strings(langs)
	return langs
}
