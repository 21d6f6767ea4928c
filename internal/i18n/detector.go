package i18n

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"catalog-browser/internal/repository"
)

// Detector picks the active language of a client:
// stored preference, then browser languages, then the bundle fallback.
// Whatever it picks is written back to the store.
type Detector struct {
	bundle  *Bundle
	store   repository.Store
	tags    []language.Tag
	matcher language.Matcher
}

// NewDetector creates a Detector. The fallback language is offered first to
// the matcher so that it wins when nothing matches.
func NewDetector(bundle *Bundle, store repository.Store) *Detector {
	codes := []string{bundle.Fallback()}
	for _, c := range bundle.Supported() {
		if c != bundle.Fallback() {
			codes = append(codes, c)
		}
	}

	tags := make([]language.Tag, len(codes))
	for i, c := range codes {
		tags[i] = language.Make(c)
	}
	return &Detector{
		bundle:  bundle,
		store:   store,
		tags:    tags,
		matcher: language.NewMatcher(tags),
	}
}

// Bundle returns the bundle the detector chooses from.
func (d *Detector) Bundle() *Bundle { return d.bundle }

func preferenceKey(clientKey string) string {
	return "lang:" + clientKey
}

// Detect returns the language for clientKey. browserLangs is an
// Accept-Language header value or a POSIX locale such as "es_ES.UTF-8";
// empty means unset.
func (d *Detector) Detect(ctx context.Context, clientKey, browserLangs string) string {
	key := preferenceKey(clientKey)

	stored, err := d.store.Get(ctx, key)
	switch {
	case err == nil && d.bundle.Supports(stored):
		return stored
	case err == nil:
		log.Debug().Str("stored", stored).Msg("Ignoring unsupported stored language")
	case !repository.IsNotFound(err):
		log.Warn().Err(err).Msg("Failed to read language preference")
	}

	lang := d.match(browserLangs)
	if err := d.store.Set(ctx, key, lang); err != nil {
		log.Warn().Err(err).Str("lang", lang).Msg("Failed to store language preference")
	}
	return lang
}

// Change validates lang and stores it as the client's preference.
func (d *Detector) Change(ctx context.Context, clientKey, lang string) (string, error) {
	code := Normalize(lang)
	if !d.bundle.Supports(code) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	if err := d.store.Set(ctx, preferenceKey(clientKey), code); err != nil {
		return "", fmt.Errorf("storing language preference: %w", err)
	}
	return code, nil
}

// Next returns the supported language after current, wrapping around.
func (d *Detector) Next(current string) string {
	supported := d.bundle.Supported()
	for i, c := range supported {
		if c == current {
			return supported[(i+1)%len(supported)]
		}
	}
	return d.bundle.Fallback()
}

func (d *Detector) match(browserLangs string) string {
	browserLangs = strings.TrimSpace(browserLangs)
	if browserLangs == "" {
		return d.bundle.Fallback()
	}

	var tags []language.Tag
	if isPOSIXLocale(browserLangs) {
		if t, err := language.Parse(Normalize(browserLangs)); err == nil {
			tags = []language.Tag{t}
		}
	} else {
		tags, _, _ = language.ParseAcceptLanguage(browserLangs)
	}
	if len(tags) == 0 {
		return d.bundle.Fallback()
	}

	_, index, confidence := d.matcher.Match(tags...)
	if confidence == language.No {
		return d.bundle.Fallback()
	}
	base, _ := d.tags[index].Base()
	return base.String()
}

func isPOSIXLocale(s string) bool {
	return !strings.ContainsAny(s, ",;") && (strings.Contains(s, "_") || strings.Contains(s, ".") || s == "C" || s == "POSIX")
}

// Normalize reduces a language tag or POSIX locale to its lowercase base
// code: "es_ES.UTF-8" and "es-MX" both become "es". "C" and "POSIX" become "".
func Normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "C" || lang == "POSIX" {
		return ""
	}
	if i := strings.IndexAny(lang, "_-"); i >= 0 {
		lang = lang[:i]
	}
	return strings.ToLower(lang)
}
