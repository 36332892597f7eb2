// Package i18n looks up localized message text.
//
// Callers receive a Messages value instead of reaching for a package-level
// bundle, so tests and embedding hosts can swap catalogs freely. Catalogs
// are go-i18n message files named after their language tag
// (messages/es-ES.yaml); "{0}", "{1}", ... are replaced with the positional
// arguments given to Get.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
)

// DefaultLocale is used when a key is missing from the requested locale.
const DefaultLocale = "en_US"

// Messages resolves message keys to text.
type Messages interface {
	Get(key string, args ...any) string
}

//go:embed messages/*.yaml
var embedded embed.FS

// Bundle holds catalogs for one or more locales and resolves keys for one of them.
type Bundle struct {
	bundle    *goi18n.Bundle
	locale    string
	localizer *goi18n.Localizer
}

var _ Messages = (*Bundle)(nil)

// Load reads every <tag>.yaml catalog under dir in fsys.
func Load(fsys fs.FS, dir, locale string) (*Bundle, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("i18n: listing catalogs: %w", err)
	}

	bundle := goi18n.NewBundle(language.Make(languageTag(DefaultLocale)))
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, f); err != nil {
			return nil, fmt.Errorf("i18n: loading %s: %w", f, err)
		}
	}
	return newBundle(bundle, locale), nil
}

func newBundle(bundle *goi18n.Bundle, locale string) *Bundle {
	return &Bundle{
		bundle:    bundle,
		locale:    locale,
		localizer: goi18n.NewLocalizer(bundle, languageTag(locale), languageTag(DefaultLocale)),
	}
}

var (
	defaultBundle *Bundle
	defaultOnce   sync.Once
)

// Default returns the embedded catalogs resolved for DefaultLocale.
func Default() *Bundle {
	defaultOnce.Do(func() {
		b, err := Load(embedded, "messages", DefaultLocale)
		if err != nil {
			panic(err) // embedded catalogs are part of the build
		}
		defaultBundle = b
	})
	return defaultBundle
}

// ForLocale returns the embedded catalogs resolved for locale.
func ForLocale(locale string) *Bundle {
	return Default().WithLocale(locale)
}

// WithLocale returns a Bundle sharing b's catalogs but resolving for locale.
func (b *Bundle) WithLocale(locale string) *Bundle {
	return newBundle(b.bundle, locale)
}

// Locale returns the locale keys are resolved for.
func (b *Bundle) Locale() string { return b.locale }

// Locales returns the locales with a loaded catalog, in engine form (es_ES).
func (b *Bundle) Locales() []string {
	tags := b.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, strings.ReplaceAll(t.String(), "-", "_"))
	}
	return out
}

// Get returns the text for key in the bundle's locale, falling back to
// DefaultLocale. Unknown keys render as "!key!".
func (b *Bundle) Get(key string, args ...any) string {
	// go-i18n reports a default-locale fallback as MessageNotFoundErr with
	// the text filled in; only an undetermined tag means no catalog has key.
	text, tag, _ := b.localizer.LocalizeWithTag(&goi18n.LocalizeConfig{MessageID: key})
	if tag == language.Und {
		return missing(key)
	}
	return format(text, args)
}

// languageTag turns an engine locale (en_US) into a BCP 47 tag (en-US).
func languageTag(locale string) string {
	return strings.ReplaceAll(locale, "_", "-")
}

func missing(key string) string { return "!" + key + "!" }

func format(text string, args []any) string {
	if len(args) == 0 {
		return text
	}
	pairs := make([]string, 0, len(args)*2)
	for i, a := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", fmt.Sprint(a))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Static is a Messages backed by a single in-memory map, mostly for tests.
type Static map[string]string

// Get returns the text for key or "!key!".
func (s Static) Get(key string, args ...any) string {
	text, ok := s[key]
	if !ok {
		return missing(key)
	}
	return format(text, args)
}
