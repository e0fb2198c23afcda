package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "lang"
)

var supported = []language.Tag{language.English, language.Indonesian}

var matcher = language.NewMatcher(supported)

//go:embed locales/*.yaml
var localesFS embed.FS

var keys = map[string]struct{}{}

func init() {
	if err := load(localesFS); err != nil {
		panic(err)
	}
}

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

func load(fsys fs.FS) error {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no locale catalogs found")
	}

	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}

		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		if file.Locale == "" {
			file.Locale = strings.TrimSuffix(path.Base(p), ".yaml")
		}

		tag, err := language.Parse(file.Locale)
		if err != nil {
			return fmt.Errorf("locale %s in %s: %w", file.Locale, p, err)
		}
		for key, msg := range file.Messages {
			if err := message.SetString(tag, key, msg); err != nil {
				return fmt.Errorf("register %s/%s: %w", file.Locale, key, err)
			}
			keys[key] = struct{}{}
		}
	}
	return nil
}

// Default returns the fallback language.
func Default() language.Tag {
	return language.English
}

// Supported returns the languages with a message catalog.
func Supported() []language.Tag {
	return supported
}

// Has reports whether key is present in the catalogs.
func Has(key string) bool {
	_, ok := keys[key]
	return ok
}

// ParseTag matches value against the supported languages.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return Default(), false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default(), false
	}
	return supported[idx], true
}

// ResolveTag picks the request language from the lang query parameter,
// then the lang cookie, then Accept-Language. The bool reports whether the
// query parameter should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}

	if v := r.URL.Query().Get(LangParam); v != "" {
		if tag, ok := ParseTag(v); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return supported[idx], false
			}
		}
	}

	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Translator returns a lookup function bound to tag, suitable for templates.
func Translator(tag language.Tag) func(key string, args ...any) string {
	p := message.NewPrinter(tag)
	return func(key string, args ...any) string {
		return p.Sprintf(key, args...)
	}
}
