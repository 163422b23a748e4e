// Package i18n holds the server-side message catalog and locale negotiation.
// The locale is always passed explicitly; there is no package-level current
// language.
package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Locale is a supported UI language.
type Locale string

const (
	French  Locale = "fr"
	English Locale = "en"
)

// Default is used when nothing else matches.
const Default = French

var (
	supported = []language.Tag{language.French, language.English}
	matcher   = language.NewMatcher(supported)
	builder   = catalog.NewBuilder(catalog.Fallback(language.French))
)

func init() {
	for loc, entries := range messages {
		for key, msg := range entries {
			if err := builder.SetString(loc.Tag(), key, msg); err != nil {
				panic(fmt.Sprintf("i18n: %s %q: %v", loc, key, err))
			}
		}
	}
}

// Tag returns the language tag of a supported locale, French otherwise.
func (l Locale) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.French
}

func fromTag(tag language.Tag) Locale {
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English
	case "fr":
		return French
	}
	return ""
}

// Parse resolves a single language code such as "en", "en-GB" or "fr_FR".
// The second return value is false when the code matches no supported locale.
func Parse(raw string) (Locale, bool) {
	if raw == "" {
		return "", false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return fromTag(supported[idx]), true
}

// Negotiate picks a locale from an Accept-Language header value.
func Negotiate(acceptLanguage string, fallback Locale) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return fromTag(supported[idx])
}

// T returns the message for key in locale, formatted with args by the
// locale's printer, so numbers follow the locale's separators. Missing keys
// fall back to the default locale, then to the key itself.
func T(loc Locale, key string, args ...any) string {
	if _, ok := messages[loc][key]; !ok {
		if _, ok := messages[Default][key]; !ok {
			return key
		}
		loc = Default
	}
	return message.NewPrinter(loc.Tag(), message.Catalog(builder)).Sprintf(key, args...)
}

// List returns a copy of the item list stored under key.
func List(loc Locale, key string) []string {
	items, ok := lists[loc][key]
	if !ok {
		items = lists[Default][key]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// DayAbbrev returns the short day name used by the agenda week strip.
func DayAbbrev(loc Locale, d time.Weekday) string {
	names, ok := dayAbbrevs[loc]
	if !ok {
		names = dayAbbrevs[Default]
	}
	return names[d]
}

var dayAbbrevs = map[Locale][7]string{
	French:  {"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"},
	English: {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}
