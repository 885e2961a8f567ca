package i18n

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Table is a locale-keyed string table implementing harness.Localizer.
//
// Lookups match the requested locale against the table's locales with
// language.Matcher semantics, so a table holding "en" strings serves
// "en-US" and "en-GB" requests. Parameters appear in strings as
// {{name}} placeholders.
type Table struct {
	matcher language.Matcher
	tags    []language.Tag
	locales []string // parallel to tags; original table keys
	strings map[string]map[string]string
}

// NewTable builds a Table from locale -> key -> string data. Locale keys
// must be well-formed BCP 47 tags. Locales are ordered lexically, so the
// matcher's fallback (used when nothing matches) is deterministic.
func NewTable(data map[string]map[string]string) (*Table, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("i18n: table must contain at least one locale")
	}

	locales := make([]string, 0, len(data))
	for locale := range data {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	tags := make([]language.Tag, 0, len(locales))
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("i18n: invalid locale %q: %w", locale, err)
		}
		tags = append(tags, tag)
	}

	return &Table{
		matcher: language.NewMatcher(tags),
		tags:    tags,
		locales: locales,
		strings: data,
	}, nil
}

// Translate resolves key for the given locale. The second return is
// false when the locale cannot be parsed or the matched locale has no
// string for the key.
func (t *Table) Translate(locale, key string, params map[string]string) (string, bool) {
	desired, err := language.Parse(locale)
	if err != nil {
		return "", false
	}

	_, index, _ := t.matcher.Match(desired)
	s, ok := t.strings[t.locales[index]][key]
	if !ok {
		return "", false
	}
	return interpolate(s, params), true
}

func interpolate(s string, params map[string]string) string {
	if len(params) == 0 {
		return s
	}
	pairs := make([]string, 0, 2*len(params))
	for name, value := range params {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
