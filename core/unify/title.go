package unify

import (
	"sort"

	"library-compare/core/utils"
)

// UnknownTitle is used when a raw record carries no usable title.
const UnknownTitle = "Unknown Game"

// localeFallbacks is the lookup order for localized titles before falling
// back to any available locale.
var localeFallbacks = []string{"en-US", "en", "*"}

// LocaleMap maps a locale tag ("en-US", "de", "*") to a localized string.
type LocaleMap map[string]string

// Title is either plain text or a locale-keyed map of translations.
type Title struct {
	Text      string
	Localized LocaleMap
}

// PlainTitle returns a non-localized title.
func PlainTitle(s string) Title {
	return Title{Text: s}
}

// LocalizedTitle returns a title backed by a locale map.
func LocalizedTitle(m LocaleMap) Title {
	return Title{Localized: m}
}

// IsLocalized reports whether the title is a locale map.
func (t Title) IsLocalized() bool {
	return t.Localized != nil
}

// Resolve returns the display string for the title, or UnknownTitle if none is available.
func (t Title) Resolve() string {
	if s := t.value(); s != "" {
		return s
	}
	return UnknownTitle
}

func (t Title) value() string {
	if t.IsLocalized() {
		return ResolveLocalizedTitle(t.Localized)
	}
	return t.Text
}

// ResolveLocalizedTitle picks a string from m using the chain
// en-US, en, *, then the lexicographically first locale with a non-empty value.
// It returns "" when m holds no usable value.
func ResolveLocalizedTitle(m LocaleMap) string {
	for _, locale := range localeFallbacks {
		if s := m[locale]; s != "" {
			return s
		}
	}

	locales := make([]string, 0, len(m))
	for locale := range m {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	for _, locale := range locales {
		if s := m[locale]; s != "" {
			return s
		}
	}
	return ""
}

// TitleOf reads the title of a raw record: "name" when set, otherwise "title".
// Either field may hold a plain string or a locale map.
func TitleOf(raw RawGame) Title {
	value := raw["name"]
	if !utils.Truthy(value) {
		value = raw["title"]
	}
	return titleFromValue(value)
}

func titleFromValue(value any) Title {
	switch v := value.(type) {
	case Title:
		return v
	case LocaleMap:
		return LocalizedTitle(v)
	}
	if m, ok := utils.ToMap(value); ok {
		locales := make(LocaleMap, len(m))
		for locale, v := range m {
			if _, nested := utils.ToMap(v); nested {
				continue
			}
			locales[locale] = utils.ToString(v)
		}
		return LocalizedTitle(locales)
	}
	return PlainTitle(utils.ToString(value))
}
