// Package locale resolves the UI language and holds the localized labels of
// the catalog page. Content values coming from the CMS are never translated.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Supported UI languages; the first one is the default.
var Supported = []string{"hu", "en", "de"}

var matcher = language.NewMatcher([]language.Tag{
	language.Hungarian,
	language.English,
	language.German,
})

// Resolve picks the UI language from an explicit override (e.g. ?lang=)
// and the Accept-Language header.
func Resolve(override, acceptLanguage string) string {
	override = strings.ToLower(strings.TrimSpace(override))
	for _, l := range Supported {
		if override == l {
			return l
		}
	}
	_, i := language.MatchStrings(matcher, acceptLanguage)
	if i < 0 || i >= len(Supported) {
		return Supported[0]
	}
	return Supported[i]
}

var labels = map[string]map[string]string{
	"hu": {
		"preset.short": "Rövid (≤10 perc)",
		"preset.easy":  "Könnyű",
		"preset.mid":   "Közepes",
		"preset.hard":  "Nehéz",
		"preset.video": "Videós",
		"filter.all":   "Összes",
		"filter.clear": "Szűrők törlése",
		"empty":        "Nincs találat.",
	},
	"en": {
		"preset.short": "Short (≤10 min)",
		"preset.easy":  "Easy",
		"preset.mid":   "Medium",
		"preset.hard":  "Hard",
		"preset.video": "With video",
		"filter.all":   "All",
		"filter.clear": "Clear filters",
		"empty":        "No results.",
	},
	"de": {
		"preset.short": "Kurz (≤10 Min.)",
		"preset.easy":  "Leicht",
		"preset.mid":   "Mittel",
		"preset.hard":  "Schwer",
		"preset.video": "Mit Video",
		"filter.all":   "Alle",
		"filter.clear": "Filter zurücksetzen",
		"empty":        "Keine Ergebnisse.",
	},
}

// T returns the label for key in lang, falling back to the default
// language and finally to the key itself.
func T(lang, key string) string {
	if m, ok := labels[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := labels[Supported[0]][key]; ok {
		return v
	}
	return key
}
