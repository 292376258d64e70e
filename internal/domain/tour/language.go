package tour

import "regexp"

// LanguageAll is the wildcard language meaning "all languages".
const LanguageAll = "*"

// languagePattern matches locale codes such as "en-GB" or "fil-PH".
var languagePattern = regexp.MustCompile(`^[a-z]{2,3}-[A-Z]{2}$`)

// NormalizeLanguage maps an empty language to LanguageAll.
func NormalizeLanguage(lang string) string {
	if lang == "" {
		return LanguageAll
	}
	return lang
}

// IsValidLanguage reports whether lang is the wildcard or a locale code.
func IsValidLanguage(lang string) bool {
	return lang == LanguageAll || languagePattern.MatchString(lang)
}
