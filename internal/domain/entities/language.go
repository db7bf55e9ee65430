package entities

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is the active language preference of an onboarding session.
type Language string

const (
	LanguagePrimary   Language = "en"
	LanguageSecondary Language = "es"

	DefaultLanguage = LanguagePrimary
)

var (
	supportedTags = []language.Tag{language.English, language.Spanish}
	matcher       = language.NewMatcher(supportedTags)
)

// ParseLanguage resolves any BCP 47-ish value ("es-MX", "es_419", "EN") to a supported language.
// Unknown or empty values resolve to DefaultLanguage.
func ParseLanguage(value string) Language {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", "-"))
	if value == "" {
		return DefaultLanguage
	}

	tag, err := language.Parse(value)
	if err != nil {
		return DefaultLanguage
	}

	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage
	}

	return languageFromTag(supportedTags[idx])
}

func languageFromTag(tag language.Tag) Language {
	base, _ := tag.Base()
	if base.String() == string(LanguageSecondary) {
		return LanguageSecondary
	}
	return LanguagePrimary
}

// Tag returns the language tag for message printers.
func (l Language) Tag() language.Tag {
	if l == LanguageSecondary {
		return language.Spanish
	}
	return language.English
}

// Toggle returns the other supported language.
func (l Language) Toggle() Language {
	if l == LanguageSecondary {
		return LanguagePrimary
	}
	return LanguageSecondary
}

func (l Language) String() string {
	return string(l)
}
