package game

import (
	"log"
	"strings"

	"codeberg.org/tslocum/gotext"
	"golang.org/x/text/language"
)

const localeDomain = "pips"

// loadLocale configures translations from dir. The system locale is used
// when locale is empty.
func loadLocale(dir string, locale string) {
	if locale == "" {
		var err error
		locale, err = GetLocale()
		if err != nil {
			log.Printf("*** Warning: %s", err)
		}
	}
	tag := parseLocale(locale)
	if Debug > 0 {
		log.Printf("*** Locale: %s", tag)
	}
	if dir == "" {
		return
	}
	gotext.Configure(dir, strings.ReplaceAll(tag.String(), "-", "_"), localeDomain)
}

// parseLocale parses a POSIX or BCP 47 locale name such as en_US.UTF-8.
func parseLocale(locale string) language.Tag {
	locale, _, _ = strings.Cut(locale, ".")
	locale, _, _ = strings.Cut(locale, "@")
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.AmericanEnglish
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}
