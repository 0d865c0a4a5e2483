package money

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale describes how amounts are written for a display language.
type Locale struct {
	Tag               language.Tag
	GroupSeparator    string
	DecimalSeparator  string
	MaxFractionDigits int32
}

var (
	LocaleBolivia = Locale{
		Tag:               language.MustParse("es-BO"),
		GroupSeparator:    ".",
		DecimalSeparator:  ",",
		MaxFractionDigits: 2,
	}
	LocaleSpanish = Locale{
		Tag:               language.Spanish,
		GroupSeparator:    ".",
		DecimalSeparator:  ",",
		MaxFractionDigits: 2,
	}
	LocaleUS = Locale{
		Tag:               language.AmericanEnglish,
		GroupSeparator:    ",",
		DecimalSeparator:  ".",
		MaxFractionDigits: 2,
	}
)

// supported is ordered so that index 0 is the fallback.
var supported = []Locale{LocaleBolivia, LocaleSpanish, LocaleUS}

var matcher = language.NewMatcher(supportedTags())

func supportedTags() []language.Tag {
	tags := make([]language.Tag, 0, len(supported))
	for _, loc := range supported {
		tags = append(tags, loc.Tag)
	}
	return tags
}

// LocaleFor resolves a BCP 47 tag to the closest supported locale. Unknown or
// malformed tags resolve to es-BO.
func LocaleFor(tag string) Locale {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return LocaleBolivia
	}
	_, idx, conf := matcher.Match(parsed)
	if conf == language.No || idx < 0 || idx >= len(supported) {
		return LocaleBolivia
	}
	return supported[idx]
}
