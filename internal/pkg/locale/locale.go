package locale

import "strings"

// Locale is a display language supported by the storefront.
type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"
)

// Parse maps a language tag ("ar", "ar-EG", "en_US", "") to a supported Locale, defaulting to English.
func Parse(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if strings.HasPrefix(tag, "ar") {
		return Arabic
	}
	return English
}
