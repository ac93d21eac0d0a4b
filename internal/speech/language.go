package speech

import "strings"

// DefaultLanguageCode is the locale used when the client doesn't specify
// a language or sends one we don't recognize.
const DefaultLanguageCode = "en-US"

// LanguageCode maps the human-readable language names the frontend sends
// to Google Cloud locale codes. Tanglish is romanized Tamil, which the
// cloud models handle best as English.
func LanguageCode(language string) string {
	switch strings.ToLower(language) {
	case "tamil", "ta":
		return "ta-IN"
	case "hindi", "hi":
		return "hi-IN"
	case "tanglish", "en":
		return DefaultLanguageCode
	default:
		return DefaultLanguageCode
	}
}
