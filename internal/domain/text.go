package domain

// Lang is a display language. Spanish is the data owner's language and the
// fallback for every localized string.
type Lang string

const (
	LangES Lang = "es"
	LangEN Lang = "en"
)

// ParseLang returns the language for a code, or false when unsupported.
func ParseLang(s string) (Lang, bool) {
	switch Lang(s) {
	case LangES, LangEN:
		return Lang(s), true
	default:
		return "", false
	}
}

// Text is a string with an optional English variant.
type Text struct {
	ES string
	EN string
}

// In returns the text for lang, falling back to Spanish when no English
// variant exists.
func (t Text) In(lang Lang) string {
	if lang == LangEN && t.EN != "" {
		return t.EN
	}
	return t.ES
}
