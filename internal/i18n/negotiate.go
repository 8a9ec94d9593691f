package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "epea_lang"
)

var (
	supported = []domain.Lang{domain.LangES, domain.LangEN}
	matcher   = language.NewMatcher([]language.Tag{language.Spanish, language.English})
)

// Supported returns the display languages in switch order.
func Supported() []domain.Lang {
	return append([]domain.Lang(nil), supported...)
}

// Resolve picks the display language of a request: the lang query
// parameter, then the language cookie, then Accept-Language, then fallback.
// The bool reports whether the choice came from the query parameter and
// should be persisted.
func Resolve(r *http.Request, fallback domain.Lang) (domain.Lang, bool) {
	if r == nil {
		return fallback, false
	}

	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if lang, ok := parse(v); ok {
			return lang, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if lang, ok := parse(cookie.Value); ok {
			return lang, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if _, idx, conf := matcher.Match(tags...); conf != language.No {
				return supported[idx], false
			}
		}
	}

	return fallback, false
}

// parse accepts a bare code or any BCP 47 tag whose base is supported,
// e.g. "en-GB".
func parse(v string) (domain.Lang, bool) {
	if lang, ok := domain.ParseLang(strings.ToLower(v)); ok {
		return lang, true
	}
	tag, err := language.Parse(v)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	return domain.ParseLang(base.String())
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, lang domain.Lang) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// LanguageURL returns path with the lang query parameter set to lang,
// keeping the rest of rawQuery.
func LanguageURL(path, rawQuery string, lang domain.Lang) string {
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, string(lang))
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
