package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/phytolife/go-phyto-backend/internal/i18n"
)

// ctxKeyLang stores the negotiated response language tag.
const ctxKeyLang = "lang"

// Locale negotiates the response language from the Accept-Language header.
// Content is always returned in all languages; the negotiated tag only
// selects the language of human-readable error messages.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxKeyLang, i18n.Match(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// LangFrom returns the negotiated language, defaulting to English when
// Locale() has not run.
func LangFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyLang); ok {
		if lang, ok := v.(string); ok && lang != "" {
			return lang
		}
	}
	return i18n.Default
}
