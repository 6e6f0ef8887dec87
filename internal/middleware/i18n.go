// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/retailx/retailx-backend/internal/i18n"
)

// I18nMiddleware picks the response language from ?lang= or the first
// Accept-Language entry, falling back to defaultLang.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang == "" {
			lang = c.GetHeader("Accept-Language")
		}

		c.Set("lang", normalizeLang(lang, defaultLang))
		c.Next()
	}
}

func normalizeLang(header, defaultLang string) string {
	if header == "" {
		return defaultLang
	}

	// Handle cases like "hi-IN,hi;q=0.9,en;q=0.8"
	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	switch strings.ToLower(first) {
	case "hi", "hi-in", "hi_in":
		return "hi"
	case "en", "en-us", "en-gb", "en-in":
		return "en"
	}
	if i18n.IsSupported(first) {
		return first
	}
	return defaultLang
}
