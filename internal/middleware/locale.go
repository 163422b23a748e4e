package middleware

import (
	"github.com/gin-gonic/gin"

	"myhealth-server/internal/i18n"
)

const (
	localeKey = "locale"

	// LangCookie and LangQuery select the UI language explicitly.
	LangCookie = "lang"
	LangQuery  = "lang"
)

// LocaleMiddleware resolves the request locale from the lang cookie, the
// lang query parameter, then Accept-Language, falling back to fallback.
func LocaleMiddleware(fallback i18n.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(localeKey, resolveLocale(c, fallback))
		c.Next()
	}
}

func resolveLocale(c *gin.Context, fallback i18n.Locale) i18n.Locale {
	if raw, err := c.Cookie(LangCookie); err == nil {
		if loc, ok := i18n.Parse(raw); ok {
			return loc
		}
	}
	if loc, ok := i18n.Parse(c.Query(LangQuery)); ok {
		return loc
	}
	return i18n.Negotiate(c.GetHeader("Accept-Language"), fallback)
}

// GetLocale returns the locale set by LocaleMiddleware, or i18n.Default.
func GetLocale(c *gin.Context) i18n.Locale {
	if v, ok := c.Get(localeKey); ok {
		if loc, ok := v.(i18n.Locale); ok {
			return loc
		}
	}
	return i18n.Default
}
