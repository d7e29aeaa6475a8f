package middleware

import (
	"strings"

	"campaignmanager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// LocaleMiddleware picks the response language from the lang query
// parameter, the lang cookie or Accept-Language, defaulting to English
func LocaleMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Try the lang query parameter
		lang := c.Query("lang")

		// 2. Then the lang cookie
		if lang == "" {
			lang = c.Cookies("lang")
		}

		// 3. Then the Accept-Language header
		if lang == "" {
			if strings.HasPrefix(c.Get(fiber.HeaderAcceptLanguage), "ja") {
				lang = "ja"
			}
		}

		// Only allow supported languages
		if !utils.IsSupportedLanguage(lang) {
			lang = "en"
		}

		// Store in context
		c.Locals("localizer", utils.GetLocalizer(lang))
		c.Locals("lang", lang)

		return c.Next()
	}
}

// Localizer returns the request localizer, falling back to English
func Localizer(c *fiber.Ctx) *i18n.Localizer {
	if l, ok := c.Locals("localizer").(*i18n.Localizer); ok {
		return l
	}
	return utils.GetLocalizer("en")
}
