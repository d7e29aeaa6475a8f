package api

import (
	"campaignmanager/utils"

	"github.com/gofiber/fiber/v2"
)

// clientMessages are the message IDs the browser client renders itself
var clientMessages = []string{
	"auth_required",
	"auth_invalid_credentials",
	"auth_missing_fields",
	"auth_username_taken",
	"auth_logged_out",
	"campaign_not_found",
	"campaign_invalid",
	"campaign_save_failed",
	"campaign_deleted",
	"campaign_duplicated",
	"data_imported",
	"data_import_failed",
	"data_reset",
	"error_404",
	"error_500",
}

// I18nHandler handles i18n-related requests
type I18nHandler struct{}

// GetTranslations returns translations for the client-side JavaScript
func (h *I18nHandler) GetTranslations(c *fiber.Ctx) error {
	lang := c.Params("lang")
	if !utils.IsSupportedLanguage(lang) {
		lang = "en"
	}

	localizer := utils.GetLocalizer(lang)

	translations := make(map[string]string, len(clientMessages))
	for _, id := range clientMessages {
		translations[id] = utils.T(localizer, id)
	}

	return c.JSON(translations)
}
