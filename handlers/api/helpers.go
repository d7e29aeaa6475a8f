package api

import (
	"errors"
	"strconv"

	"campaignmanager/middleware"
	"campaignmanager/utils"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error as {"error": message}, localizing
// AppError messages for the request language
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := utils.StatusOf(err)
	message := err.Error()

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		if appErr.MessageID != "" {
			if translated := utils.T(middleware.Localizer(c), appErr.MessageID); translated != appErr.MessageID {
				message = translated
			}
		}
		if code >= fiber.StatusInternalServerError {
			utils.Log.Error("Application error: %v", appErr)
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// message returns the localized text for messageID
func message(c *fiber.Ctx, messageID string) string {
	return utils.T(middleware.Localizer(c), messageID)
}

// queryUint parses a positive integer query parameter, returning def on
// absence or garbage
func queryUint(c *fiber.Ctx, key string, def uint32) uint32 {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return def
	}
	return uint32(n)
}
