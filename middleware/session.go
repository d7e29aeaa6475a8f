package middleware

import (
	"campaignmanager/models"
	"campaignmanager/storage"
	"campaignmanager/utils"

	"github.com/gofiber/fiber/v2"
)

// UserLocalsKey is where RequireSession stores the current *models.User
const UserLocalsKey = "user"

// RequireSession rejects requests when no user is logged in
func RequireSession(sessions *storage.SessionRegister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := sessions.GetCurrent()
		if user == nil {
			return utils.UnauthorizedError("auth_required", "Please log in to continue", nil)
		}
		c.Locals(UserLocalsKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireSession, or nil
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserLocalsKey).(*models.User)
	return user
}
