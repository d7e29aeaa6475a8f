package api

import (
	"strings"

	"campaignmanager/middleware"
	"campaignmanager/models"
	"campaignmanager/storage"
	"campaignmanager/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	users    *storage.UserDirectory
	sessions *storage.SessionRegister
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *storage.UserDirectory, sessions *storage.SessionRegister) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func parseCredentials(c *fiber.Ctx) (credentialsRequest, error) {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return req, utils.BadRequestError("request_invalid", "Invalid request", err)
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return req, utils.BadRequestError("auth_missing_fields", "Username and password are required", nil)
	}
	return req, nil
}

// Signup creates an account. The username is checked for uniqueness here
// since the directory itself does not.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	req, err := parseCredentials(c)
	if err != nil {
		return err
	}

	if h.users.FindByUsername(req.Username) != nil {
		return utils.ConflictError("auth_username_taken", "Username already exists", nil)
	}

	created := h.users.Create(req.Username, req.Password)

	// Create never reports a failed write; read it back to be sure.
	saved := h.users.FindByUsername(req.Username)
	if saved == nil || saved.ID != created.ID {
		return utils.InternalServerError("error_500", "Failed to create account", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    saved.Public(),
	})
}

// Login validates credentials and stores the session, confirming the write
// with a read and retrying the write once if the read misses
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	req, err := parseCredentials(c)
	if err != nil {
		return err
	}

	user := h.users.Validate(req.Username, req.Password)
	if user == nil {
		return utils.UnauthorizedError("auth_invalid_credentials", "Invalid username or password", nil)
	}

	if !h.establish(*user) {
		utils.Log.WithField("user", user.Username).Warn("Session not confirmed, retrying save")
		if !h.establish(*user) {
			return utils.InternalServerError("auth_session_failed", "Failed to save session", nil)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user.Public(),
	})
}

func (h *AuthHandler) establish(user models.User) bool {
	h.sessions.SetCurrent(user)
	saved := h.sessions.GetCurrent()
	return saved != nil && saved.ID == user.ID
}

// Logout clears the session
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.ClearCurrent()
	return c.JSON(fiber.Map{
		"success": true,
		"message": message(c, "auth_logged_out"),
	})
}

// Me returns the current user
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.UnauthorizedError("auth_required", "Please log in to continue", nil)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user.Public(),
	})
}
