package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/config"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/identity"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func clientInfo(c *fiber.Ctx) services.ClientInfo {
	return services.ClientInfo{
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}

// Signup handles POST /users.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	resp, err := h.authService.Register(&req, clientInfo(c))
	if err != nil {
		metrics.RecordAuthAttempt("signup", "rejected")
		// Never echo passwords back.
		return respondError(c, err, fiber.Map{"email": req.Email})
	}

	metrics.RecordAuthAttempt("signup", "ok")
	middleware.SetSessionCookie(c, h.cfg, resp)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// LoginForm handles GET /session/new.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return c.JSON(dto.SessionFormResponse{
		Fields:     []string{"email", "password"},
		LoginPath:  "/session",
		SignupPath: "/users",
	})
}

// Login handles POST /session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	resp, err := h.authService.Login(&req, clientInfo(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			metrics.RecordAuthAttempt("login", "rejected")
		}
		return respondError(c, err, nil)
	}

	metrics.RecordAuthAttempt("login", "ok")
	middleware.SetSessionCookie(c, h.cfg, resp)
	return c.JSON(resp)
}

// Logout handles DELETE /session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return middleware.Unauthenticated(c)
	}
	sessionID, err := identity.GetSessionID(c)
	if err != nil {
		return middleware.Unauthenticated(c)
	}

	if err := h.authService.Logout(userID, sessionID); err != nil {
		return respondError(c, err, nil)
	}

	middleware.ClearSessionCookie(c)
	if middleware.WantsHTML(c) {
		return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// DeleteAccount handles DELETE /users/me.
func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	if err := h.authService.DeleteAccount(c.UserContext(), userID, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Incorrect password. Please try again.",
			})
		}
		return respondError(c, err, nil)
	}

	middleware.ClearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}
