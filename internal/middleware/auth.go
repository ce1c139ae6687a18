package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/config"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/identity"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

const (
	SessionCookie = "session_token"
	LoginPath     = "/session/new"
)

// JWTProtected verifies the session token from the Authorization header or
// the session cookie.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.SessionSecret)},
		TokenLookup: "header:Authorization,cookie:" + SessionCookie,
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return Unauthenticated(c)
		},
	})
}

// SessionActive runs after JWTProtected and rejects tokens whose session
// was closed by logout.
func SessionActive(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, sessionID, err := identity.Claims(c)
		if err != nil {
			return Unauthenticated(c)
		}

		if err := authService.Authenticate(userID, sessionID); err != nil {
			if errors.Is(err, services.ErrSessionNotFound) {
				ClearSessionCookie(c)
				return Unauthenticated(c)
			}
			slog.Error("session lookup failed", "error", err, "user_id", userID)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}

		identity.Set(c, userID, sessionID)
		return c.Next()
	}
}

// Unauthenticated sends browsers to the login page and API clients a 401.
func Unauthenticated(c *fiber.Ctx) error {
	if WantsHTML(c) {
		return c.Redirect(LoginPath, fiber.StatusSeeOther)
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: sign in to continue",
	})
}

// WantsHTML reports whether the client prefers an HTML page over JSON.
// Requests without an Accept header get JSON.
func WantsHTML(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML
}

func SetSessionCookie(c *fiber.Ctx, cfg *config.Config, resp *dto.AuthResponse) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func ClearSessionCookie(c *fiber.Ctx) {
	c.ClearCookie(SessionCookie)
}
