package identity

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoIdentity = errors.New("no authenticated identity in context")

const (
	localUserID    = "user_id"
	localSessionID = "session_id"
)

// Claims pulls the user and session IDs out of the verified session token.
func Claims(c *fiber.Ctx) (userID, sessionID uint, err error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return 0, 0, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, 0, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	sid, _ := claims["sid"].(string)
	if userID, err = parseID(sub); err != nil {
		return 0, 0, errors.New("missing sub claim")
	}
	if sessionID, err = parseID(sid); err != nil {
		return 0, 0, errors.New("missing sid claim")
	}
	return userID, sessionID, nil
}

// Set records the resolved identity for downstream handlers.
func Set(c *fiber.Ctx, userID, sessionID uint) {
	c.Locals(localUserID, userID)
	c.Locals(localSessionID, sessionID)
}

// GetUserID returns the identity resolved by the session gate.
func GetUserID(c *fiber.Ctx) (uint, error) {
	if id, ok := c.Locals(localUserID).(uint); ok && id != 0 {
		return id, nil
	}
	return 0, ErrNoIdentity
}

func GetSessionID(c *fiber.Ctx) (uint, error) {
	if id, ok := c.Locals(localSessionID).(uint); ok && id != 0 {
		return id, nil
	}
	return 0, ErrNoIdentity
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(n), nil
}
