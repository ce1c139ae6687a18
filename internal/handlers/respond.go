package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/identity"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/services"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/storage"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

var notFoundErrors = []error{
	services.ErrIngredientNotFound,
	services.ErrRecipeNotFound,
	services.ErrRecipeIngredientNotFound,
	services.ErrInventoryItemNotFound,
	services.ErrBatchNotFound,
	services.ErrUserNotFound,
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

// respondError maps a service error to its HTTP response. form is echoed
// back on validation failures.
func respondError(c *fiber.Ctx, err error, form interface{}) error {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Error:   true,
			Message: "Validation failed",
			Errors:  ve.Fields,
			Form:    form,
		})
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return notFound(c, err.Error())
		}
	}

	switch {
	case errors.Is(err, services.ErrRecipeConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	userID, _ := identity.GetUserID(c)
	slog.Error("request failed",
		"error", err,
		"method", c.Method(),
		"path", c.Path(),
		"user_id", userID,
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
	)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

// currentUser returns the identity set by the session gate.
func currentUser(c *fiber.Ctx) (uint, bool) {
	userID, err := identity.GetUserID(c)
	return userID, err == nil
}

func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// photoUpload returns the file sent in the "photo" field, or nil when the
// request has none. The caller closes the returned reader.
func photoUpload(c *fiber.Ctx) (*storage.Upload, io.Closer, error) {
	fh, err := c.FormFile("photo")
	if err != nil {
		return nil, nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open upload: %w", err)
	}
	return &storage.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, f, nil
}

func closeUpload(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

func created(c *fiber.Ctx, location string, body interface{}) error {
	c.Location(location)
	return c.Status(fiber.StatusCreated).JSON(body)
}

// deleted redirects browsers back to the index and answers API clients
// with 204.
func deleted(c *fiber.Ctx, indexPath string) error {
	if middleware.WantsHTML(c) {
		return c.Redirect(indexPath, fiber.StatusSeeOther)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
