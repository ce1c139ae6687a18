package handlers

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RecipeHandler struct {
	service *services.RecipeService
}

func NewRecipeHandler(service *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

func saveOutcome(err error) string {
	var ve *services.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ve):
		return "invalid"
	case errors.Is(err, services.ErrRecipeConflict):
		return "conflict"
	case errors.Is(err, services.ErrRecipeNotFound), errors.Is(err, services.ErrRecipeIngredientNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func (h *RecipeHandler) List(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	resp, err := h.service.List(userID)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(resp)
}

func (h *RecipeHandler) New(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	resp, err := h.service.NewForm(userID)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(resp)
}

func (h *RecipeHandler) Show(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrRecipeNotFound.Error())
	}
	recipe, err := h.service.Get(userID, id)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(recipe)
}

func (h *RecipeHandler) Edit(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrRecipeNotFound.Error())
	}
	resp, err := h.service.EditForm(userID, id)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(resp)
}

// Create handles POST /recipes with nested recipe_ingredients rows.
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}

	var req dto.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	upload, closer, err := photoUpload(c)
	if err != nil {
		return badRequest(c)
	}
	defer closeUpload(closer)

	recipe, err := h.service.Create(c.UserContext(), userID, &req, upload)
	metrics.RecordRecipeSave("create", saveOutcome(err))
	if err != nil {
		return respondError(c, err, req)
	}
	return created(c, fmt.Sprintf("/recipes/%d", recipe.ID), recipe)
}

func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrRecipeNotFound.Error())
	}

	var req dto.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	upload, closer, err := photoUpload(c)
	if err != nil {
		return badRequest(c)
	}
	defer closeUpload(closer)

	recipe, err := h.service.Update(c.UserContext(), userID, id, &req, upload)
	metrics.RecordRecipeSave("update", saveOutcome(err))
	if err != nil {
		return respondError(c, err, req)
	}
	return c.JSON(recipe)
}

func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrRecipeNotFound.Error())
	}
	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, err, nil)
	}
	return deleted(c, "/recipes")
}
