package handlers

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/services"
	"github.com/gofiber/fiber/v2"
)

type IngredientHandler struct {
	service *services.IngredientService
}

func NewIngredientHandler(service *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{service: service}
}

func (h *IngredientHandler) List(c *fiber.Ctx) error {
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

func (h *IngredientHandler) New(c *fiber.Ctx) error {
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

func (h *IngredientHandler) Show(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrIngredientNotFound.Error())
	}
	ingredient, err := h.service.Get(userID, id)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(ingredient)
}

func (h *IngredientHandler) Edit(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrIngredientNotFound.Error())
	}
	resp, err := h.service.EditForm(userID, id)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(resp)
}

func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}

	var req dto.IngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	upload, closer, err := photoUpload(c)
	if err != nil {
		return badRequest(c)
	}
	defer closeUpload(closer)

	ingredient, err := h.service.Create(c.UserContext(), userID, &req, upload)
	if err != nil {
		return respondError(c, err, req)
	}
	return created(c, fmt.Sprintf("/ingredients/%d", ingredient.ID), ingredient)
}

func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrIngredientNotFound.Error())
	}

	var req dto.IngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	upload, closer, err := photoUpload(c)
	if err != nil {
		return badRequest(c)
	}
	defer closeUpload(closer)

	ingredient, err := h.service.Update(c.UserContext(), userID, id, &req, upload)
	if err != nil {
		return respondError(c, err, req)
	}
	return c.JSON(ingredient)
}

func (h *IngredientHandler) Delete(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrIngredientNotFound.Error())
	}
	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, err, nil)
	}
	return deleted(c, "/ingredients")
}
