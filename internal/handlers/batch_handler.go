package handlers

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BatchHandler struct {
	service *services.BatchService
}

func NewBatchHandler(service *services.BatchService) *BatchHandler {
	return &BatchHandler{service: service}
}

func (h *BatchHandler) List(c *fiber.Ctx) error {
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

// New handles GET /batches/new?recipe_id=.
func (h *BatchHandler) New(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	recipeID := c.QueryInt("recipe_id", 0)
	if recipeID < 0 {
		recipeID = 0
	}
	resp, err := h.service.NewForm(userID, uint(recipeID))
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(resp)
}

func (h *BatchHandler) Show(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrBatchNotFound.Error())
	}
	batch, err := h.service.Get(userID, id)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(batch)
}

func (h *BatchHandler) Create(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}

	var req dto.BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	batch, err := h.service.Create(userID, &req)
	if err != nil {
		return respondError(c, err, req)
	}
	return created(c, fmt.Sprintf("/batches/%d", batch.ID), batch)
}

func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrBatchNotFound.Error())
	}
	if err := h.service.Delete(userID, id); err != nil {
		return respondError(c, err, nil)
	}
	return deleted(c, "/batches")
}
