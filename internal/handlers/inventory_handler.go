package handlers

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/services"
	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service *services.InventoryService
}

func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
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

func (h *InventoryHandler) New(c *fiber.Ctx) error {
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

func (h *InventoryHandler) Show(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrInventoryItemNotFound.Error())
	}
	item, err := h.service.Get(userID, id)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) Edit(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrInventoryItemNotFound.Error())
	}
	resp, err := h.service.EditForm(userID, id)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(resp)
}

func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}

	var req dto.InventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	upload, closer, err := photoUpload(c)
	if err != nil {
		return badRequest(c)
	}
	defer closeUpload(closer)

	item, err := h.service.Create(c.UserContext(), userID, &req, upload)
	if err != nil {
		return respondError(c, err, req)
	}
	return created(c, fmt.Sprintf("/inventory_items/%d", item.ID), item)
}

func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrInventoryItemNotFound.Error())
	}

	var req dto.InventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	upload, closer, err := photoUpload(c)
	if err != nil {
		return badRequest(c)
	}
	defer closeUpload(closer)

	item, err := h.service.Update(c.UserContext(), userID, id, &req, upload)
	if err != nil {
		return respondError(c, err, req)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	id, ok := paramID(c)
	if !ok {
		return notFound(c, services.ErrInventoryItemNotFound.Error())
	}
	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, err, nil)
	}
	return deleted(c, "/inventory_items")
}
