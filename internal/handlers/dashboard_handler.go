package handlers

import (
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
	tags      *services.TagService
}

func NewDashboardHandler(dashboard *services.DashboardService, tags *services.TagService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, tags: tags}
}

func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return middleware.Unauthenticated(c)
	}
	resp, err := h.dashboard.Show(userID)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(resp)
}

func (h *DashboardHandler) Tags(c *fiber.Ctx) error {
	tags, err := h.tags.List()
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(dto.TagListResponse{Tags: tags})
}
