package settings

import (
	"github.com/gofiber/fiber/v2"

	"github.com/awwalu253-ctrl/captain-signature/internal/user"
)

// Handler exposes the storefront settings. Reading is public (the frontend
// needs the currency and delivery fee everywhere); updates are admin-only.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/settings", h.getSettings)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Put("/api/v1/admin/settings", h.updateSettings)
}

type updateSettingsRequest struct {
	DeliveryFee           float64 `json:"deliveryFee"`
	FreeDeliveryThreshold float64 `json:"freeDeliveryThreshold"`
	Currency              string  `json:"currency"`
	SiteName              string  `json:"siteName"`
}

func (h *Handler) getSettings(c *fiber.Ctx) error {
	return c.JSON(h.service.Get())
}

func (h *Handler) updateSettings(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	payload := new(updateSettingsRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.DeliveryFee < 0 || payload.FreeDeliveryThreshold < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "fees must be non-negative"})
	}

	current := h.service.Get()
	next := Settings{
		DeliveryFee:           payload.DeliveryFee,
		FreeDeliveryThreshold: payload.FreeDeliveryThreshold,
		Currency:              payload.Currency,
		SiteName:              payload.SiteName,
	}
	if next.Currency == "" {
		next.Currency = current.Currency
	}
	if next.SiteName == "" {
		next.SiteName = current.SiteName
	}

	updated, err := h.service.Update(next)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}
