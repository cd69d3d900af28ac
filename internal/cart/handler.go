package cart

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/awwalu253-ctrl/captain-signature/internal/pricing"
	"github.com/awwalu253-ctrl/captain-signature/internal/product"
	"github.com/awwalu253-ctrl/captain-signature/internal/settings"
)

// Handler exposes the session cart. Routes are public: guests can build a
// basket before signing in, so the session cookie (not the JWT) scopes it.
type Handler struct {
	service         *Service
	productService  *product.Service
	settingsService *settings.Service
}

func NewHandler(s *Service, ps *product.Service, ss *settings.Service) *Handler {
	return &Handler{service: s, productService: ps, settingsService: ss}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addToCart)
	app.Put("/api/v1/cart/:productID<[0-9]+>", h.updateItem)
	app.Delete("/api/v1/cart/:productID<[0-9]+>", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addRequest struct {
	ProductID int `json:"productID"`
	Quantity  int `json:"quantity"`
}

type updateRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	crt, err := h.service.Get(SessionID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.view(crt))
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}
	if payload.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be at least 1"})
	}

	p, err := h.productService.GetByID(payload.ProductID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	if payload.Quantity > p.Stock {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Sorry, only %d items available.", p.Stock),
		})
	}

	crt, err := h.service.Add(SessionID(c), p, payload.Quantity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.view(crt))
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}

	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Quantity > 0 {
		p, err := h.productService.GetByID(productID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		if payload.Quantity > p.Stock {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("Sorry, only %d items available.", p.Stock),
			})
		}
	}

	crt, err := h.service.Update(SessionID(c), productID, payload.Quantity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.view(crt))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}

	crt, err := h.service.Remove(SessionID(c), productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.view(crt))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(SessionID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// view renders a cart with its live price breakdown. The quote is always
// recomputed from current settings so an admin fee change shows immediately.
func (h *Handler) view(crt *Cart) fiber.Map {
	cfg := h.settingsService.Get()
	quote := pricing.Compute(crt.Subtotal(), cfg.DeliveryFee, cfg.FreeDeliveryThreshold)
	return fiber.Map{
		"items":        crt.Items(),
		"totalItems":   crt.TotalItems(),
		"itemsCount":   crt.ItemsCount(),
		"subtotal":     quote.Subtotal,
		"deliveryFee":  quote.DeliveryFee,
		"total":        quote.Total,
		"freeDelivery": quote.FreeDelivery,
		"currency":     cfg.Currency,
	}
}
