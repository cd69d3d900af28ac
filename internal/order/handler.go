package order

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/awwalu253-ctrl/captain-signature/internal/cart"
	"github.com/awwalu253-ctrl/captain-signature/internal/settings"
	"github.com/awwalu253-ctrl/captain-signature/internal/user"
)

type Handler struct {
	service         *Service
	cartService     *cart.Service
	settingsService *settings.Service
	userService     *user.Service
}

func NewHandler(s *Service, cs *cart.Service, ss *settings.Service, us *user.Service) *Handler {
	return &Handler{service: s, cartService: cs, settingsService: ss, userService: us}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/orders/track/:number", h.track)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.checkout)
	app.Get("/api/v1/orders", h.listMine)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
	app.Post("/api/v1/orders/:id<[0-9]+>/cancel", h.cancel)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/orders", h.listAll)
	app.Patch("/api/v1/admin/orders/:id<[0-9]+>/status", h.updateStatus)
}

type checkoutRequest struct {
	ShippingName  string `json:"shippingName"`
	Address       string `json:"shippingAddress"`
	City          string `json:"shippingCity"`
	State         string `json:"shippingState"`
	Phone         string `json:"shippingPhone"`
	Email         string `json:"shippingEmail"`
	PaymentMethod string `json:"paymentMethod"`
	CustomerNotes string `json:"customerNotes"`
}

type statusRequest struct {
	Status      Status `json:"status"`
	Description string `json:"description"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.ShippingName == "" || payload.Address == "" || payload.City == "" || payload.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing required shipping fields"})
	}
	if !ValidState(payload.State) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Please select a valid Nigerian state."})
	}
	if payload.Email == "" {
		// fall back to the account email for the confirmation
		if u, err := h.userService.GetByID(userID); err == nil {
			payload.Email = u.Email
		}
	}

	sessionID := cart.SessionID(c)
	crt, err := h.cartService.Get(sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	placed, err := h.service.Checkout(crt, sessionID, CheckoutInput{
		UserID:        userID,
		ShippingName:  payload.ShippingName,
		Address:       payload.Address,
		City:          payload.City,
		State:         payload.State,
		Phone:         payload.Phone,
		Email:         payload.Email,
		PaymentMethod: payload.PaymentMethod,
		CustomerNotes: payload.CustomerNotes,
	}, h.settingsService.Get())
	if err != nil {
		var stockErr *InsufficientStockError
		switch {
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Your cart is empty"})
		case errors.Is(err, ErrProductMissing):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "A product in your cart is no longer available"})
		case errors.As(err, &stockErr):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": stockErr.Error(),
				"details": stockErr,
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(placed)
}

func (h *Handler) listMine(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	ord, err := h.service.Get(id, userID, user.IsAdminFromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

func (h *Handler) cancel(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	ord, err := h.service.Cancel(id, userID)
	if err != nil {
		var transitionErr *InvalidTransitionError
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
		case errors.As(err, &transitionErr):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": transitionErr.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

func (h *Handler) track(c *fiber.Ctx) error {
	ord, err := h.service.Track(c.Params("number"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	// public endpoint: expose the delivery progress, not account details
	return c.JSON(fiber.Map{
		"orderNumber": ord.OrderNumber,
		"orderDate":   ord.OrderDate,
		"status":      ord.Status,
		"tracking":    ord.Tracking,
	})
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
	}

	orders, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if !payload.Status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid status"})
	}

	ord, err := h.service.SetStatus(id, payload.Status, payload.Description)
	if err != nil {
		var transitionErr *InvalidTransitionError
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.As(err, &transitionErr):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": transitionErr.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}
