package payment

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmaciavital/pharmacy-backend/internal/auth"
	"github.com/farmaciavital/pharmacy-backend/internal/order"
)

// CheckoutService is the slice of the order service the checkout endpoint
// delegates to.
type CheckoutService interface {
	Checkout(userID string, items []order.Item) (order.CheckoutResult, error)
}

// Handler exposes the payment endpoints. Checkout lives here rather than in
// the order package because the client treats it as the first step of the
// payment flow.
type Handler struct {
	service  *Service
	checkout CheckoutService
}

func NewHandler(s *Service, checkout CheckoutService) *Handler {
	return &Handler{service: s, checkout: checkout}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/payments/validate-card", h.validateCard)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/payments/process", h.processPayment)
	app.Post("/api/v1/payments/checkout", h.createCheckout)
}

type checkoutItemPayload struct {
	ProductID        string  `json:"product_id"`
	Quantity         int     `json:"quantity"`
	PrescriptionFile *string `json:"prescription_file,omitempty"`
}

type checkoutRequest struct {
	CartItems []checkoutItemPayload `json:"cart_items"`
}

func (h *Handler) validateCard(c *fiber.Ctx) error {
	payload := new(CardDetails)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.service.ValidateCard(*payload))
}

func (h *Handler) processPayment(c *fiber.Ctx) error {
	payload := new(ProcessRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	// rejections are part of the response contract, always HTTP 200
	return c.JSON(h.service.Process(userID, *payload))
}

func (h *Handler) createCheckout(c *fiber.Ctx) error {
	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items := make([]order.Item, 0, len(payload.CartItems))
	for _, it := range payload.CartItems {
		items = append(items, order.Item{
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
			PrescriptionFile: it.PrescriptionFile,
		})
	}

	result, err := h.checkout.Checkout(userID, items)
	if err != nil {
		switch err {
		case order.ErrEmptyOrder:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart_items cannot be empty"})
		case order.ErrProductUnavailable:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "one or more products are unavailable"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not create checkout session"})
		}
	}
	return c.JSON(result)
}
