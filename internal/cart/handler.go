package cart

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/ride-shop-client/internal/user"
)

// Handler exposes the cart store to the UI shell.
// This keeps cart-specific HTTP routing isolated.
type Handler struct {
	store *Store
}

func NewHandler(s *Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/api/v1/cart", h.getCart)
	app.Delete("/api/v1/cart", h.clearCart)
	app.Post("/api/v1/cart/items", h.addToCart)
	app.Patch("/api/v1/cart/items/:id", h.updateQuantity)
	app.Delete("/api/v1/cart/items/:id", h.removeFromCart)
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

// View is the cart payload returned by every cart route.
type View struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

func (h *Handler) view() View {
	return View{
		Items: h.store.Items(),
		Total: h.store.GetCartTotal(),
		Count: h.store.GetCartItemsCount(),
	}
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(h.view())
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(Product)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.ID = strings.TrimSpace(payload.ID)
	if payload.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ErrInvalidInput.Error()})
	}
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	h.store.AddToCart(c.UserContext(), *payload)
	return c.Status(fiber.StatusOK).JSON(h.view())
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity is required"})
	}
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	h.store.UpdateQuantity(c.UserContext(), c.Params("id"), *payload.Quantity)
	return c.JSON(h.view())
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	h.store.RemoveFromCart(c.UserContext(), c.Params("id"))
	return c.JSON(h.view())
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	h.store.ClearCart(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}
