package product

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/ride-shop-client/internal/domain/apperr"
	"github.com/wichananm65/ride-shop-client/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/products/:id", h.getProduct)
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Post("/api/v1/products/:id/cart", h.addToCart)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	if c.QueryBool("refresh") {
		h.service.Refresh()
	}
	items, err := h.service.List(c.UserContext(), Filter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"message": apperr.UserMessage(err)})
	}
	return c.JSON(items)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"message": apperr.UserMessage(err)})
	}
	return c.JSON(p)
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	items, err := h.service.AddToCart(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"message": apperr.UserMessage(err)})
	}
	return c.JSON(items)
}
