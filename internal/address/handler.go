package address

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/ride-shop-client/internal/domain/apperr"
	"github.com/wichananm65/ride-shop-client/internal/user"
)

// Handler exposes the address book to the UI shell.
type Handler struct {
	store *Store
}

func NewHandler(s *Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/api/v1/addresses", h.getAddresses)
	app.Post("/api/v1/addresses", h.addAddress)
	app.Get("/api/v1/addresses/default", h.getDefault)
	app.Post("/api/v1/addresses/parse", h.parse)
	app.Patch("/api/v1/addresses/:id", h.updateAddress)
	app.Delete("/api/v1/addresses/:id", h.deleteAddress)
	app.Put("/api/v1/addresses/:id/default", h.setDefault)
}

type parseRequest struct {
	Text string `json:"text"`
}

func (h *Handler) getAddresses(c *fiber.Ctx) error {
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	addrs, err := h.store.FetchUserProfileForAddress(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(addrs)
}

func (h *Handler) getDefault(c *fiber.Ctx) error {
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	d := h.store.DefaultAddress()
	if d == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no saved address"})
	}
	return c.JSON(d)
}

func (h *Handler) addAddress(c *fiber.Ctx) error {
	payload := new(Address)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	addr, err := h.store.AddAddress(c.UserContext(), *payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(addr)
}

func (h *Handler) updateAddress(c *fiber.Ctx) error {
	payload := new(Patch)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	addr, err := h.store.UpdateAddress(c.UserContext(), c.Params("id"), *payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(addr)
}

func (h *Handler) deleteAddress(c *fiber.Ctx) error {
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.store.DeleteAddress(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.store.Addresses())
}

func (h *Handler) setDefault(c *fiber.Ctx) error {
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	addr, err := h.store.SetDefaultAddress(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(addr)
}

func (h *Handler) parse(c *fiber.Ctx) error {
	payload := new(parseRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(ParseFreeText(payload.Text))
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "address not found"})
	case errors.Is(err, ErrLastAddress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"message": apperr.UserMessage(err)})
	}
}
