package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/ride-shop-client/internal/domain/apperr"
	"github.com/wichananm65/ride-shop-client/internal/interface/presenter"
	"github.com/wichananm65/ride-shop-client/internal/order"
	"github.com/wichananm65/ride-shop-client/internal/usecase"
	"github.com/wichananm65/ride-shop-client/internal/user"
)

// CheckoutHandler adapts checkout requests to the use case.
type CheckoutHandler struct {
	usecase   usecase.CheckoutUsecase
	presenter *presenter.CheckoutPresenter
	itemCount func() int
}

func NewCheckoutHandler(uc usecase.CheckoutUsecase, p *presenter.CheckoutPresenter, itemCount func() int) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc, presenter: p, itemCount: itemCount}
}

func (h *CheckoutHandler) RegisterProtectedRoutes(app fiber.Router) {
	app.Post("/api/v1/checkout", h.checkout)
	app.Get("/api/v1/checkout/state", h.state)
	app.Get("/api/v1/checkout/summary", h.summary)
}

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (h *CheckoutHandler) checkout(c *fiber.Ctx) error {
	payload := new(checkoutRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	res, err := h.usecase.Checkout(c.UserContext(), usecase.CheckoutInput{
		PaymentMethod: order.PaymentMethod(payload.PaymentMethod),
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, usecase.ErrAddressRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error(), "redirect": usecase.Redirect(err)})
		case errors.Is(err, usecase.ErrMissingCustomerID):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, usecase.ErrCheckoutInProgress):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"message": apperr.UserMessage(err)})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(h.presenter.ToResponse(res))
}

func (h *CheckoutHandler) state(c *fiber.Ctx) error {
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(fiber.Map{"state": h.usecase.State()})
}

func (h *CheckoutHandler) summary(c *fiber.Ctx) error {
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(h.presenter.ToSummary(h.usecase.Summary(), h.itemCount()))
}
