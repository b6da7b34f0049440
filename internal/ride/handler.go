package ride

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/ride-shop-client/internal/domain/apperr"
	"github.com/wichananm65/ride-shop-client/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/api/v1/rides/history", h.getHistory)
	app.Post("/api/v1/reports", h.reportDriver)
}

func (h *Handler) getHistory(c *fiber.Ctx) error {
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	rides, err := h.service.History(c.UserContext())
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"message": apperr.UserMessage(err)})
	}
	return c.JSON(rides)
}

func (h *Handler) reportDriver(c *fiber.Ctx) error {
	payload := new(Report)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if _, err := user.GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.service.ReportDriver(c.UserContext(), *payload); err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"message": apperr.UserMessage(err)})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Report submitted"})
}
