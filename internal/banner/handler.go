package banner

import "github.com/gofiber/fiber/v2"

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/banners", h.getBanners)
}

const (
	defaultLimit = 10
	maxLimit     = 20
)

func (h *Handler) getBanners(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	return c.JSON(h.service.List(c.UserContext(), limit))
}
