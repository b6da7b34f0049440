package user

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/wichananm65/ride-shop-client/internal/domain/apperr"
)

type Handler struct {
	service *Service
	secret  []byte
	ttl     time.Duration
}

type signInRequest struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

func NewHandler(service *Service, secret []byte, ttl time.Duration) *Handler {
	return &Handler{service: service, secret: secret, ttl: ttl}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/v1/session", h.signIn)
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Delete("/api/v1/session", h.signOut)
	app.Get("/api/v1/profile", h.getProfile)
	// the settings panel sends partial payloads either way
	app.Put("/api/v1/profile", h.updateProfile)
	app.Patch("/api/v1/profile", h.updateProfile)
	app.Delete("/api/v1/profile", h.deleteAccount)
}

func (h *Handler) signIn(c *fiber.Ctx) error {
	payload := new(signInRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if strings.TrimSpace(payload.Token) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "token is required"})
	}

	session := h.service.Session()
	if err := session.SignIn(c.UserContext(), payload.Token, payload.Profile); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	local, err := session.IssueLocalToken(h.secret, h.ttl)
	if err != nil {
		if errors.Is(err, ErrNotSignedIn) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "profile has no customer id"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	p, _ := session.Profile()
	return c.JSON(fiber.Map{
		"message": "Signed in",
		"token":   local,
		"profile": p,
	})
}

func (h *Handler) signOut(c *fiber.Ctx) error {
	if _, err := GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.service.Session().Logout(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	if _, err := GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	p, err := h.service.GetProfile()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "profile not found"})
	}
	return c.JSON(p)
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	if _, err := GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	var patch ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.UpdateProfile(c.UserContext(), patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyPatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "profile not found"})
		default:
			return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"message": apperr.UserMessage(err)})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) deleteAccount(c *fiber.Ctx) error {
	if _, err := GetCustomerIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.service.DeleteAccount(c.UserContext()); err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"message": apperr.UserMessage(err)})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetCustomerIDFromCtx extracts the customer_id claim from the JWT stored
// in `c.Locals("user")` by the auth middleware. Every protected handler
// uses it.
func GetCustomerIDFromCtx(c *fiber.Ctx) (string, error) {
	u := c.Locals("user")
	if u == nil {
		return "", fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	id, ok := claims["customer_id"].(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}
