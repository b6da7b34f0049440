package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"

	"github.com/wichananm65/ride-shop-client/internal/address"
	"github.com/wichananm65/ride-shop-client/internal/banner"
	"github.com/wichananm65/ride-shop-client/internal/cart"
	"github.com/wichananm65/ride-shop-client/internal/category"
	"github.com/wichananm65/ride-shop-client/internal/interface/http/handler"
	"github.com/wichananm65/ride-shop-client/internal/product"
	"github.com/wichananm65/ride-shop-client/internal/ride"
	"github.com/wichananm65/ride-shop-client/internal/user"
)

// Handlers groups every route owner of the local surface.
type Handlers struct {
	User     *user.Handler
	Cart     *cart.Handler
	Address  *address.Handler
	Product  *product.Handler
	Category *category.Handler
	Banner   *banner.Handler
	Ride     *ride.Handler
	Checkout *handler.CheckoutHandler
}

// Options configure the surface shared by all routes.
type Options struct {
	SigningKey  []byte
	CORSOrigins string
}

// New builds the fiber app. Public routes are registered before the JWT
// middleware, protected ones after it.
func New(h Handlers, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})
	setupCORS(app, opts.CORSOrigins)
	app.Use(requestLogger)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	h.User.RegisterPublicRoutes(app)
	h.Product.RegisterPublicRoutes(app)
	h.Category.RegisterPublicRoutes(app)
	h.Banner.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: opts.SigningKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	}))

	h.User.RegisterProtectedRoutes(app)
	h.Cart.RegisterProtectedRoutes(app)
	h.Address.RegisterProtectedRoutes(app)
	h.Product.RegisterProtectedRoutes(app)
	h.Ride.RegisterProtectedRoutes(app)
	h.Checkout.RegisterProtectedRoutes(app)

	return app
}

// setupCORS admits the listed origins. Without any, no CORS headers are sent
// and browsers keep other origins out.
func setupCORS(app *fiber.App, origins string) {
	if origins == "" {
		return
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("[HTTP] [INFO] %s %s status=%d took=%s", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}
