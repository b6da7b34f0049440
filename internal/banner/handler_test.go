package banner

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type fakeRemote []Banner

func (f fakeRemote) ListBanners(ctx context.Context) ([]Banner, error) {
	return f, nil
}

func TestBannerRoute_SkipsBannersWithoutImage(t *testing.T) {
	h := NewHandler(NewService(fakeRemote{
		{ID: "1", Image: "/b/diwali.png", Title: "Diwali sale"},
		{ID: "2", Title: "broken"},
		{ID: "3", Image: "/b/rides.png"},
	}))
	app := fiber.New()
	h.RegisterPublicRoutes(app)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/banners", nil))
	b, _ := io.ReadAll(res.Body)
	if strings.Contains(string(b), "broken") || !strings.Contains(string(b), "rides.png") {
		t.Fatalf("unexpected banners: %s", string(b))
	}
}
