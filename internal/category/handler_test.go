package category

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type fakeRemote struct {
	items []Category
	err   error
}

func (f fakeRemote) ListCategories(ctx context.Context) ([]Category, error) {
	return f.items, f.err
}

func TestCategoryRoute(t *testing.T) {
	h := NewHandler(NewService(fakeRemote{items: []Category{{ID: "1", Name: "Fruits"}, {ID: "2", Name: "Dairy"}, {ID: "3", Name: "Snacks"}}}))
	app := fiber.New()
	h.RegisterPublicRoutes(app)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/categories?limit=2", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Dairy") || strings.Contains(string(b), "Snacks") {
		t.Fatalf("expected two categories, got %s", string(b))
	}
}

func TestCategoryRoute_BackendFailureIsEmpty(t *testing.T) {
	h := NewHandler(NewService(fakeRemote{err: errors.New("boom")}))
	app := fiber.New()
	h.RegisterPublicRoutes(app)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/categories", nil))
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode != fiber.StatusOK || string(b) != "[]" {
		t.Fatalf("expected empty list, got %d %s", res.StatusCode, string(b))
	}
}
