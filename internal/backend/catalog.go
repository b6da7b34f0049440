package backend

import (
	"context"
	"net/http"

	"github.com/wichananm65/ride-shop-client/internal/banner"
	"github.com/wichananm65/ride-shop-client/internal/category"
	"github.com/wichananm65/ride-shop-client/internal/product"
)

type remoteProduct struct {
	ID          string   `json:"id"`
	MongoID     string   `json:"_id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Stock       *int     `json:"stock"`
}

func (r remoteProduct) toProduct() product.Product {
	p := product.Product{
		ID:          firstNonEmpty(r.ID, r.MongoID),
		Name:        r.Name,
		Price:       r.Price,
		Images:      r.Images,
		Description: r.Description,
		Category:    r.Category,
		Stock:       r.Stock,
	}
	if len(p.Images) == 0 && r.Image != "" {
		p.Images = []string{r.Image}
	}
	return p
}

// ListProducts fetches the grocery catalog. Items without an id are dropped.
func (c *Client) ListProducts(ctx context.Context) ([]product.Product, error) {
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/api/groceries"})
	if err != nil {
		return nil, err
	}
	var raw []remoteProduct
	if err := decodeList(env.Data, &raw, "groceries", "products", "items"); err != nil {
		return nil, err
	}
	out := make([]product.Product, 0, len(raw))
	for _, r := range raw {
		p := r.toProduct()
		if p.ID == "" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type remoteCategory struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Name    string `json:"name"`
	Image   string `json:"image"`
	Icon    string `json:"icon"`
}

func (c *Client) ListCategories(ctx context.Context) ([]category.Category, error) {
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/api/groceries/categories"})
	if err != nil {
		return nil, err
	}

	// some deployments answer with plain category names
	var names []string
	if err := decodeList(env.Data, &names, "categories"); err == nil && len(names) > 0 {
		out := make([]category.Category, 0, len(names))
		for _, n := range names {
			out = append(out, category.Category{ID: n, Name: n})
		}
		return out, nil
	}

	var raw []remoteCategory
	if err := decodeList(env.Data, &raw, "categories"); err != nil {
		return nil, err
	}
	out := make([]category.Category, 0, len(raw))
	for _, r := range raw {
		out = append(out, category.Category{
			ID:    firstNonEmpty(r.ID, r.MongoID, r.Name),
			Name:  r.Name,
			Image: firstNonEmpty(r.Image, r.Icon),
		})
	}
	return out, nil
}

type remoteBanner struct {
	ID       string `json:"id"`
	MongoID  string `json:"_id"`
	Image    string `json:"image"`
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title"`
	Link     string `json:"link"`
}

func (c *Client) ListBanners(ctx context.Context) ([]banner.Banner, error) {
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/api/banners"})
	if err != nil {
		return nil, err
	}
	var raw []remoteBanner
	if err := decodeList(env.Data, &raw, "banners"); err != nil {
		return nil, err
	}
	out := make([]banner.Banner, 0, len(raw))
	for _, r := range raw {
		out = append(out, banner.Banner{
			ID:    firstNonEmpty(r.ID, r.MongoID),
			Image: firstNonEmpty(r.Image, r.ImageURL),
			Title: r.Title,
			Link:  r.Link,
		})
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
