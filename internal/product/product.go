package product

import "github.com/wichananm65/ride-shop-client/internal/cart"

// Product is a grocery item as listed by the backend.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Images      []string `json:"images,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

// CartProduct is the shape the cart stores when the product is added.
func (p Product) CartProduct() cart.Product {
	return cart.Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Images:      p.Images,
		Description: p.Description,
		Category:    p.Category,
	}
}

// Filter narrows a listing. Empty fields match everything.
type Filter struct {
	Category string
	Search   string
}
