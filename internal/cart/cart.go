package cart

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Product is what the shopping screens hand to AddToCart.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Images      []string `json:"images,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// Item is a cart line. Quantity is always at least 1 while the item is in
// the cart.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Images      []string `json:"images,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
}

func newItem(p Product) Item {
	return Item{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    1,
		Images:      append([]string(nil), p.Images...),
		Description: p.Description,
		Category:    p.Category,
	}
}

// UnmarshalJSON accepts snapshots written by older clients, where ids and
// prices were sometimes strings and quantities could be missing.
func (it *Item) UnmarshalJSON(b []byte) error {
	type plain Item
	var raw struct {
		plain
		ID       json.RawMessage `json:"id"`
		Price    json.RawMessage `json:"price"`
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*it = Item(raw.plain)
	it.ID = flexString(raw.ID)
	it.Price = flexFloat(raw.Price)
	it.Quantity = flexQuantity(raw.Quantity)
	return nil
}

func flexString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func flexFloat(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

// flexQuantity falls back to 1 when the stored value is unusable.
func flexQuantity(raw json.RawMessage) int {
	q := 0
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		q = int(f)
	} else {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			q, _ = strconv.Atoi(strings.TrimSpace(s))
		}
	}
	if q < 1 {
		return 1
	}
	return q
}
