package order

import (
	"github.com/wichananm65/ride-shop-client/internal/address"
	"github.com/wichananm65/ride-shop-client/internal/cart"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentUPI    PaymentMethod = "upi"
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
)

// Item is one product line of the create-order payload.
type Item struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gt=0"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
	Image     string  `json:"image,omitempty"`
}

// Request is the body of POST /api/orders/create. It only lives until the
// server confirms it.
type Request struct {
	CustomerID      string          `json:"customerId" validate:"required"`
	Items           []Item          `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress address.Address `json:"deliveryAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod" validate:"required,oneof=cash upi card wallet"`
	Subtotal        float64         `json:"subtotal"`
	ShippingFee     float64         `json:"shippingFee"`
	Tax             float64         `json:"tax"`
	TotalAmount     float64         `json:"totalAmount"`
}

// Confirmation is what the server answers once the order exists.
type Confirmation struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// NormalizeItems snapshots cart lines into order lines. Quantities below 1
// become 1.
func NormalizeItems(items []cart.Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		q := it.Quantity
		if q < 1 {
			q = 1
		}
		line := Item{
			ProductID: it.ID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  q,
		}
		if len(it.Images) > 0 {
			line.Image = it.Images[0]
		}
		out = append(out, line)
	}
	return out
}

// NewRequest assembles the payload and fills in the totals.
func NewRequest(customerID string, items []Item, addr address.Address, method PaymentMethod) Request {
	t := ComputeTotals(items)
	return Request{
		CustomerID:      customerID,
		Items:           items,
		DeliveryAddress: addr,
		PaymentMethod:   method,
		Subtotal:        t.Subtotal.InexactFloat64(),
		ShippingFee:     t.Shipping.InexactFloat64(),
		Tax:             t.Tax.InexactFloat64(),
		TotalAmount:     t.Total.InexactFloat64(),
	}
}
