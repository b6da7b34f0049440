package presenter

import (
	"github.com/wichananm65/ride-shop-client/internal/order"
	"github.com/wichananm65/ride-shop-client/internal/usecase"
)

// CheckoutPresenter shapes checkout results for the UI; money is rendered
// with two decimals here and nowhere earlier.
type CheckoutPresenter struct{}

func NewCheckoutPresenter() *CheckoutPresenter {
	return &CheckoutPresenter{}
}

type TotalsResponse struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

type CheckoutResponse struct {
	OrderID     string         `json:"order_id"`
	Status      string         `json:"status,omitempty"`
	Message     string         `json:"message"`
	Totals      TotalsResponse `json:"totals"`
	NextActions []string       `json:"next_actions"`
}

type SummaryResponse struct {
	Totals    TotalsResponse `json:"totals"`
	ItemCount int            `json:"item_count"`
	FreeShip  bool           `json:"free_shipping"`
}

func (p *CheckoutPresenter) ToTotals(t order.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal: t.Subtotal.StringFixed(2),
		Shipping: t.Shipping.StringFixed(2),
		Tax:      t.Tax.StringFixed(2),
		Total:    t.Total.StringFixed(2),
	}
}

func (p *CheckoutPresenter) ToResponse(res *usecase.CheckoutResult) *CheckoutResponse {
	if res == nil {
		return nil
	}
	msg := res.Confirmation.Message
	if msg == "" {
		msg = "Order placed successfully"
	}
	return &CheckoutResponse{
		OrderID:     res.Confirmation.OrderID,
		Status:      res.Confirmation.Status,
		Message:     msg,
		Totals:      p.ToTotals(res.Totals),
		NextActions: res.NextActions,
	}
}

func (p *CheckoutPresenter) ToSummary(t order.Totals, itemCount int) *SummaryResponse {
	return &SummaryResponse{
		Totals:    p.ToTotals(t),
		ItemCount: itemCount,
		FreeShip:  itemCount > 0 && t.Shipping.IsZero(),
	}
}
