package usecase

import (
	"context"
	"errors"

	"github.com/wichananm65/ride-shop-client/internal/order"
)

// CheckoutUsecase turns the current cart and delivery address into a
// server-confirmed order.
type CheckoutUsecase interface {
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
	State() CheckoutState
	Summary() order.Totals
}

// CheckoutInput carries the choices the user makes on the checkout screen.
type CheckoutInput struct {
	PaymentMethod order.PaymentMethod
}

// CheckoutResult is returned once the server confirmed the order.
type CheckoutResult struct {
	Confirmation order.Confirmation
	Totals       order.Totals
	NextActions  []string
}

type CheckoutState string

const (
	StateIdle       CheckoutState = "idle"
	StateValidating CheckoutState = "validating"
	StateProbing    CheckoutState = "probing"
	StateSubmitting CheckoutState = "submitting"
	StateConfirmed  CheckoutState = "confirmed"
	StateFailed     CheckoutState = "failed"
)

const (
	ActionOrderHistory     = "order_history"
	ActionContinueShopping = "continue_shopping"
	RedirectAddressEntry   = "address_entry"
)

var (
	ErrEmptyCart          = errors.New("your cart is empty")
	ErrAddressRequired    = errors.New("please add a delivery address to continue")
	ErrMissingCustomerID  = errors.New("customer id is missing, please sign in again")
	ErrCheckoutInProgress = errors.New("a checkout is already in progress")
)

// Redirect names the screen the UI should open after err, if any.
func Redirect(err error) string {
	if errors.Is(err, ErrAddressRequired) {
		return RedirectAddressEntry
	}
	return ""
}
