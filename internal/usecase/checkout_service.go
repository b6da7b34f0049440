package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/ride-shop-client/internal/address"
	"github.com/wichananm65/ride-shop-client/internal/cart"
	"github.com/wichananm65/ride-shop-client/internal/domain/apperr"
	"github.com/wichananm65/ride-shop-client/internal/order"
	"github.com/wichananm65/ride-shop-client/internal/user"
)

// CartReader is the part of the cart store checkout needs.
type CartReader interface {
	Items() []cart.Item
	RemoveOrdered(ctx context.Context, ordered []cart.Item) []cart.Item
}

// AddressReader resolves the effective delivery address.
type AddressReader interface {
	DefaultAddress() *address.Address
}

// SessionReader exposes the credential and cached profile.
type SessionReader interface {
	HasToken() bool
	CustomerID() string
	Profile() (user.Profile, bool)
}

// CheckoutOptions tune the network discipline of a checkout.
type CheckoutOptions struct {
	// Probe runs the connectivity probe first and treats its failure as
	// fatal. Submission is then attempted once.
	Probe bool
	// MaxAttempts above 1 resends the order only when the previous attempt
	// never reached the server.
	MaxAttempts int
	RetryDelay  time.Duration
}

// StateListener observes every checkout state transition.
type StateListener func(CheckoutState)

// CheckoutService implements CheckoutUsecase. One checkout runs at a time.
type CheckoutService struct {
	cart      CartReader
	addresses AddressReader
	session   SessionReader
	orders    order.Remote
	opts      CheckoutOptions
	newKey    func() string
	sleep     func(time.Duration)

	mu        sync.Mutex
	state     CheckoutState
	running   bool
	listeners []StateListener
}

func NewCheckoutService(c CartReader, a AddressReader, s SessionReader, orders order.Remote, opts CheckoutOptions) *CheckoutService {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &CheckoutService{
		cart:      c,
		addresses: a,
		session:   s,
		orders:    orders,
		opts:      opts,
		newKey:    uuid.NewString,
		sleep:     time.Sleep,
		state:     StateIdle,
	}
}

// OnStateChange registers fn for state transitions, including the brief
// failed state a checkout passes through before settling back to idle.
func (s *CheckoutService) OnStateChange(fn StateListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *CheckoutService) State() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Summary previews the totals of the current cart.
func (s *CheckoutService) Summary() order.Totals {
	return order.ComputeTotals(order.NormalizeItems(s.cart.Items()))
}

func (s *CheckoutService) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	s.running = true
	s.mu.Unlock()

	res, err := s.run(ctx, input)
	if err != nil {
		log.Printf("[CHECKOUT] [WARN] failed in %s: %v", s.State(), err)
		// failed attempts settle back to idle with cart and address untouched
		s.setState(StateFailed)
		s.finish(StateIdle)
		return nil, err
	}
	s.finish(StateConfirmed)
	return res, nil
}

func (s *CheckoutService) setState(st CheckoutState) {
	s.mu.Lock()
	s.state = st
	listeners := append([]StateListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(st)
	}
}

// finish records the terminal state and releases the checkout slot in one
// step so a new checkout never observes a stale state.
func (s *CheckoutService) finish(st CheckoutState) {
	s.mu.Lock()
	s.state = st
	s.running = false
	listeners := append([]StateListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(st)
	}
}

func (s *CheckoutService) run(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	s.setState(StateValidating)

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	addr, ok := s.resolveAddress()
	if !ok {
		return nil, ErrAddressRequired
	}
	customerID := strings.TrimSpace(s.session.CustomerID())
	if customerID == "" {
		return nil, ErrMissingCustomerID
	}
	if !s.session.HasToken() {
		return nil, apperr.Unauthenticated()
	}

	method := input.PaymentMethod
	if method == "" {
		method = order.PaymentCash
	}
	req := order.NewRequest(customerID, order.NormalizeItems(items), addr, method)
	if err := order.Validate(req); err != nil {
		return nil, err
	}

	attempts := s.opts.MaxAttempts
	if s.opts.Probe {
		s.setState(StateProbing)
		if err := s.orders.TestConnection(ctx); err != nil {
			return nil, err
		}
		attempts = 1
	}

	s.setState(StateSubmitting)
	// the caller may go away; the submission still completes and its
	// result is applied here
	submitCtx := context.WithoutCancel(ctx)
	key := s.newKey()

	var conf order.Confirmation
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		conf, err = s.orders.CreateOrder(submitCtx, req, key)
		if err == nil {
			break
		}
		if attempt == attempts || !apperr.Transient(err) {
			return nil, err
		}
		log.Printf("[CHECKOUT] [WARN] create attempt %d/%d failed, retrying: %v", attempt, attempts, err)
		s.sleep(s.opts.RetryDelay)
	}

	// only what was ordered leaves the cart
	s.cart.RemoveOrdered(submitCtx, items)
	log.Printf("[CHECKOUT] [INFO] order %s confirmed, total %s", conf.OrderID, order.ComputeTotals(req.Items).Total.StringFixed(2))

	return &CheckoutResult{
		Confirmation: conf,
		Totals:       order.ComputeTotals(req.Items),
		NextActions:  []string{ActionOrderHistory, ActionContinueShopping},
	}, nil
}

// resolveAddress prefers the address book default and falls back to the
// profile's free-text address.
func (s *CheckoutService) resolveAddress() (address.Address, bool) {
	if a := s.addresses.DefaultAddress(); a != nil {
		return *a, true
	}
	p, ok := s.session.Profile()
	if !ok || strings.TrimSpace(p.Address) == "" {
		return address.Address{}, false
	}
	parsed := address.ParseFreeText(p.Address)
	return address.Address{
		Name:         strings.TrimSpace(p.Name),
		Phone:        strings.TrimSpace(p.Phone),
		AddressLine1: strings.TrimSpace(p.Address),
		City:         parsed.City,
		State:        parsed.State,
		Pincode:      parsed.Pincode,
		Country:      address.DefaultCountry,
		IsDefault:    true,
	}, true
}
