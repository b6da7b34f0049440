package ride

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wichananm65/ride-shop-client/internal/domain/apperr"
)

var ErrNoHistorySource = errors.New("no ride history endpoint answered")

// Remote is the ride and report API of the backend.
type Remote interface {
	TravelHistory(ctx context.Context) ([]Ride, error)
	RidesByUser(ctx context.Context, customerID string) ([]Ride, error)
	Rides(ctx context.Context) ([]Ride, error)
	SubmitReport(ctx context.Context, r Report) error
}

// Identity supplies the signed-in customer id.
type Identity interface {
	CustomerID() string
}

type Service struct {
	remote   Remote
	identity Identity
	validate *validator.Validate
}

func NewService(remote Remote, identity Identity) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return &Service{remote: remote, identity: identity, validate: v}
}

// History asks the travel history endpoint first, then the per-user rides
// endpoint, then the plain rides listing, and returns the first answer.
// Authentication failures stop the chain.
func (s *Service) History(ctx context.Context) ([]Ride, error) {
	sources := []struct {
		name  string
		fetch func(context.Context) ([]Ride, error)
	}{
		{"travels/history", s.remote.TravelHistory},
		{"rides/user", func(ctx context.Context) ([]Ride, error) {
			id := s.identity.CustomerID()
			if id == "" {
				return nil, ErrNoHistorySource
			}
			return s.remote.RidesByUser(ctx, id)
		}},
		{"rides", s.remote.Rides},
	}

	var lastErr error = ErrNoHistorySource
	for _, src := range sources {
		rides, err := src.fetch(ctx)
		if err == nil {
			if rides == nil {
				rides = []Ride{}
			}
			return rides, nil
		}
		if apperr.Is(err, apperr.KindUnauthenticated) {
			return nil, err
		}
		log.Printf("[RIDE] [WARN] history from %s failed: %v", src.name, err)
		lastErr = err
	}
	return nil, lastErr
}

// ReportDriver validates r and sends it to the backend.
func (s *Service) ReportDriver(ctx context.Context, r Report) error {
	r.RideID = strings.TrimSpace(r.RideID)
	r.DriverName = strings.TrimSpace(r.DriverName)
	r.Reason = strings.TrimSpace(r.Reason)
	r.Description = strings.TrimSpace(r.Description)

	if err := s.validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperr.Validation(reportMessage(verrs[0]))
		}
		return apperr.Validation(err.Error())
	}
	return s.remote.SubmitReport(ctx, r)
}

func reportMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required_without":
		return "rideId or driverName is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is required", fe.Field())
	}
}
