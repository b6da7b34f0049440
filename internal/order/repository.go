package order

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wichananm65/ride-shop-client/internal/domain/apperr"
)

// Remote is the order API of the backend.
type Remote interface {
	TestConnection(ctx context.Context) error
	CreateOrder(ctx context.Context, req Request, idempotencyKey string) (Confirmation, error)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate rejects a payload the server would refuse, before any network
// call is made.
func Validate(req Request) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperr.Validation(err.Error())
	}
	fe := verrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Request.")
	switch fe.Tag() {
	case "required":
		return apperr.Validation(fmt.Sprintf("%s is required", field))
	case "min":
		return apperr.Validation(fmt.Sprintf("%s must not be empty", field))
	case "gt":
		return apperr.Validation(fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
	case "gte":
		return apperr.Validation(fmt.Sprintf("%s must be at least %s", field, fe.Param()))
	case "oneof":
		return apperr.Validation(fmt.Sprintf("%s must be one of %s", field, fe.Param()))
	default:
		return apperr.Validation(fmt.Sprintf("%s is invalid", field))
	}
}
