package address

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wichananm65/ride-shop-client/internal/domain/apperr"
)

// Address is a saved delivery address.
type Address struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" validate:"required"`
	Phone        string   `json:"phone" validate:"required"`
	AddressLine1 string   `json:"addressLine1" validate:"required"`
	AddressLine2 string   `json:"addressLine2,omitempty"`
	City         string   `json:"city" validate:"required"`
	State        string   `json:"state" validate:"required"`
	Pincode      string   `json:"pincode" validate:"required,numeric,len=6"`
	Country      string   `json:"country" validate:"required"`
	IsDefault    bool     `json:"isDefault"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// Patch lists the fields UpdateAddress may change; nil means unchanged.
type Patch struct {
	Name         *string  `json:"name,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	AddressLine1 *string  `json:"addressLine1,omitempty"`
	AddressLine2 *string  `json:"addressLine2,omitempty"`
	City         *string  `json:"city,omitempty"`
	State        *string  `json:"state,omitempty"`
	Pincode      *string  `json:"pincode,omitempty"`
	Country      *string  `json:"country,omitempty"`
	IsDefault    *bool    `json:"isDefault,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

func (p Patch) apply(a Address) Address {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&a.Name, p.Name)
	set(&a.Phone, p.Phone)
	set(&a.AddressLine1, p.AddressLine1)
	set(&a.AddressLine2, p.AddressLine2)
	set(&a.City, p.City)
	set(&a.State, p.State)
	set(&a.Pincode, p.Pincode)
	set(&a.Country, p.Country)
	if p.IsDefault != nil {
		a.IsDefault = *p.IsDefault
	}
	if p.Latitude != nil {
		a.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		a.Longitude = p.Longitude
	}
	return a
}

func (a Address) normalized() Address {
	a.Name = strings.TrimSpace(a.Name)
	a.Phone = strings.TrimSpace(a.Phone)
	a.AddressLine1 = strings.TrimSpace(a.AddressLine1)
	a.AddressLine2 = strings.TrimSpace(a.AddressLine2)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.Pincode = strings.TrimSpace(a.Pincode)
	a.Country = strings.TrimSpace(a.Country)
	if a.Country == "" {
		a.Country = DefaultCountry
	}
	return a
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

// Validate checks the fields required for delivery.
func Validate(a Address) error {
	err := validate.Struct(a)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperr.Validation(err.Error())
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperr.Validation(fmt.Sprintf("%s is required", fe.Field()))
	case "numeric", "len":
		return apperr.Validation(fmt.Sprintf("%s must be a 6-digit number", fe.Field()))
	default:
		return apperr.Validation(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}
