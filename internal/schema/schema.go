// Package schema validates booking request payloads against per-product
// schemas, returning field-level errors the client can act on.
package schema

import (
	"fmt"
	"time"

	"github.com/colleco/booking-engine/internal/models"
	"github.com/colleco/booking-engine/internal/service"
)

type rule struct {
	field    string
	required bool
	kind     kind
}

type kind int

const (
	kindString kind = iota
	kindDate
	kindNumber
	kindPositiveInt
)

var productRules = map[models.ProductType][]rule{
	models.ProductAccommodation: {
		{field: "hotelName", required: true, kind: kindString},
		{field: "roomType", required: true, kind: kindString},
		{field: "startDate", required: true, kind: kindDate},
		{field: "endDate", required: true, kind: kindDate},
		{field: "nights", required: true, kind: kindPositiveInt},
		{field: "unitPrice", kind: kindNumber},
		{field: "customerName", required: true, kind: kindString},
	},
	models.ProductFlight: {
		{field: "airline", required: true, kind: kindString},
		{field: "flightNumber", required: true, kind: kindString},
		{field: "departDate", required: true, kind: kindDate},
		{field: "passengers", required: true, kind: kindPositiveInt},
		{field: "unitPrice", kind: kindNumber},
		{field: "customerName", required: true, kind: kindString},
	},
	models.ProductCar: {
		{field: "pickupLocation", required: true, kind: kindString},
		{field: "days", required: true, kind: kindPositiveInt},
		{field: "unitPrice", kind: kindNumber},
		{field: "customerName", required: true, kind: kindString},
	},
}

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns one error per failing field; an empty slice means valid.
func (v *Validator) Validate(payload map[string]any, product models.ProductType) []service.FieldError {
	var errs []service.FieldError
	rules, ok := productRules[product]
	if !ok {
		return []service.FieldError{{Field: "product", Message: "unknown product type"}}
	}

	for _, r := range rules {
		value, present := payload[r.field]
		if !present || value == nil || value == "" {
			if r.required {
				errs = append(errs, service.FieldError{Field: r.field, Message: "required"})
			}
			continue
		}
		switch r.kind {
		case kindDate:
			s, ok := value.(string)
			if !ok {
				errs = append(errs, service.FieldError{Field: r.field, Message: "must be a date string"})
				continue
			}
			if _, err := time.Parse("2006-01-02", s); err != nil {
				errs = append(errs, service.FieldError{Field: r.field, Message: "must be YYYY-MM-DD"})
			}
		case kindNumber:
			n, ok := toFloat(value)
			if !ok {
				errs = append(errs, service.FieldError{Field: r.field, Message: "must be a number"})
				continue
			}
			if n < 0 {
				errs = append(errs, service.FieldError{Field: r.field, Message: "must be >= 0"})
			}
		case kindPositiveInt:
			n, ok := toFloat(value)
			if !ok || n != float64(int(n)) {
				errs = append(errs, service.FieldError{Field: r.field, Message: "must be an integer"})
				continue
			}
			if n < 1 {
				errs = append(errs, service.FieldError{Field: r.field, Message: "must be at least 1"})
			}
		case kindString:
			if _, ok := value.(string); !ok {
				errs = append(errs, service.FieldError{Field: r.field, Message: fmt.Sprintf("must be a string, got %T", value)})
			}
		}
	}
	return errs
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
