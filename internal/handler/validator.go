package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/utils"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("currency", validateCurrency)
	_ = v.RegisterValidation("payout_method", validatePayoutMethod)
	_ = v.RegisterValidation("pricing_type", validatePricingType)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "currency":
			errs[field] = "Must be an ISO 4217 currency code"
		case "payout_method":
			errs[field] = "Must be instant or standard"
		case "pricing_type":
			errs[field] = "Must be flat, tiered or tieredPercentage"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		case "dive", "unique":
			errs[field] = "Contains duplicate or invalid entries"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// Empty values pass; pair with "required" when the field is mandatory
func validateCurrency(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if code == "" {
		return true
	}
	return utils.IsCurrencyCode(strings.ToUpper(code))
}

func validatePayoutMethod(fl validator.FieldLevel) bool {
	switch domain.PayoutMethod(strings.ToLower(fl.Field().String())) {
	case domain.PayoutMethodInstant, domain.PayoutMethodStandard:
		return true
	}
	return false
}

func validatePricingType(fl validator.FieldLevel) bool {
	switch domain.PricingType(fl.Field().String()) {
	case domain.PricingFlat, domain.PricingTiered, domain.PricingTieredPercentage:
		return true
	}
	return false
}
