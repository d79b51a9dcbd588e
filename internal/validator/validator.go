// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"smartfinance/internal/analytics"
)

var payeeAddressRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._@-]{2,63}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("risk_profile", validateRiskProfile)
		_ = v.RegisterValidation("payee_address", validatePayeeAddress)
		_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
		_ = v.RegisterValidation("nonnegative_amount", validateNonNegativeAmount)
	}
}

func validateRiskProfile(fl validator.FieldLevel) bool {
	_, err := analytics.ParseRiskProfile(fl.Field().String())
	return err == nil
}

func validatePayeeAddress(fl validator.FieldLevel) bool {
	return payeeAddressRegex.MatchString(fl.Field().String())
}

func validatePositiveAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.IsPositive()
}

func validateNonNegativeAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !d.IsNegative()
}
