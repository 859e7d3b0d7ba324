package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// currencyCodeValidation accepts exactly three ASCII uppercase letters, the
// ISO-style code shape rates and quotes use.
func currencyCodeValidation(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// RegisterValidations installs custom binding validations on Gin's validator
// engine. Call once during startup, before handling requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("currencycode", currencyCodeValidation)
}
