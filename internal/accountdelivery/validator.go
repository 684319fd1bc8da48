package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/voltsbank/volts-bank/internal/domain"
)

// ValidAccountType validates whether the account type belongs to the closed set.
var ValidAccountType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		return domain.AccountType(t).Valid()
	}

	return false
}
