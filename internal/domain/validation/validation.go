// Package validation holds the identifier-shape rules applied at the API
// boundary: Aadhar, mobile and bank-account numbers are fixed-shape numeric
// strings validated independently of any document lookup.
package validation

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	aadharPattern      = regexp.MustCompile(`^[0-9]{12}$`)
	mobilePattern      = regexp.MustCompile(`^[0-9]{10}$`)
	bankAccountPattern = regexp.MustCompile(`^[0-9]{9,18}$`)
)

// IsAadhar reports whether value is an exact 12-digit numeric string.
func IsAadhar(value string) bool { return aadharPattern.MatchString(value) }

// IsMobile reports whether value is an exact 10-digit numeric string.
func IsMobile(value string) bool { return mobilePattern.MatchString(value) }

// IsBankAccount reports whether value is a 9 to 18 digit numeric string.
func IsBankAccount(value string) bool { return bankAccountPattern.MatchString(value) }

// RegisterBindingRules installs the custom rules into gin's binding validator
// so request structs can declare them as tags. Call once at startup.
func RegisterBindingRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("aadhar", func(fl validator.FieldLevel) bool {
		return IsAadhar(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("inmobile", func(fl validator.FieldLevel) bool {
		return IsMobile(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("bankacct", func(fl validator.FieldLevel) bool {
		return IsBankAccount(fl.Field().String())
	})
}
