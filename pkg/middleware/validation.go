package middleware

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// InitValidator initializes the validator with custom validators
func InitValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		registerCustom(validate)

		// Use JSON tag names for error messages
		validate.RegisterTagNameFunc(tagName)

		// Set as Gin's default validator
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustom(v)
			v.RegisterTagNameFunc(tagName)
		}
	})

	return validate
}

// GetValidator returns the singleton validator instance
func GetValidator() *validator.Validate {
	if validate == nil {
		return InitValidator()
	}
	return validate
}

func registerCustom(v *validator.Validate) {
	_ = v.RegisterValidation("order_number", validateOrderNumber)
	_ = v.RegisterValidation("product_code", validateProductCode)
	_ = v.RegisterValidation("leave_type", validateLeaveType)
	_ = v.RegisterValidation("safe_string", validateSafeString)
}

func tagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return fld.Name
	}
	return name
}

var (
	orderNumberRegex = regexp.MustCompile(`^[A-Z]{2,4}-\d{4}-\d{4}$`)
	productCodeRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,49}$`)
)

// validateOrderNumber validates order numbers like ADM-2025-0001
func validateOrderNumber(fl validator.FieldLevel) bool {
	return orderNumberRegex.MatchString(fl.Field().String())
}

func validateProductCode(fl validator.FieldLevel) bool {
	return productCodeRegex.MatchString(fl.Field().String())
}

func validateLeaveType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "annual", "sick", "personal":
		return true
	default:
		return false
	}
}

// validateSafeString rejects strings with control characters
func validateSafeString(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, r := range s {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
