// internal/utils/validator.go
package utils

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("user_password", validateUserPassword)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// adminSpecials is the special character set admin passwords must draw from.
const adminSpecials = "@$!%*?&"

// validateStrongPassword is the admin policy: at least 8 characters from
// letters, digits and @$!%*?&, with one of each class.
func validateStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool

	for _, char := range password {
		switch {
		case char <= unicode.MaxASCII && unicode.IsUpper(char):
			hasUpper = true
		case char <= unicode.MaxASCII && unicode.IsLower(char):
			hasLower = true
		case char >= '0' && char <= '9':
			hasNumber = true
		case strings.ContainsRune(adminSpecials, char):
			hasSpecial = true
		default:
			return false
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

// validateUserPassword is the shopper/seller policy: at least 8 characters
// with an upper case letter, a lower case letter and a non-alphanumeric.
func validateUserPassword(fl validator.FieldLevel) bool {
	return IsUserPassword(fl.Field().String())
}

func IsUserPassword(password string) bool {
	if utf8.RuneCountInString(password) < 8 || strings.ContainsRune(password, '\n') {
		return false
	}

	var hasUpper, hasLower, hasSpecial bool
	for _, char := range password {
		switch {
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char == '_' || !(unicode.IsLetter(char) || unicode.IsDigit(char)):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasSpecial
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   lowerFirst(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

// HasTag reports whether any field failed the given validation tag.
func HasTag(err error, tag string) bool {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return false
	}
	for _, e := range validationErrs {
		if e.Tag() == tag {
			return true
		}
	}
	return false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must have at least " + e.Param() + " entries"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "strong_password":
		return "Password must contain at least 8 characters with uppercase, lowercase, number, and special character (@$!%*?&)"
	case "user_password":
		return "Password must contain at least 8 characters with uppercase, lowercase, and special character"
	default:
		return e.Field() + " is invalid"
	}
}
