package application

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// ErrValidation is wrapped, together with validator.ValidationErrors, by
// every failed ValidateCommand.
var ErrValidation = errors.New("validation failed")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. It knows the date_key tag;
// bounded contexts add their enum tags with MustRegisterEnum.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("date_key", validateDateKey); err != nil {
			panic(fmt.Sprintf("failed to register date_key validator: %v", err))
		}
	})
	return validate
}

// MustRegisterEnum registers tag as a string-enum validator. It panics on
// failure, so call it from init.
func MustRegisterEnum(tag string, valid func(string) bool) {
	err := Validator().RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register %s validator: %v", tag, err))
	}
}

// validateDateKey accepts canonical YYYY-MM-DD keys. Empty values are left
// to the required tag.
func validateDateKey(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || domain.DateKey(value).Valid()
}

// ValidateCommand runs struct validation on cmd.
func ValidateCommand(cmd any) error {
	if err := Validator().Struct(cmd); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// ValidationMessages renders the field errors wrapped in err, one per
// field, e.g. "Score must be at most 5".
func ValidationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return msgs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "date_key":
		return fe.Field() + " must be a YYYY-MM-DD date"
	default:
		return fmt.Sprintf("%s is not a valid %s", fe.Field(), fe.Tag())
	}
}

// SanitizeText trims whitespace and strips control characters other than
// newline and tab.
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}
	return sanitized.String()
}
