package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/timezone"
)

// HHMM accepts strings that parse as a 24 hour HH:MM clock time.
func HHMM(fl validator.FieldLevel) bool {
	_, err := domain.ParseClock(fl.Field().String())
	return err == nil
}

// ISODate accepts YYYY-MM-DD calendar dates.
func ISODate(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String(), nil)
	return err == nil
}

// IANATimezone accepts zone names such as Europe/Lisbon.
func IANATimezone(fl validator.FieldLevel) bool {
	return timezone.IsValid(fl.Field().String())
}

// Register installs the custom rules on gin's binding validator. Empty
// values are left to omitempty/required. A nil resolver limits emaildomain
// to a shape check.
func Register(resolver Resolver) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v, resolver)
}

func RegisterOn(v *validator.Validate, resolver Resolver) error {
	rules := map[string]validator.Func{
		"hhmm":        HHMM,
		"isodate":     ISODate,
		"iana_tz":     IANATimezone,
		"emaildomain": NewEmailDomain(resolver).Validate,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
