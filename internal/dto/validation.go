package dto

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	collegeCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)
	phonePattern       = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	usernamePattern    = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
)

// Batch year bounds
const (
	MinBatchYear = 2000
	MaxBatchYear = 2100
)

// RegisterValidations installs the custom tags used by request DTOs and reports
// field errors under their JSON names.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	rules := map[string]validator.Func{
		"collegecode": matchString(collegeCodePattern),
		"phone":       matchString(phonePattern),
		"username":    matchString(usernamePattern),
		"batchyear": func(fl validator.FieldLevel) bool {
			y := fl.Field().Int()
			return y >= MinBatchYear && y <= MaxBatchYear
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}
