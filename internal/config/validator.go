package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var hhmmPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("hhmm", isWallClockTime); err != nil {
		return nil, nil, fmt.Errorf("failed to register hhmm validation: %w", err)
	}
	if err := validate.RegisterTranslation("hhmm", trans, func(ut ut.Translator) error {
		return ut.Add("hhmm", "{0} must be a wall clock time in HH:MM format", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("hhmm", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register hhmm translation: %w", err)
	}

	return validate, trans, nil
}

func isWallClockTime(fl validator.FieldLevel) bool {
	return hhmmPattern.MatchString(fl.Field().String())
}
