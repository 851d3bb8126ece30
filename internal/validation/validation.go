package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// NewValidator returns a validator with the English translations registered
// against the returned translator. Field names in messages use the json tag
// when one is present, falling back to the struct field name.
func NewValidator() (*validator.Validate, ut.Translator) {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(jsonTagName)

	// register the validator with the translator to get clean readable generated
	// error messages from validation actions.
	_ = enTranslations.RegisterDefaultTranslations(validate, translator)

	return validate, translator
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]

	if name == "-" {
		return ""
	}

	return name
}

func TranslateError(err error, trans ut.Translator) (errs []string) {
	if err == nil {
		return nil
	}

	validationErrors := validator.ValidationErrors{}

	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			translatedErr := e.Translate(trans)
			errs = append(errs, translatedErr)
		}

		return errs
	}

	return []string{err.Error()}
}
