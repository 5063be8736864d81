package core

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DateLayout is the calendar-date wire format.
const DateLayout = "2006-01-02"

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	calendarDateTag  = "calendardate"
	calendarDateText = "must be a calendar date (YYYY-MM-DD)"

	oneOfTag  = "oneof"
	oneOfText = "must be one of: {0}"

	requiredTag  = "required"
	requiredText = "this field is required"
)

func init() {
	Validate = validator.New()
	enLocale := en.New()
	Translator, _ = ut.New(enLocale, enLocale).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(calendarDateTag, calendarDateValidation)
	RegisterCustomTranslation(calendarDateTag, calendarDateText)
	RegisterCustomTranslation(requiredTag, requiredText, true)
	registerOneOfTranslation()
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func registerOneOfTranslation() {
	_ = Validate.RegisterTranslation(
		oneOfTag, Translator,
		func(t ut.Translator) error { return t.Add(oneOfTag, oneOfText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(oneOfTag, strings.Join(strings.Fields(fe.Param()), ", "))
			return s
		},
	)
}

// ValidateStruct validates `s` and converts validator errors into a *ValidationError.
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(Translator)})
	}
	return NewValidationError(nil, flds...)
}

// Custom Global Validators

// calendarDateValidation only allows YYYY-MM-DD dates.
func calendarDateValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}
