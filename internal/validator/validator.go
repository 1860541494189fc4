package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/venky2135/pg-management-system/internal/model"
)

var (
	once     sync.Once
	validate *govalidator.Validate
	// trans is the singleton English translator for validation errors.
	trans ut.Translator
)

// Setup builds the shared validator with English translations.
// Calling it more than once is a no-op; the helpers below call it lazily.
func Setup() {
	once.Do(setup)
}

func setup() {
	validate = govalidator.New()

	// Use JSON tag name for field names in error messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register English translations.
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	_ = validate.RegisterValidation("payment_mode", func(fl govalidator.FieldLevel) bool {
		return model.PaymentMode(fl.Field().String()).Valid()
	})
	_ = validate.RegisterTranslation("payment_mode", trans,
		func(tr ut.Translator) error {
			return tr.Add("payment_mode", "{0} must be one of "+joinModes(), true)
		},
		func(tr ut.Translator, fe govalidator.FieldError) string {
			msg, _ := tr.T("payment_mode", fe.Field())
			return msg
		},
	)
}

func joinModes() string {
	names := make([]string, len(model.PaymentModes))
	for i, m := range model.PaymentModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// Struct validates v against its `validate` tags.
// Returns nil on success or a translated field error map on failure.
func Struct(v interface{}) map[string]string {
	Setup()
	if err := validate.Struct(v); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

// Var validates a single value against a tag expression such as "gt=0".
func Var(field interface{}, tag string) error {
	Setup()
	return validate.Var(field, tag)
}

// TranslateErrors takes a validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	Setup()
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

// First returns the message of the first field in order that has one,
// falling back to any message so a failure is never reported as empty.
func First(fields map[string]string, order ...string) string {
	for _, name := range order {
		if msg, ok := fields[name]; ok {
			return msg
		}
	}
	for _, msg := range fields {
		return msg
	}
	return ""
}
