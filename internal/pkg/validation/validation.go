package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
)

var translator ut.Translator

// Setup registers English messages, JSON field names and the custom rules on v.
// It is called once on gin's binding engine at startup.
func Setup(v *validator.Validate) error {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")

	if err := en_translations.RegisterDefaultTranslations(v, translator); err != nil {
		return fmt.Errorf("register default translations: %w", err)
	}

	// Use JSON (or form) tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return ""
	})

	rules := map[string]struct {
		fn   validator.Func
		text string
	}{
		clockTimeTag: {clockTime, clockTimeText},
		notBlankTag:  {notBlank, notBlankText},
	}
	for tag, rule := range rules {
		if err := v.RegisterValidation(tag, rule.fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
		text := rule.text
		err := v.RegisterTranslation(tag, translator,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(fe.Tag(), fe.Field())
				return msg
			})
		if err != nil {
			return fmt.Errorf("translate %s: %w", tag, err)
		}
	}
	return nil
}

// FieldErrors converts a binding error into per-field messages
func FieldErrors(err error) []apperrors.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{Field: fieldPath(fe), Message: fe.Translate(translator)})
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []apperrors.FieldError{{Field: typeErr.Field, Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []apperrors.FieldError{{Field: "body", Message: "malformed JSON"}}
	}

	return []apperrors.FieldError{{Field: "body", Message: err.Error()}}
}

// fieldPath drops the top-level struct name from the namespace, "Req.recipientIds[0]" -> "recipientIds[0]"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// BindingError wraps a bind/validate failure into a VALIDATION application error
func BindingError(err error) error {
	return apperrors.Validation("Validation failed", FieldErrors(err)...)
}
