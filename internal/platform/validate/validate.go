// Package validate hosts the process validator with english messages and json field names.
// bind uses it for request bodies and mapper for decoded upstream items.
package validate

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shopspring/decimal"
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// Svc holds the validator and its translator
type Svc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	once sync.Once
	svc  *Svc
)

var labelRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)*$`)

// Get returns the singleton, building it on first use
func Get() *Svc {
	once.Do(func() {
		loc := en.New()
		uni := ut.New(loc, loc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if i := strings.Index(tag, ","); i >= 0 {
				tag = tag[:i]
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		short(v, trans, "min", "{0} must be at least {1}")
		short(v, trans, "max", "{0} must be at most {1}")

		custom(v, trans, "amount", "{0} must be a decimal amount", func(fl FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			if s == "" {
				return true
			}
			_, err := decimal.NewFromString(s)
			return err == nil
		})
		custom(v, trans, "domain", "{0} must be a domain name", func(fl FieldLevel) bool {
			s := strings.ToLower(strings.TrimSpace(fl.Field().String()))
			return s != "" && labelRe.MatchString(s)
		})

		svc = &Svc{Validator: v, Translator: trans}
	})
	return svc
}

// Struct validates v and returns a perr Validation error naming the first failing field
func Struct(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Internalf("validation error")
	}
	field, msg := FieldAndMessage(err)
	return perr.WithField(perr.Validationf("%s", msg), field)
}

// Var validates a single value against a tag, e.g. Var(name, "domain")
func Var(v any, tag string) error {
	if err := Get().Validator.Var(v, tag); err != nil {
		_, msg := FieldAndMessage(err)
		return perr.Validationf("%s", strings.TrimSpace(msg))
	}
	return nil
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field(), fe.Translate(Get().Translator)
	}
	return "", err.Error()
}

func short(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

func custom(v *validator.Validate, trans ut.Translator, tag, text string, fn validator.Func) {
	_ = v.RegisterValidation(tag, fn)
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field())
			return msg
		},
	)
}
