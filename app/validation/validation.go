package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mytheresa/catalog-admin/app/i18n"
)

// FieldError is the first failed rule for a form field.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

// Errors maps a form field name to its first failed rule.
type Errors map[string]FieldError

// Add records fe unless the field already failed an earlier rule.
func (e Errors) Add(fe FieldError) {
	if _, ok := e[fe.Field]; !ok {
		e[fe.Field] = fe
	}
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		fe := e[field]
		if fe.Param != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", field, fe.Rule, fe.Param))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, fe.Rule))
		}
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Translate looks up a catalog message.
type Translate func(key string, args ...any) string

// Messages renders every error through t. When scope is set, a message
// registered as "<scope>.<field>.<rule>" wins over the generic rule text.
func (e Errors) Messages(t Translate, scope string) map[string]string {
	out := make(map[string]string, len(e))
	for field, fe := range e {
		if scope != "" {
			key := scope + "." + field + "." + fe.Rule
			if i18n.Has(key) {
				out[field] = t(key)
				continue
			}
		}

		rule := "validation." + fe.Rule
		if !i18n.Has(rule) {
			rule = "validation.invalid"
		}
		label := t("field." + field)
		if fe.Param == "" {
			out[field] = t(rule, label)
		} else {
			out[field] = t(rule, label, strings.ReplaceAll(fe.Param, ",", ", "))
		}
	}
	return out
}

// Validator checks bound form structs against their validate tags and
// reports fields by their form tag name.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s. A nil Errors means s is valid; the error is only
// set when s cannot be validated at all.
func (v *Validator) Struct(s any) (Errors, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}

	errs := Errors{}
	for _, fe := range validationErrors {
		errs.Add(FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return errs, nil
}
