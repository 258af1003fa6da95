// Package validation wraps go-playground/validator with per-entity message
// tables so that field errors read the same way across every resource.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const (
	RuleRequired = "required"
	RuleNumeric  = "numeric"
	RuleString   = "string"
	RuleDate     = "date"
	RuleAfter    = "after"
	RuleEmail    = "email"
	RuleMax      = "max"
	RuleMin      = "min"
	RuleIn       = "in"
	RuleUnique   = "unique"
)

// tagRules maps validator tags onto rule names used as message keys.
var tagRules = map[string]string{
	"required":      RuleRequired,
	"filled":        RuleRequired,
	"calendar_date": RuleDate,
	"email":         RuleEmail,
	"max":           RuleMax,
	"gte":           RuleMin,
	"min":           RuleMin,
	"oneof":         RuleIn,
}

// Messages is keyed by "<field>.<rule>", e.g. "room_id.required".
type Messages map[string]string

// For returns the configured message or a generic one built from the rule.
func (m Messages) For(field, rule, param string) string {
	if msg, ok := m[field+"."+rule]; ok {
		return strings.ReplaceAll(msg, ":min", param)
	}

	name := strings.ReplaceAll(field, "_", " ")
	switch rule {
	case RuleRequired:
		return fmt.Sprintf("The %s field is required.", name)
	case RuleNumeric:
		return fmt.Sprintf("The %s must be a number.", name)
	case RuleString:
		return fmt.Sprintf("The %s must be a string.", name)
	case RuleDate:
		return fmt.Sprintf("The %s is not a valid date.", name)
	case RuleEmail:
		return fmt.Sprintf("The %s must be a valid email address.", name)
	case RuleMax:
		return fmt.Sprintf("The %s may not be greater than %s characters.", name, param)
	case RuleMin:
		return fmt.Sprintf("The %s must be at least %s.", name, param)
	case RuleIn:
		return fmt.Sprintf("The selected %s is invalid.", name)
	case RuleUnique:
		return fmt.Sprintf("The %s has already been taken.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}

// TypeRule names the rule broken when a JSON value has the wrong type for t.
func TypeRule(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return RuleNumeric
	case reflect.String:
		return RuleString
	default:
		return ""
	}
}

type Validator struct {
	validate *validator.Validate
	messages Messages
}

func New(log *logger.Logger, messages Messages) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("calendar_date", validateCalendarDate); err != nil {
		log.Fatal("Failed to register 'calendar_date' validator", "error", err)
	}
	if err := v.RegisterValidation("filled", validateFilled); err != nil {
		log.Fatal("Failed to register 'filled' validator", "error", err)
	}

	return &Validator{
		validate: v,
		messages: messages,
	}
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := ParseDate(s)
	return err == nil
}

// validateFilled rejects blank strings. A non-nil pointer to "" satisfies
// "required", so string fields carry both tags.
func validateFilled(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && strings.TrimSpace(s) != ""
}

func (v *Validator) Messages() Messages {
	return v.messages
}

// typeErrorCarrier is implemented by inputs whose body members failed to
// decode; see model.Decoded.
type typeErrorCarrier interface {
	TypeErrors() apperrors.FieldErrors
}

// Struct validates s and returns every violated field. A nil map means s is
// valid. Decode failures carried by s are reported first and suppress the rule
// violations of the same field.
func (v *Validator) Struct(s any) (apperrors.FieldErrors, error) {
	var typeErrs apperrors.FieldErrors
	if carrier, ok := s.(typeErrorCarrier); ok {
		typeErrs = carrier.TypeErrors()
	}

	err := v.validate.Struct(s)
	if err == nil && len(typeErrs) == 0 {
		return nil, nil
	}

	fields := apperrors.FieldErrors{}
	for field, messages := range typeErrs {
		fields[field] = append(fields[field], messages...)
	}
	if err == nil {
		return fields, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, fmt.Errorf("validate %T: %w", s, err)
	}

	for _, fe := range validationErrs {
		if typeErrs.Has(fe.Field()) {
			continue
		}
		rule, ok := tagRules[fe.Tag()]
		if !ok {
			rule = fe.Tag()
		}
		fields.Add(fe.Field(), v.messages.For(fe.Field(), rule, fe.Param()))
	}
	return fields, nil
}
