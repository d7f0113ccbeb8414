// Package validation checks request payloads and search parameters before
// they reach the services. Every failure is an apperrors Validation error
// whose message names the offending field.
package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"techmarket/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator wraps go-playground/validator with the catalog's rules and messages.
type Validator struct {
	validate *validator.Validate
}

// Creatable is a creation payload that can report its absent required fields.
type Creatable interface {
	MissingFields() []string
}

// New creates a Validator with the json field names and the simple_email
// and cents rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("cents", cents); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// cents accepts amounts a NUMERIC(10,2) column stores without rounding.
// The shortest decimal form of the float is the literal the client sent.
func cents(fl validator.FieldLevel) bool {
	formatted := strconv.FormatFloat(fl.Field().Float(), 'f', -1, 64)
	dot := strings.IndexByte(formatted, '.')
	return dot < 0 || len(formatted)-dot-1 <= 2
}

// Create validates a creation payload. All missing required fields are
// reported together; otherwise the first failing field rule is reported.
func (v *Validator) Create(in Creatable) error {
	if missing := in.MissingFields(); len(missing) > 0 {
		return apperrors.Validation("Missing required fields: " + strings.Join(missing, ", "))
	}
	return v.Struct(in)
}

// CreateBody validates a creation payload after decoding. A body that fails
// to decode on a field type still reports absent required fields first; a
// key sent with a wrongly typed value counts as present.
func (v *Validator) CreateBody(body []byte, decodeErr error, in Creatable) error {
	if decodeErr == nil {
		return v.Create(in)
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(decodeErr, &typeErr) {
		return DecodeError(decodeErr, in)
	}
	var sent map[string]json.RawMessage
	if err := json.Unmarshal(body, &sent); err != nil {
		return DecodeError(decodeErr, in)
	}
	var missing []string
	for _, field := range in.MissingFields() {
		if raw, ok := sent[field]; !ok || string(raw) == "null" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return apperrors.Validation("Missing required fields: " + strings.Join(missing, ", "))
	}
	return DecodeError(decodeErr, in)
}

// Struct validates the fields present in a payload, failing on the first
// violation in declaration order.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Validation(err.Error())
	}
	fe := fieldErrs[0]
	return apperrors.ValidationField(fe.Field(), fieldMessage(s, fe.StructField(), fe.Field(), fe.Tag()))
}

// DecodeError turns a body decoding failure into a Validation error. Type
// mismatches on a known field report that field's message.
func DecodeError(err error, target interface{}) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		if name, ok := structFieldByJSON(target, typeErr.Field); ok {
			return apperrors.ValidationField(typeErr.Field, fieldMessage(target, name, typeErr.Field, ""))
		}
	}
	e := apperrors.Validation("Invalid request body")
	e.Err = err
	return e
}

func fieldMessage(s interface{}, structField, jsonField, rule string) string {
	if f, ok := structType(s).FieldByName(structField); ok {
		if msg := f.Tag.Get("range"); msg != "" && (rule == "lte" || rule == "cents") {
			return msg
		}
		if msg := f.Tag.Get("message"); msg != "" {
			return msg
		}
	}
	return "Invalid value for field '" + jsonField + "'"
}

func structFieldByJSON(s interface{}, name string) (string, bool) {
	t := structType(s)
	if t.Kind() != reflect.Struct {
		return "", false
	}
	for i := 0; i < t.NumField(); i++ {
		if jsonName(t.Field(i)) == name {
			return t.Field(i).Name, true
		}
	}
	return "", false
}

func structType(s interface{}) reflect.Type {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return reflect.TypeOf(struct{}{})
	}
	return t
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
