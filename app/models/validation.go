package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Messages shown to users for rejected fields.
const (
	MsgRequired     = "This field is required."
	MsgInvalidEmail = "Enter a valid email address."
	MsgInvalidEntry = "Select a valid entry."
	MsgInvalidValue = "Enter a valid value."
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire name so errors line up with form inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct validates v against its `validate` tags and converts any
// failure into a *ValidationError keyed by the fields' JSON names.
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := FieldErrors{}
	for _, e := range verrs {
		fe.Add(e.Field(), messageFor(e))
	}
	return &ValidationError{Fields: fe}
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return MsgRequired
	case "max":
		s, _ := e.Value().(string)
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", e.Param(), utf8.RuneCountInString(s))
	case "email":
		return MsgInvalidEmail
	case "gt":
		if e.Field() == "entry_id" {
			return MsgInvalidEntry
		}
	}
	return MsgInvalidValue
}
