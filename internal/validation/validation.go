// Package validation parses path and body input and turns binding failures
// into caller-facing messages.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DateLayout is the wire format of release dates.
const DateLayout = "2006-01-02"

// Error carries one message per rejected input.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

// ParseID parses a public identifier from a path segment.
func ParseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ParseDate parses a release date in DateLayout. Clock times are rejected.
func ParseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, &Error{Messages: []string{
			fmt.Sprintf("%s must be a date in the format YYYY-MM-DD, got %q", field, raw),
		}}
	}
	return t, nil
}

// FromBinding converts an error returned by gin's binding into an *Error.
func FromBinding(err error) *Error {
	var verr *Error
	if errors.As(err, &verr) {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			messages = append(messages, fieldMessage(fe))
		}
		return &Error{Messages: messages}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return &Error{Messages: []string{"request body is required"}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return &Error{Messages: []string{"request body is not valid JSON"}}
	case errors.As(err, &typeErr):
		return &Error{Messages: []string{fmt.Sprintf("%s has the wrong type", typeErr.Field)}}
	}

	return &Error{Messages: []string{err.Error()}}
}

// RegisterJSONTagNames makes v report fields by their JSON names.
func RegisterJSONTagNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	// Drop the struct name: "createChannelRequest.videos[0].name" -> "videos[0].name"
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in the format YYYY-MM-DD", field)
	default:
		return fmt.Sprintf("%s failed the %s check", field, fe.Tag())
	}
}
