package session

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MessageFunc turns a validator failure into a human readable message.
type MessageFunc func(validator.FieldError) string

var tagMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"url":      "must be a valid URL",
	"uuid":     "must be a valid UUID",
	"numeric":  "must contain numeric values only",
	"alpha":    "must contain ASCII alpha characters only",
	"alphanum": "must contain ASCII alphanumeric characters only",
	"datetime": "must be a valid date",
	"oneof":    "must be one of",
	"eqfield":  "must be equal to",
	"nefield":  "must not be equal to",
	"gt":       "must be greater than",
	"gte":      "must be greater than or equal to",
	"lt":       "must be less than",
	"lte":      "must be less than or equal to",
}

var lengthMessages = map[string]string{
	"len": "must be",
	"min": "must be at least",
	"max": "must be at most",
}

// DefaultMessage renders a validator failure as "<field> <rule phrase>".
func DefaultMessage(fe validator.FieldError) string {
	field := trimIndex(fe.Field())
	tag := fe.Tag()
	param := fe.Param()

	if phrase, ok := lengthMessages[tag]; ok {
		if fe.Kind() == reflect.String {
			unit := "characters"
			if param == "1" {
				unit = "character"
			}
			return fmt.Sprintf("%s %s %s %s long", field, phrase, param, unit)
		}
		return fmt.Sprintf("%s %s %s", field, phrase, param)
	}
	if phrase, ok := tagMessages[tag]; ok {
		if param != "" {
			return fmt.Sprintf("%s %s %s", field, phrase, param)
		}
		return fmt.Sprintf("%s %s", field, phrase)
	}
	return fmt.Sprintf("%s is invalid", field)
}

// FromValidation converts validator.ValidationErrors found in err into an
// ErrorBag keyed by the reported field name. ok is false when err carries no
// validation errors. A nil message func uses DefaultMessage.
func FromValidation(err error, message MessageFunc) (ErrorBag, bool) {
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return ErrorBag{}, false
	}
	if message == nil {
		message = DefaultMessage
	}
	bag := NewErrorBag()
	for _, fe := range failures {
		bag.Add(fieldKey(fe), message(fe))
	}
	return bag, true
}

// fieldKey strips the top level struct from the namespace so nested fields
// read "address.city" rather than "Form.address.city". A trailing element
// index is dropped: "roles[1]" is reported under "roles".
func fieldKey(fe validator.FieldError) string {
	key := fe.Field()
	if ns := fe.Namespace(); strings.IndexByte(ns, '.') >= 0 {
		key = ns[strings.IndexByte(ns, '.')+1:]
	}
	return trimIndex(key)
}

func trimIndex(key string) string {
	if strings.HasSuffix(key, "]") {
		if idx := strings.LastIndexByte(key, '['); idx > 0 {
			return key[:idx]
		}
	}
	return key
}
