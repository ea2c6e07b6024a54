package schemas

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewStructValidator returns a validator that reports fields by their yaml
// names, so error paths match the document.
func NewStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// tagMessages are the messages for the validator tags used by the model
var tagMessages = map[string]string{
	"required": "Field required",
	"email":    "value is not a valid email address",
	"url":      "Input should be a valid URL",
	"http_url": "Input should be a valid URL",
	"datetime": "Input should be a valid date",
	"dive":     "Input is not valid",
}

// FromStructErrors converts the error returned by (*validator.Validate).Struct
// into FieldErrors located under base. custom supplies messages for
// application-registered tags; anything else falls back to a generic message.
// Errors that are not validator.ValidationErrors are returned unchanged.
func FromStructErrors(err error, base Path, custom map[string]string) ([]FieldError, error) {
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Path:    base.Join(namespacePath(fe.Namespace())),
			Code:    codeForTag(fe.Tag()),
			Message: messageForTag(fe, custom),
			Input:   inputString(fe.Value()),
		})
	}
	return out, nil
}

func codeForTag(tag string) Code {
	switch tag {
	case "required":
		return CodeMissing
	case "oneof":
		return CodeEnum
	case "email", "url", "http_url", "datetime":
		return CodePattern
	}
	return CodeOther
}

func messageForTag(fe validator.FieldError, custom map[string]string) string {
	if msg, ok := custom[fe.Tag()]; ok {
		return msg
	}
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	if fe.Tag() == "oneof" {
		return fmt.Sprintf("Input should be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}

// namespacePath turns "Cv.social_networks[0].username" into
// social_networks, 0, username. The leading struct name is dropped.
func namespacePath(ns string) Path {
	parts := strings.Split(ns, ".")
	if len(parts) > 0 {
		parts = parts[1:]
	}
	var path Path
	for _, part := range parts {
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				path = append(path, Key(part))
				break
			}
			if open > 0 {
				path = append(path, Key(part[:open]))
			}
			closing := strings.IndexByte(part[open:], ']')
			if closing < 0 {
				path = append(path, Key(part[open:]))
				break
			}
			inner := part[open+1 : open+closing]
			if i, err := strconv.Atoi(inner); err == nil {
				path = append(path, Index(i))
			} else {
				path = append(path, Key(inner))
			}
			part = part[open+closing+1:]
		}
	}
	return path
}

func inputString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Map, reflect.Slice, reflect.Struct, reflect.Ptr:
			return "..."
		}
		return fmt.Sprint(v)
	}
}
