package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func requiredValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			if !value.IsValid() {
				return false
			}
			switch value.Kind() {
			case reflect.String:
				return strings.TrimSpace(value.String()) != ""
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			default:
				return !value.IsZero()
			}
		},
		Error: FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s is required", displayName(field)),
		},
	}
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}

	switch value.Kind() {
	case reflect.String:
		min, err := strconv.Atoi(params[0])
		if err != nil {
			return pass()
		}
		return Rule{
			Check: func() bool { return len(value.String()) >= min },
			Error: FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at least %d characters", displayName(field), min),
			},
		}
	case reflect.Slice, reflect.Array:
		min, err := strconv.Atoi(params[0])
		if err != nil {
			return pass()
		}
		return Rule{
			Check: func() bool { return value.Len() >= min },
			Error: FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must have at least %d items", displayName(field), min),
			},
		}
	default:
		min, ok := floatParam(params[0])
		if !ok {
			return pass()
		}
		return Rule{
			Check: func() bool {
				n, ok := numericValue(value)
				return ok && n >= min
			},
			Error: FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at least %s", displayName(field), params[0]),
			},
		}
	}
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}

	switch value.Kind() {
	case reflect.String:
		max, err := strconv.Atoi(params[0])
		if err != nil {
			return pass()
		}
		return Rule{
			Check: func() bool { return len(value.String()) <= max },
			Error: FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at most %d characters", displayName(field), max),
			},
		}
	case reflect.Slice, reflect.Array:
		max, err := strconv.Atoi(params[0])
		if err != nil {
			return pass()
		}
		return Rule{
			Check: func() bool { return value.Len() <= max },
			Error: FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must have at most %d items", displayName(field), max),
			},
		}
	default:
		max, ok := floatParam(params[0])
		if !ok {
			return pass()
		}
		return Rule{
			Check: func() bool {
				n, ok := numericValue(value)
				return ok && n <= max
			},
			Error: FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at most %s", displayName(field), params[0]),
			},
		}
	}
}

func betweenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 2 {
		return pass()
	}
	lo, okLo := floatParam(params[0])
	hi, okHi := floatParam(params[1])
	if !okLo || !okHi {
		return pass()
	}

	if value.Kind() == reflect.String {
		return Rule{
			Check: func() bool {
				n := float64(len(value.String()))
				return n >= lo && n <= hi
			},
			Error: FieldError{
				Field: field,
				Message: fmt.Sprintf("%s must be between %s and %s characters",
					displayName(field), params[0], params[1]),
			},
		}
	}

	return Rule{
		Check: func() bool {
			n, ok := numericValue(value)
			return ok && n >= lo && n <= hi
		},
		Error: FieldError{
			Field: field,
			Message: fmt.Sprintf("%s must be between %s and %s",
				displayName(field), params[0], params[1]),
		},
	}
}

func emailValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			if value.Kind() != reflect.String {
				return false
			}
			return emailRe.MatchString(value.String())
		},
		Error: FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be a valid email address", displayName(field)),
		},
	}
}

func uuidValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			if value.Kind() != reflect.String {
				return false
			}
			_, err := uuid.Parse(value.String())
			return err == nil
		},
		Error: FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be a valid UUID", displayName(field)),
		},
	}
}

func numericValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			if _, ok := numericValue(value); ok {
				return true
			}
			if value.Kind() != reflect.String {
				return false
			}
			_, err := strconv.ParseFloat(value.String(), 64)
			return err == nil
		},
		Error: FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be numeric", displayName(field)),
		},
	}
}

func alphanumValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			if value.Kind() != reflect.String {
				return false
			}
			s := value.String()
			if s == "" {
				return false
			}
			for _, r := range s {
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					return false
				}
			}
			return true
		},
		Error: FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must contain only letters and digits", displayName(field)),
		},
	}
}

func inValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) == 0 {
		return pass()
	}
	return Rule{
		Check: func() bool {
			return slices.Contains(params, stringValue(value))
		},
		Error: FieldError{
			Field: field,
			Message: fmt.Sprintf("%s must be one of: %s",
				displayName(field), strings.Join(params, ", ")),
		},
	}
}

func regexValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	re, err := regexp.Compile(params[0])
	if err != nil {
		return pass()
	}
	return Rule{
		Check: func() bool {
			return value.Kind() == reflect.String && re.MatchString(value.String())
		},
		Error: FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s has an invalid format", displayName(field)),
		},
	}
}

// numericValue widens any numeric kind to float64.
func numericValue(value reflect.Value) (float64, bool) {
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(value.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(value.Uint()), true
	case reflect.Float32, reflect.Float64:
		return value.Float(), true
	default:
		return 0, false
	}
}

// stringValue renders a scalar value the way a client would have sent it.
func stringValue(value reflect.Value) string {
	switch value.Kind() {
	case reflect.String:
		return value.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(value.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(value.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(value.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(value.Bool())
	default:
		return ""
	}
}

func floatParam(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
