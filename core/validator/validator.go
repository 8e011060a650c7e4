package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Rule pairs a check with the violation reported when the check fails.
type Rule struct {
	Check func() bool
	Error FieldError
}

// pass is the no-op rule used when a rule declaration cannot apply.
func pass() Rule {
	return Rule{Check: func() bool { return true }}
}

// ValidatorFunc builds a Rule for a field value. field is the wire name of
// the field; params are the rule parameters from the tag.
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"between":  betweenValidator,
		"email":    emailValidator,
		"uuid":     uuidValidator,
		"numeric":  numericValidator,
		"alphanum": alphanumValidator,
		"in":       inValidator,
		"regex":    regexValidator,
	}
)

// Register adds a custom validator function to the registry, replacing any
// existing rule with the same name.
func Register(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct validates a struct (or pointer to struct) against its
// `validate` tags, then runs Validatable.Validate when implemented.
// Returns nil or Errors listing every violation.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("%w: cannot validate nil pointer", ErrValidation)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a struct", ErrValidation)
	}

	var violations Errors
	validateStructRecursive(rv, "", &violations)

	if validatable, ok := v.(Validatable); ok {
		if err := validatable.Validate(); err != nil {
			var fieldErrs Errors
			if errors.As(err, &fieldErrs) {
				violations = append(violations, fieldErrs...)
			} else {
				violations = append(violations, FieldError{Field: "", Message: err.Error()})
			}
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return violations
}

func validateStructRecursive(rv reflect.Value, prefix string, violations *Errors) {
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		structField := rt.Field(i)

		if !structField.IsExported() {
			continue
		}

		tag := structField.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		fieldPath := wireName(structField)
		if prefix != "" {
			fieldPath = prefix + "." + fieldPath
		}

		// Descend into untagged nested structs
		if field.Kind() == reflect.Struct && tag == "" {
			validateStructRecursive(field, fieldPath, violations)
			continue
		}

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if tag != "" {
					validateField(fieldPath, field, tag, violations)
				}
			} else {
				elem := field.Elem()
				if elem.Kind() == reflect.Struct && tag == "" {
					validateStructRecursive(elem, fieldPath, violations)
				} else if tag != "" {
					validateField(fieldPath, elem, tag, violations)
				}
			}
			continue
		}

		if tag == "" {
			continue
		}

		validateField(fieldPath, field, tag, violations)
	}
}

func validateField(fieldPath string, field reflect.Value, tag string, violations *Errors) {
	rules := strings.Split(tag, ";")

	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, ruleStr := range rules {
		ruleStr = strings.TrimSpace(ruleStr)
		if ruleStr == "" {
			continue
		}

		parts := strings.SplitN(ruleStr, ":", 2)
		ruleName := strings.TrimSpace(parts[0])

		var params []string
		if len(parts) > 1 {
			paramStr := strings.TrimSpace(parts[1])
			if paramStr != "" {
				params = strings.Split(paramStr, ",")
				for i := range params {
					params[i] = strings.TrimSpace(params[i])
				}
			}
		}

		if validatorFn, ok := registry[ruleName]; ok {
			rule := validatorFn(fieldPath, field, params)
			if rule.Check != nil && !rule.Check() {
				*violations = append(*violations, rule.Error)
			}
		}
	}
}

// wireName resolves the client-facing field name: json tag, then query tag,
// then the lowercased Go name.
func wireName(field reflect.StructField) string {
	for _, tagName := range []string{"json", "query"} {
		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			return name
		}
	}
	return strings.ToLower(field.Name)
}

// displayName renders a field path for human-readable messages:
// the last path segment with its first letter upper-cased.
func displayName(fieldPath string) string {
	name := fieldPath
	if idx := strings.LastIndex(fieldPath, "."); idx >= 0 {
		name = fieldPath[idx+1:]
	}
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
