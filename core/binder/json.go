package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// JSON decodes body bytes into v, which must be a non-nil pointer.
// Malformed JSON and schema mismatches are reported as *DecodeError with the
// offending JSON path where the encoding/json error carries one.
func JSON(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return newDecodeError(ErrInvalidTarget, "", "target must be a non-nil pointer")
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return newDecodeError(ErrFailedToParseJSON, "", "request body is empty")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return jsonDecodeError(err)
	}

	// Reject trailing content after the first JSON value.
	if dec.More() {
		return newDecodeError(ErrFailedToParseJSON, "", "unexpected trailing data after JSON value")
	}

	return nil
}

// jsonDecodeError maps encoding/json errors to *DecodeError, preserving
// field paths where available.
func jsonDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = strings.ToLower(typeErr.Struct)
		}
		return newDecodeError(ErrFailedToParseJSON, field,
			fmt.Sprintf("cannot decode %s into %s", typeErr.Value, typeErr.Type))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return newDecodeError(ErrFailedToParseJSON, "",
			fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset))
	}

	return newDecodeError(ErrFailedToParseJSON, "", "invalid JSON payload")
}
