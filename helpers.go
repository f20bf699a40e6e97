package lenum

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

///////////////////////////////////////////////////////////////////////////////
// Helpers
///////////////////////////////////////////////////////////////////////////////

// Set a non-enum field from a gjson value, with type conversion.
//
// Currently supports:
//   - string fields
//   - int/uint fields (with overflow checking)
//   - bool fields (including common textual representations)
//   - float fields (with overflow checking)
//   - uuid.UUID fields
//   - time.Time fields (RFC3339 plus common formats)
//   - []byte fields (raw byte slice)
//   - TextUnmarshaler support for custom types
//   - interface{} support for any type
func setFieldValue(field reflect.Value, result gjson.Result) error {
	if result.Type == gjson.Null {
		return handleNullValue(field)
	}

	// Special struct types take precedence over their own
	// TextUnmarshaler implementations so the format ladder applies.
	if field.Kind() == reflect.Struct && isSpecialStructType(field.Type()) {
		return setStructValue(field, result.String())
	}

	// Check for TextUnmarshaler interface
	if field.CanInterface() {
		if unmarshaler, ok := field.Interface().(encoding.TextUnmarshaler); ok {
			return unmarshaler.UnmarshalText([]byte(result.String()))
		}
		// Check for pointer to TextUnmarshaler
		if field.CanAddr() {
			if unmarshaler, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
				return unmarshaler.UnmarshalText([]byte(result.String()))
			}
		}
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(result.String())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setIntValue(field, result.String())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return setUintValue(field, result.String())
	case reflect.Float32, reflect.Float64:
		return setFloatValue(field, result.String())
	case reflect.Bool:
		return setBoolValue(field, result.String())
	case reflect.Slice:
		return setSliceValue(field, result.String())
	case reflect.Array:
		return setArrayValue(field, result.String())
	case reflect.Struct:
		return setStructValue(field, result.String())
	case reflect.Ptr:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setFieldValue(field.Elem(), result)
	case reflect.Interface:
		return setInterfaceValue(field, result)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Type().Name())
	}
}

// handleNullValue handles JSON null for different field types
func handleNullValue(field reflect.Value) error {
	switch field.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Ptr, reflect.Interface:
		field.SetZero()
		return nil
	default:
		return fmt.Errorf("cannot set null value for field type: %s", field.Type().Name())
	}
}

// setIntValue sets integer field values with overflow checking
func setIntValue(field reflect.Value, value string) error {
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("error converting value to int: %w", err)
	}

	if field.OverflowInt(intValue) {
		return fmt.Errorf("value %d overflows %s", intValue, field.Type().Name())
	}

	field.SetInt(intValue)
	return nil
}

// setUintValue sets unsigned integer field values with overflow checking
func setUintValue(field reflect.Value, value string) error {
	uintValue, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return fmt.Errorf("error converting value to uint: %w", err)
	}

	if field.OverflowUint(uintValue) {
		return fmt.Errorf("value %d overflows %s", uintValue, field.Type().Name())
	}

	field.SetUint(uintValue)
	return nil
}

// setFloatValue sets float field values with overflow checking
func setFloatValue(field reflect.Value, value string) error {
	floatValue, err := strconv.ParseFloat(value, field.Type().Bits())
	if err != nil {
		return fmt.Errorf("error converting value to float: %w", err)
	}

	if field.OverflowFloat(floatValue) {
		return fmt.Errorf("value %f overflows %s", floatValue, field.Type().Name())
	}

	field.SetFloat(floatValue)
	return nil
}

// setBoolValue sets boolean field values with better validation
//
// Many common boolean representations are supported:
//   - "true", "1", "yes", "on" (case insensitive)
//   - "false", "0", "no", "off" (case insensitive)
//   - Standard boolean parsing using strconv.ParseBool
func setBoolValue(field reflect.Value, value string) error {
	switch value {
	case "true", "1", "yes", "on", "True", "TRUE", "YES", "ON":
		field.SetBool(true)
		return nil
	case "false", "0", "no", "off", "False", "FALSE", "NO", "OFF":
		field.SetBool(false)
		return nil
	default:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("error converting value to bool: %w", err)
		}
		field.SetBool(boolValue)
		return nil
	}
}

// setSliceValue sets slice field values
func setSliceValue(field reflect.Value, value string) error {
	elemType := field.Type().Elem()

	switch elemType.Kind() {
	case reflect.Uint8:
		// []byte slice
		field.SetBytes([]byte(value))
		return nil
	default:
		return fmt.Errorf("unsupported slice type: %s", field.Type().Name())
	}
}

// setArrayValue sets array field values
func setArrayValue(field reflect.Value, value string) error {
	if field.Type() == UUIDType {
		uuidValue, err := uuid.Parse(value)
		if err != nil {
			return fmt.Errorf("error converting value to UUID: %w", err)
		}
		field.Set(reflect.ValueOf(uuidValue))
		return nil
	}

	return fmt.Errorf("unsupported array type: %s", field.Type().Name())
}

// setStructValue sets struct field values for special types
func setStructValue(field reflect.Value, value string) error {
	fieldType := field.Type()

	// Handle UUID type
	if fieldType == UUIDType {
		uuidValue, err := uuid.Parse(value)
		if err != nil {
			return fmt.Errorf("error converting value to UUID: %w", err)
		}
		field.Set(reflect.ValueOf(uuidValue))
		return nil
	}

	// Handle time.Time type
	if fieldType == TimeType {
		timeValue, err := time.Parse(time.RFC3339, value)
		if err != nil {
			// Try common time formats
			formats := []string{
				time.RFC3339,
				time.RFC3339Nano,
				"2006-01-02T15:04:05",
				"2006-01-02 15:04:05",
				"2006-01-02",
				"15:04:05",
			}

			for _, format := range formats {
				if timeValue, err = time.Parse(format, value); err == nil {
					break
				}
			}

			if err != nil {
				return fmt.Errorf("error converting value to time.Time: %w", err)
			}
		}
		field.Set(reflect.ValueOf(timeValue))
		return nil
	}

	return fmt.Errorf("unsupported struct type: %s", fieldType.Name())
}

// setInterfaceValue sets interface{} field values
func setInterfaceValue(field reflect.Value, result gjson.Result) error {
	if field.NumMethod() != 0 {
		return fmt.Errorf("cannot set value for interface with methods: %s", field.Type().Name())
	}

	field.Set(reflect.ValueOf(result.Value()))
	return nil
}

// zeroStructFields recursively sets all fields of a struct to
// their default values.
func zeroStructFields(value reflect.Value) {
	if value.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct && !isSpecialStructType(field.Type()) {
			zeroStructFields(field)
		} else {
			field.Set(reflect.Zero(field.Type()))
		}
	}
}

// isSpecialStructType checks if a struct type should be treated as a primitive
// rather than being recursively parsed. Special types include time.Time, uuid.UUID, etc.
func isSpecialStructType(t reflect.Type) bool {
	specialTypes := []reflect.Type{TimeType, UUIDType}

	for _, specialType := range specialTypes {
		if t == specialType {
			return true
		}
	}
	return false
}
