package lenum

import (
	"fmt"
	"reflect"
	"strconv"
	"unicode"
)

///////////////////////////////////////////////////////////////////////////////
// EnumEncoder
///////////////////////////////////////////////////////////////////////////////

// EnumEncoder is the writing-direction counterpart to the decoders: it
// turns an enum value back into its JSON representation.
//
// A value with a declared member name encodes as the quoted canonical
// name, camel-cased when CamelCaseOutput is set. A value with no
// declared name encodes as a bare integer literal, unless integer
// values are disallowed, in which case encoding fails with
// ErrNoMatchingMember.
type EnumEncoder struct {
	spec *EnumSpec
	opts DecoderOpts
}

func NewEnumEncoder(spec *EnumSpec, opts DecoderOpts) *EnumEncoder {
	return &EnumEncoder{
		spec: spec,
		opts: opts,
	}
}

// Marshal encodes value, which must be of the encoder's enum type (or a
// pointer to it; a nil pointer encodes as null).
func (ee *EnumEncoder) Marshal(value any) ([]byte, error) {
	return ee.Append(nil, value)
}

// Append appends the JSON encoding of value to dst.
func (ee *EnumEncoder) Append(dst []byte, value any) ([]byte, error) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return append(dst, "null"...), nil
		}
		v = v.Elem()
	}

	if v.Type() != ee.spec.Type() {
		return nil, fmt.Errorf("%w: encoder for %s given %T", ErrDecoderTypeMismatch, ee.spec.Name(), value)
	}

	raw := ee.spec.valueOf(v)

	if member, found := ee.spec.lookupValue(raw); found {
		if ee.opts.CamelCaseOutput {
			member = camelCase(member)
		}
		return strconv.AppendQuote(dst, member), nil
	}

	if ee.opts.DisallowIntegerValues {
		return nil, fmt.Errorf("%w: value %d of enum %s has no declared name", ErrNoMatchingMember, raw, ee.spec.Name())
	}

	return strconv.AppendInt(dst, raw, 10), nil
}

// camelCase lower-cases the leading upper-case run of a member name.
// When the run is longer than one rune and is followed by a lower-case
// rune, the last upper of the run starts a new word and keeps its case:
// "Red" -> "red", "HTTPServer" -> "httpServer", "ID" -> "id".
func camelCase(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)

	upperRun := 0
	for upperRun < len(runes) && unicode.IsUpper(runes[upperRun]) {
		upperRun++
	}
	if upperRun == 0 {
		return s
	}

	if upperRun < len(runes) && unicode.IsLower(runes[upperRun]) && upperRun > 1 {
		upperRun--
	}
	for i := 0; i < upperRun; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}
