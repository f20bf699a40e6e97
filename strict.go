package lenum

import (
	"reflect"
	"strconv"
)

///////////////////////////////////////////////////////////////////////////////
// EnumDecoder Interface
///////////////////////////////////////////////////////////////////////////////

// EnumDecoder decodes one token into an enum destination.
//
// Decode expects dest to be an addressable value of the decoder's
// target type, or a non-nil pointer to one.
type EnumDecoder interface {
	// Decode decodes token into dest.
	Decode(token Token, dest reflect.Value) error
	// CanDecode reports whether this decoder accepts the given
	// destination type.
	CanDecode(t reflect.Type) bool
	// TargetType returns the enum type this decoder populates.
	TargetType() reflect.Type
	// Name returns a unique identifier for this decoder within its
	// target type.
	Name() string
}

// DecoderOpts carries construction-time configuration shared by the
// strict decoder and the lenient wrapper around it.
type DecoderOpts struct {
	// DisallowIntegerValues rejects integer tokens outright. Integer
	// values are accepted by default.
	DisallowIntegerValues bool

	// CamelCaseOutput lower-cases the leading runes of member names on
	// the encoding path. It has no effect on decoding.
	CamelCaseOutput bool
}

///////////////////////////////////////////////////////////////////////////////
// StrictEnumDecoder
///////////////////////////////////////////////////////////////////////////////

// StrictEnumDecoder is the delegate the lenient wrapper falls back to:
// standard member-name matching plus optional integer-to-member
// mapping, with every failure reported as a *DecodeError carrying a
// structured kind. It never substitutes defaults.
type StrictEnumDecoder struct {
	spec *EnumSpec
	opts DecoderOpts
}

func NewStrictEnumDecoder(spec *EnumSpec, opts DecoderOpts) *StrictEnumDecoder {
	return &StrictEnumDecoder{
		spec: spec,
		opts: opts,
	}
}

func (sd *StrictEnumDecoder) Name() string {
	return StrictDecoderName
}

func (sd *StrictEnumDecoder) TargetType() reflect.Type {
	return sd.spec.Type()
}

// Spec returns the enum spec this decoder matches names against.
func (sd *StrictEnumDecoder) Spec() *EnumSpec {
	return sd.spec
}

// CanDecode accepts the spec's enum type and a pointer to it (the
// nullable form).
func (sd *StrictEnumDecoder) CanDecode(t reflect.Type) bool {
	if t == sd.spec.Type() {
		return true
	}
	return t != nil && t.Kind() == reflect.Ptr && t.Elem() == sd.spec.Type()
}

// Decode maps token onto a declared member of the target enum.
//
// String tokens resolve through member-name matching under the spec's
// case rule. Integer tokens, when allowed, are parsed here
// independently of any pre-validation a wrapper may have done, and
// must map to a declared member.
func (sd *StrictEnumDecoder) Decode(token Token, dest reflect.Value) error {
	switch token.Kind {
	case KindString:
		value, found := sd.spec.lookupName(token.Text)
		if !found {
			return newDecodeError(ErrNoMatchingMember, sd.spec.Name(), token)
		}
		return sd.spec.setValue(dest, value)

	case KindInteger:
		if sd.opts.DisallowIntegerValues {
			return newDecodeError(ErrIntegerDisallowed, sd.spec.Name(), token)
		}

		value, err := strconv.ParseInt(token.Text, 10, 64)
		if err != nil {
			return newDecodeError(ErrMalformedToken, sd.spec.Name(), token)
		}

		if _, found := sd.spec.lookupValue(value); !found {
			return newDecodeError(ErrNoMatchingMember, sd.spec.Name(), token)
		}
		return sd.spec.setValue(dest, value)

	default:
		return newDecodeError(ErrUnexpectedToken, sd.spec.Name(), token)
	}
}
