package lenum

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// LenientEnumDecoder
///////////////////////////////////////////////////////////////////////////////

// DefaultFunc applies a decoder's default to the destination. It is the
// single overridable hook that distinguishes the lenient variants:
// the base variant leaves the destination's existing value in place,
// the typed variant writes a value fixed at construction.
type DefaultFunc func(dest reflect.Value) error

// KeepExisting is the base variant's DefaultFunc: the destination keeps
// whatever value it already holds.
func KeepExisting(dest reflect.Value) error {
	return nil
}

// LenientEnumDecoder wraps a delegate EnumDecoder and substitutes a
// default value on the failure conditions that usually mean upstream
// data drift rather than a broken document:
//
//  1. a null token
//  2. an empty or whitespace-only string token
//  3. a string token naming no member of the enum
//  4. an integer token whose payload does not parse as a signed 32-bit
//     integer (when integer values are allowed)
//
// Every other delegate failure propagates unchanged; the wrapper is not
// a blanket error suppressor. In particular an integer token that
// parses but maps to no declared member fails exactly as it would
// against the delegate alone.
//
// Instances hold no per-call state and are safe for concurrent use.
type LenientEnumDecoder struct {
	delegate   EnumDecoder
	getDefault DefaultFunc
	name       string
	exactType  reflect.Type // when non-nil, CanDecode requires exact equality
	opts       DecoderOpts
}

// NewLenientEnumDecoder builds the base variant over a strict decoder
// for spec: the default is the destination's pre-existing value.
func NewLenientEnumDecoder(spec *EnumSpec, opts DecoderOpts) *LenientEnumDecoder {
	return NewLenientDecoderFor(NewStrictEnumDecoder(spec, opts), KeepExisting, opts)
}

// NewLenientDecoderFor composes the lenient decode driver with an
// arbitrary delegate and default strategy. Applicability follows the
// delegate's own CanDecode.
func NewLenientDecoderFor(delegate EnumDecoder, getDefault DefaultFunc, opts DecoderOpts) *LenientEnumDecoder {
	return &LenientEnumDecoder{
		delegate:   delegate,
		getDefault: getDefault,
		name:       LenientDecoderName,
		opts:       opts,
	}
}

// NewTypedLenientDecoder builds the typed variant: the default is fixed
// at construction and the decoder applies only to destinations of
// exactly type E, never to pointers or other types.
func NewTypedLenientDecoder[E Integer](spec *EnumSpec, defaultValue E, opts DecoderOpts) *LenientEnumDecoder {
	fixed := int64(defaultValue)
	return &LenientEnumDecoder{
		delegate: NewStrictEnumDecoder(spec, opts),
		getDefault: func(dest reflect.Value) error {
			return spec.setValue(dest, fixed)
		},
		name:      TypedDecoderName,
		exactType: reflect.TypeOf(*new(E)),
		opts:      opts,
	}
}

func (ld *LenientEnumDecoder) Name() string {
	return ld.name
}

// Delegate returns the wrapped decoder.
func (ld *LenientEnumDecoder) Delegate() EnumDecoder {
	return ld.delegate
}

func (ld *LenientEnumDecoder) TargetType() reflect.Type {
	if ld.exactType != nil {
		return ld.exactType
	}
	return ld.delegate.TargetType()
}

// CanDecode requires exact type equality for the typed variant and
// defers to the delegate otherwise.
func (ld *LenientEnumDecoder) CanDecode(t reflect.Type) bool {
	if ld.exactType != nil {
		return t == ld.exactType
	}
	return ld.delegate.CanDecode(t)
}

// Decode decodes token into dest, degrading to the default strategy on
// the lenient failure conditions.
func (ld *LenientEnumDecoder) Decode(token Token, dest reflect.Value) error {
	switch token.Kind {
	case KindNull:
		return ld.getDefault(dest)

	case KindString:
		if strings.TrimSpace(token.Text) == "" {
			return ld.getDefault(dest)
		}

		err := ld.delegate.Decode(token, dest)
		if err != nil && errors.Is(err, ErrNoMatchingMember) {
			return ld.getDefault(dest)
		}
		return err

	case KindInteger:
		if !ld.opts.DisallowIntegerValues {
			// Pre-validate the literal only. The parsed value is
			// discarded and the delegate re-parses independently.
			if _, err := strconv.ParseInt(token.Text, 10, 32); err != nil {
				return ld.getDefault(dest)
			}
		}
		return ld.delegate.Decode(token, dest)

	default:
		return ld.delegate.Decode(token, dest)
	}
}
