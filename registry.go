package lenum

import (
	"fmt"
	"reflect"
)

///////////////////////////////////////////////////////////////////////////////
// DecoderRegistry
///////////////////////////////////////////////////////////////////////////////

// DecoderRegistry routes decode calls to registered EnumDecoders by
// destination type.
//
// Multiple decoders can be registered for the same target type under
// distinct names. If only one decoder is registered for a type, it is
// used automatically. If multiple decoders are registered, use
// WithDecoder() to specify which one.
type DecoderRegistry struct {
	m map[reflect.Type]map[string]EnumDecoder // target type -> decoder name -> decoder
}

// DecoderRegistryContext provides a curried registry with a specific
// decoder selection.
type DecoderRegistryContext struct {
	registry    *DecoderRegistry
	decoderName string
}

type DecoderRegistryOpts struct {
	Decoders []EnumDecoder
}

func NewDecoderRegistry(opts DecoderRegistryOpts) (*DecoderRegistry, error) {
	reg := &DecoderRegistry{
		m: make(map[reflect.Type]map[string]EnumDecoder),
	}

	for _, decoder := range opts.Decoders {
		err := reg.Register(decoder)
		if err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// Register adds a decoder under its target type and name. Registering
// another decoder with the same type and name replaces the previous one.
func (reg *DecoderRegistry) Register(decoder EnumDecoder) error {
	typ := decoder.TargetType()
	name := decoder.Name()

	if typ == nil {
		return fmt.Errorf("%w: decoder %s has no target type", ErrNotAnEnumType, name)
	}

	if reg.m[typ] == nil {
		reg.m[typ] = make(map[string]EnumDecoder)
	}

	reg.m[typ][name] = decoder
	return nil
}

// WithDecoder returns a context that will use the named decoder. This
// is useful when multiple decoders are registered for the same target
// type, e.g. a strict and a lenient one.
func (reg *DecoderRegistry) WithDecoder(decoderName string) *DecoderRegistryContext {
	return &DecoderRegistryContext{
		registry:    reg,
		decoderName: decoderName,
	}
}

// DecodeValue parses raw as a single JSON value and decodes it into
// dest, which must be a non-nil pointer to a registered enum type.
func (reg *DecoderRegistry) DecodeValue(raw string, dest any) error {
	return reg.decodeToken(ParseToken(raw), dest, "")
}

// DecodeToken decodes an already-classified token into dest.
func (reg *DecoderRegistry) DecodeToken(token Token, dest any) error {
	return reg.decodeToken(token, dest, "")
}

// DecodeValue parses raw as a single JSON value and decodes it into
// dest using the context's named decoder.
func (regCtx *DecoderRegistryContext) DecodeValue(raw string, dest any) error {
	return regCtx.registry.decodeToken(ParseToken(raw), dest, regCtx.decoderName)
}

// DecodeToken decodes an already-classified token into dest using the
// context's named decoder.
func (regCtx *DecoderRegistryContext) DecodeToken(token Token, dest any) error {
	return regCtx.registry.decodeToken(token, dest, regCtx.decoderName)
}

func (reg *DecoderRegistry) decodeToken(token Token, dest any, decoderName string) error {
	if dest == nil {
		return fmt.Errorf("dest cannot be nil")
	}

	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.IsNil() {
		return fmt.Errorf("dest must be a non-nil pointer, got %T", dest)
	}

	elem := destValue.Elem()
	decoder, err := reg.getDecoderByName(elem.Type(), decoderName)
	if err != nil {
		return err
	}

	if !decoder.CanDecode(elem.Type()) {
		return fmt.Errorf("%w: %s against %s", ErrDecoderTypeMismatch, decoder.Name(), elem.Type())
	}

	return decoder.Decode(token, elem)
}

// LookupDecoder retrieves the single decoder registered for the given
// destination type, or ErrMultipleDecodersAvailable when the choice is
// ambiguous.
func (reg *DecoderRegistry) LookupDecoder(t reflect.Type) (EnumDecoder, error) {
	return reg.getDecoderByName(t, "")
}

// getDecoderByName retrieves a specific decoder by name for the given
// destination type.
//
// No name provided: if there is only one decoder registered for the
// type, it is returned. If multiple decoders are registered, an error
// is returned.
//
// A pointer type with no decoders of its own falls back to the
// decoders of its element type, covering nullable-enum destinations.
func (reg *DecoderRegistry) getDecoderByName(t reflect.Type, decoderName string) (EnumDecoder, error) {
	decodersForType, exists := reg.m[t]
	if !exists && t.Kind() == reflect.Ptr {
		decodersForType, exists = reg.m[t.Elem()]
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNoDecoderRegistered, t)
	}

	if decoderName == "" {
		switch len(decodersForType) {
		case 0:
			return nil, fmt.Errorf("%w: %s", ErrNoDecoderRegistered, t)
		case 1:
			for _, decoder := range decodersForType {
				return decoder, nil
			}
		default:
			return nil, fmt.Errorf("%w: %s", ErrMultipleDecodersAvailable, t)
		}
	}

	if decoder, found := decodersForType[decoderName]; found {
		return decoder, nil
	}

	return nil, fmt.Errorf("%w: %s for %s", ErrDecoderNotFound, decoderName, t)
}

///////////////////////////////////////////////////////////////////////////////
// Global Singleton and Package Functions
///////////////////////////////////////////////////////////////////////////////

var _gDecoderRegistry *DecoderRegistry = nil

func init() {
	var err error
	_gDecoderRegistry, err = NewDecoderRegistry(DecoderRegistryOpts{})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize global DecoderRegistry: %v", err))
	}
}

// Package-level functions that delegate to the global DecoderRegistry instance

// Register registers a decoder with the global registry.
func Register(decoder EnumDecoder) error {
	return _gDecoderRegistry.Register(decoder)
}

// DecodeValue decodes a single JSON value using the global registry.
func DecodeValue(raw string, dest any) error {
	return _gDecoderRegistry.DecodeValue(raw, dest)
}

// DecodeToken decodes a classified token using the global registry.
func DecodeToken(token Token, dest any) error {
	return _gDecoderRegistry.DecodeToken(token, dest)
}

// WithDecoder returns a registry context from the global registry.
func WithDecoder(decoderName string) *DecoderRegistryContext {
	return _gDecoderRegistry.WithDecoder(decoderName)
}

// LookupDecoder gets the decoder for a destination type from the
// global registry.
func LookupDecoder(t reflect.Type) (EnumDecoder, error) {
	return _gDecoderRegistry.LookupDecoder(t)
}
