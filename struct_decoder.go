package lenum

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
)

///////////////////////////////////////////////////////////////////////////////
// Decode Plans
///////////////////////////////////////////////////////////////////////////////

// fieldPlan represents a single step in a struct decode plan
type fieldPlan struct {
	FieldIndex int    // Index of the field in the struct
	FieldName  string // Name of the field for error reporting
	Path       string // gjson path resolved from the json tag

	// Enum fields only
	Decoder       EnumDecoder // nil for non-enum fields
	Spec          *EnumSpec   // spec behind Decoder, for per-field defaults
	DefaultMember int64       // resolved `default` tag value
	HasDefault    bool
	Required      bool

	// Non-enum nested struct fields recurse with a sub-document
	Recurse bool
}

// decodePlan is the ordered list of field steps for one struct type
type decodePlan struct {
	StructType reflect.Type
	Steps      []fieldPlan
}

///////////////////////////////////////////////////////////////////////////////
// StructDecoder
///////////////////////////////////////////////////////////////////////////////

// Validatable marks a struct as expecting its fields to be validated
// after they have been populated by a decode.
type Validatable interface {
	// Validate checks the fields of the struct and returns an error
	// if any of the fields are invalid.
	Validate() error
}

// StructDecoder decodes whole JSON documents into structs, applying
// registered enum decoders to fields carrying the `enum` tag and the
// reflection setter ladder to everything else.
//
// Field addressing uses the `json` tag as a gjson path. Enum fields
// accept modifiers in the `enum` tag, comma separated:
//
//   - strict: use the strict decoder registered for the field's type
//     instead of the default selection ordering.
//   - required: a missing value is an error rather than a skip.
//
// A `default:"member"` tag pre-initializes the field to the named
// member before decoding, so lenient decoders that keep the existing
// value fall back to it. Decoders carrying their own fixed default
// (the typed variant) ignore it.
//
// A decode plan is built once per struct type and cached.
type StructDecoder struct {
	registry *DecoderRegistry
	plans    *PlanCache
}

type StructDecoderOpts struct {
	// Registry to resolve enum decoders against. The global registry
	// is used when nil.
	Registry *DecoderRegistry
}

func NewStructDecoder(opts StructDecoderOpts) *StructDecoder {
	return &StructDecoder{
		registry: opts.Registry,
		plans:    NewPlanCache(),
	}
}

// reg resolves the registry lazily so a zero-opts decoder can be
// constructed before the global registry is populated.
func (sd *StructDecoder) reg() *DecoderRegistry {
	if sd.registry != nil {
		return sd.registry
	}
	return _gDecoderRegistry
}

// Unmarshal decodes data into dest, which must be a non-nil pointer to
// a struct. On failure all of dest's fields are zeroed.
//
// If dest implements Validatable, Validate() is called after a
// successful decode and its failure zeroes dest as well.
func (sd *StructDecoder) Unmarshal(data []byte, dest any) error {
	if dest == nil {
		return fmt.Errorf("dest cannot be nil")
	}
	if reflect.TypeOf(dest).Kind() != reflect.Ptr ||
		reflect.ValueOf(dest).IsNil() ||
		reflect.TypeOf(dest).Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a non-nil pointer to a struct type")
	}

	doc := gjson.ParseBytes(data)
	destValue := reflect.ValueOf(dest).Elem()

	if err := sd.decodeStruct(doc, destValue); err != nil {
		zeroStructFields(destValue)
		return err
	}

	if v, ok := dest.(Validatable); ok {
		if err := v.Validate(); err != nil {
			zeroStructFields(destValue)
			return fmt.Errorf("validation failed after decoding: %w", err)
		}
	}

	return nil
}

func (sd *StructDecoder) decodeStruct(doc gjson.Result, destValue reflect.Value) error {
	plan, err := sd.getPlan(destValue.Type())
	if err != nil {
		return err
	}

	for i := range plan.Steps {
		step := &plan.Steps[i]
		if err := sd.executeStep(doc, destValue, step); err != nil {
			return fmt.Errorf("failed to decode field %s: %w", step.FieldName, err)
		}
	}
	return nil
}

// executeStep executes a single field step of the plan
func (sd *StructDecoder) executeStep(doc gjson.Result, destValue reflect.Value, step *fieldPlan) error {
	field := destValue.Field(step.FieldIndex)
	if !field.CanSet() {
		return nil // Skip non-settable fields
	}

	result := doc.Get(step.Path)

	if step.Decoder != nil {
		if !result.Exists() {
			if step.Required {
				return fmt.Errorf("required value %q not found in document", step.Path)
			}
			// An absent value is distinct from an explicit null: the
			// field keeps its value (or its tag default) untouched.
			if step.HasDefault {
				return step.Spec.setValue(field, step.DefaultMember)
			}
			return nil
		}
		if step.HasDefault {
			if err := step.Spec.setValue(field, step.DefaultMember); err != nil {
				return err
			}
		}
		return step.Decoder.Decode(TokenOf(result), field)
	}

	if !result.Exists() {
		return nil // Leave the field at its current value
	}

	if step.Recurse {
		return sd.decodeStruct(result, field)
	}

	return setFieldValue(field, result)
}

///////////////////////////////////////////////////////////////////////////////
// Plan Building
///////////////////////////////////////////////////////////////////////////////

func (sd *StructDecoder) getPlan(t reflect.Type) (*decodePlan, error) {
	return sd.plans.GetOrBuild(t, func() (*decodePlan, error) {
		return sd.buildPlan(t)
	})
}

func (sd *StructDecoder) buildPlan(t reflect.Type) (*decodePlan, error) {
	plan := &decodePlan{
		StructType: t,
		Steps:      make([]fieldPlan, 0, t.NumField()),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		step := fieldPlan{
			FieldIndex: i,
			FieldName:  field.Name,
			Path:       jsonPath(field),
		}
		if step.Path == "-" {
			continue
		}

		enumTag, isEnum := field.Tag.Lookup(EnumTag)
		if isEnum {
			if err := sd.buildEnumStep(&step, field, enumTag); err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}
		} else if field.Type.Kind() == reflect.Struct && !isSpecialStructType(field.Type) {
			step.Recurse = true
		}

		plan.Steps = append(plan.Steps, step)
	}

	return plan, nil
}

func (sd *StructDecoder) buildEnumStep(step *fieldPlan, field reflect.StructField, enumTag string) error {
	var decoderName string

	for _, modifier := range strings.Split(enumTag, TagModifierDelimiter) {
		switch strings.TrimSpace(modifier) {
		case "":
			continue
		case StrictEnumModifier:
			decoderName = StrictDecoderName
		case RequiredEnumModifier:
			step.Required = true
		default:
			return fmt.Errorf("unknown enum tag modifier %q", modifier)
		}
	}

	decoder, err := sd.resolveDecoder(field.Type, decoderName)
	if err != nil {
		return err
	}

	if !decoder.CanDecode(field.Type) {
		return fmt.Errorf("%w: %s against %s", ErrDecoderTypeMismatch, decoder.Name(), field.Type)
	}

	step.Decoder = decoder
	step.Spec = specOf(decoder)

	if member, hasDefault := field.Tag.Lookup(DefaultValueTag); hasDefault {
		if step.Spec == nil {
			return fmt.Errorf("default tag requires a spec-backed decoder for %s", field.Type)
		}
		value, found := step.Spec.lookupName(member)
		if !found {
			return fmt.Errorf("%w: default %q for enum %s", ErrNoMatchingMember, member, step.Spec.Name())
		}
		step.DefaultMember = value
		step.HasDefault = true
	}

	return nil
}

// resolveDecoder picks the decoder for an enum field. An explicit name
// from a tag modifier wins; otherwise a single registration is used
// directly, and an ambiguous registration is resolved in preference
// order lenient, typed, strict.
func (sd *StructDecoder) resolveDecoder(t reflect.Type, decoderName string) (EnumDecoder, error) {
	decoder, err := sd.reg().getDecoderByName(t, decoderName)
	if err == nil {
		return decoder, nil
	}

	if decoderName == "" && errors.Is(err, ErrMultipleDecodersAvailable) {
		for _, name := range []string{LenientDecoderName, TypedDecoderName, StrictDecoderName} {
			if decoder, nameErr := sd.reg().getDecoderByName(t, name); nameErr == nil {
				return decoder, nil
			}
		}
	}

	return nil, err
}

// specOf unwraps a decoder chain down to its EnumSpec, when there is one.
func specOf(decoder EnumDecoder) *EnumSpec {
	for decoder != nil {
		switch d := decoder.(type) {
		case *StrictEnumDecoder:
			return d.Spec()
		case *LenientEnumDecoder:
			decoder = d.Delegate()
		default:
			return nil
		}
	}
	return nil
}

// jsonPath resolves the gjson path for a field from its json tag,
// falling back to the field name.
func jsonPath(field reflect.StructField) string {
	tag, ok := field.Tag.Lookup(JSONPathTag)
	if !ok || tag == "" {
		return field.Name
	}

	path := strings.Split(tag, TagModifierDelimiter)[0]
	if path == "" {
		return field.Name
	}
	return path
}

///////////////////////////////////////////////////////////////////////////////
// Global Singleton and Package Functions
///////////////////////////////////////////////////////////////////////////////

var _gStructDecoder *StructDecoder = nil

func init() {
	_gStructDecoder = NewStructDecoder(StructDecoderOpts{})
}

// Unmarshal decodes data into dest using a struct decoder backed by the
// global decoder registry.
func Unmarshal(data []byte, dest any) error {
	return _gStructDecoder.Unmarshal(data, dest)
}

// Invalidate clears a partially decoded dest by setting each field to
// its default value.
//
// # It expects the passed dest to be a pointer
func Invalidate(dest any) error {
	value := reflect.ValueOf(dest)
	if value.Kind() != reflect.Ptr || value.IsNil() {
		return fmt.Errorf("cannot invalidate a non ptr or nil value")
	}

	zeroStructFields(value.Elem())
	return nil
}
