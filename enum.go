package lenum

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// EnumSpec
///////////////////////////////////////////////////////////////////////////////

// Integer constrains enum registration to named types with an integer
// underlying kind.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// EnumSpec describes one registered enum type: its reflect.Type, the
// member name to value table, and the reverse table used for encoding.
//
// A spec is immutable after construction and safe for concurrent use.
type EnumSpec struct {
	name      string
	typ       reflect.Type
	names     map[string]int64 // declared member name -> value
	foldNames map[string]int64 // lowercased member name -> value
	values    map[int64]string // value -> canonical member name
	matchCase bool
}

type EnumSpecOpts struct {
	// MatchCase requires member names to match exactly. By default
	// matching folds case, so "Red", "red" and "RED" all resolve the
	// member declared as "red".
	MatchCase bool
}

// NewEnumSpec builds the spec for enum type E from its declared
// members. The name identifies the enum in error messages; when empty
// it falls back to E's type name.
//
// When several names share a value, the lexicographically smallest name
// becomes the canonical one for encoding. Decoding accepts all of them.
func NewEnumSpec[E Integer](name string, members map[string]E, opts EnumSpecOpts) (*EnumSpec, error) {
	if len(members) == 0 {
		return nil, ErrNoEnumMembers
	}

	typ := reflect.TypeOf(*new(E))
	if name == "" {
		name = typ.Name()
	}

	spec := &EnumSpec{
		name:      name,
		typ:       typ,
		names:     make(map[string]int64, len(members)),
		foldNames: make(map[string]int64, len(members)),
		values:    make(map[int64]string, len(members)),
		matchCase: opts.MatchCase,
	}

	for member, value := range members {
		if strings.TrimSpace(member) == "" {
			return nil, fmt.Errorf("enum %s: member name cannot be blank", name)
		}

		v := int64(value)
		spec.names[member] = v

		folded := strings.ToLower(member)
		if prior, exists := spec.foldNames[folded]; exists && prior != v && !opts.MatchCase {
			return nil, fmt.Errorf("enum %s: members %q collide under case folding", name, member)
		}
		spec.foldNames[folded] = v

		if canonical, exists := spec.values[v]; !exists || member < canonical {
			spec.values[v] = member
		}
	}

	return spec, nil
}

// MustEnumSpec is NewEnumSpec that panics on error, for package-level
// registration of enums whose member tables are compile-time constants.
func MustEnumSpec[E Integer](name string, members map[string]E, opts EnumSpecOpts) *EnumSpec {
	spec, err := NewEnumSpec(name, members, opts)
	if err != nil {
		panic(fmt.Sprintf("lenum: invalid enum spec: %v", err))
	}
	return spec
}

// Name returns the identifier used for this enum in error messages.
func (spec *EnumSpec) Name() string {
	return spec.name
}

// Type returns the destination reflect.Type this spec describes.
func (spec *EnumSpec) Type() reflect.Type {
	return spec.typ
}

// Members returns the declared member names in sorted order.
func (spec *EnumSpec) Members() []string {
	members := make([]string, 0, len(spec.names))
	for member := range spec.names {
		members = append(members, member)
	}
	sort.Strings(members)
	return members
}

// lookupName resolves a member name to its value, honoring the spec's
// case matching rule.
func (spec *EnumSpec) lookupName(member string) (int64, bool) {
	if v, found := spec.names[member]; found {
		return v, true
	}
	if spec.matchCase {
		return 0, false
	}
	v, found := spec.foldNames[strings.ToLower(member)]
	return v, found
}

// lookupValue resolves a value to its canonical member name.
func (spec *EnumSpec) lookupValue(v int64) (string, bool) {
	member, found := spec.values[v]
	return member, found
}

// setValue writes v into dest, which must be an addressable value of
// the spec's type (or a pointer to one).
func (spec *EnumSpec) setValue(dest reflect.Value, v int64) error {
	if dest.Kind() == reflect.Ptr && dest.Type().Elem() == spec.typ {
		if dest.IsNil() {
			if !dest.CanSet() {
				return fmt.Errorf("enum %s: destination pointer is nil", spec.name)
			}
			dest.Set(reflect.New(spec.typ))
		}
		dest = dest.Elem()
	}

	if dest.Type() != spec.typ {
		return fmt.Errorf("%w: enum %s cannot populate %s", ErrDecoderTypeMismatch, spec.name, dest.Type())
	}

	switch dest.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if dest.OverflowInt(v) {
			return fmt.Errorf("enum %s: value %d overflows %s", spec.name, v, dest.Type())
		}
		dest.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v < 0 || dest.OverflowUint(uint64(v)) {
			return fmt.Errorf("enum %s: value %d overflows %s", spec.name, v, dest.Type())
		}
		dest.SetUint(uint64(v))
	default:
		return fmt.Errorf("%w: %s", ErrNotAnEnumType, dest.Type())
	}

	return nil
}

// valueOf reads the current value held by dest as an int64.
func (spec *EnumSpec) valueOf(dest reflect.Value) int64 {
	if dest.Kind() == reflect.Ptr {
		dest = dest.Elem()
	}
	switch dest.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(dest.Uint())
	default:
		return dest.Int()
	}
}
