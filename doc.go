// Package lenum (Lenient ENUM decoding) provides fallback-on-failure
// decoding of JSON values into Go enum types.
//
// The usual behavior of an enum decoder is to fail loudly: an unknown
// member name, a blank string, or a null where a member was expected
// aborts deserialization of the whole document. That is the right call
// for closed systems, but it breaks old clients the moment a server
// starts sending enum members the client has never heard of. lenum
// inverts the policy for exactly those cases: instead of an error, the
// destination receives a caller-supplied default value.
//
// The package is built from three layers:
//
//   - EnumSpec: a registered description of an integer-backed enum type,
//     mapping member names to values and back.
//   - StrictEnumDecoder: the delegate. Standard name matching and
//     (optionally) integer-to-member mapping, reporting structured
//     failure kinds. Decoding of well-formed input always goes through
//     here and is never altered by the lenient wrapper.
//   - LenientEnumDecoder: the policy wrapper. Null tokens, blank
//     strings, member names with no match, and unparseable integer
//     literals all degrade to a default value. Every other failure
//     propagates unchanged.
//
// Two default strategies are available:
//
//   - The base variant returns whatever value the destination already
//     holds, which makes pre-initialized fields self-defaulting.
//   - The typed variant NewTypedLenientDecoder fixes the default at
//     construction time and applies only to that exact enum type.
//
// Decoders are registered per destination type, either on a
// DecoderRegistry instance or on the package-level global registry:
//
//	type Color int
//
//	const (
//	    Red Color = iota
//	    Green
//	    Blue
//	)
//
//	spec, _ := lenum.NewEnumSpec("color", map[string]Color{
//	    "red": Red, "green": Green, "blue": Blue,
//	}, lenum.EnumSpecOpts{})
//
//	lenum.Register(lenum.NewTypedLenientDecoder(spec, Red, lenum.DecoderOpts{}))
//
//	var c Color
//	_ = lenum.DecodeValue(`"purple"`, &c) // c == Red, no error
//
// For whole documents, Unmarshal walks a destination struct and applies
// the registered decoders to fields tagged with `enum:""`, while
// converting everything else through an ordinary reflection setter
// ladder (strings, integers with overflow checks, floats, bools,
// []byte, uuid.UUID, time.Time, TextUnmarshaler):
//
//	type Event struct {
//	    ID    uuid.UUID `json:"id"`
//	    Color Color     `json:"color" enum:"" default:"red"`
//	}
//
//	var ev Event
//	_ = lenum.Unmarshal(data, &ev)
//
// Once constructed, specs and decoders hold no mutable state and are
// safe for unsynchronized concurrent use.
package lenum
