package lenum

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// constants for struct field tags recognized by the struct decoder
const (
	JSONPathTag     = "json"
	EnumTag         = "enum"
	DefaultValueTag = "default"

	TagModifierDelimiter = ","
)

// constants for `enum` tag modifiers
const (
	StrictEnumModifier   = "strict"
	RequiredEnumModifier = "required"
)

// Decoder name constants for built in decoders.
const (
	StrictDecoderName  = "strict-enum-decoder"
	LenientDecoderName = "lenient-enum-decoder"
	TypedDecoderName   = "typed-lenient-enum-decoder"
)

// reflect.TypeOf constants for type checks
var (
	UUIDType = reflect.TypeOf(uuid.UUID{})
	TimeType = reflect.TypeOf(time.Time{})
)
