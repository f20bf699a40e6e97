package lenum

import (
	"errors"
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// Errors
///////////////////////////////////////////////////////////////////////////////

// Sentinel errors for decode failures. Use errors.Is() to discriminate.
//
// ErrNoMatchingMember is the only failure the lenient wrapper ever
// suppresses; everything else always reaches the caller.
var (
	// ErrNoMatchingMember indicates a string named no declared member,
	// or an integer value mapped to no declared member.
	ErrNoMatchingMember = errors.New("no matching enum member")

	// ErrIntegerDisallowed indicates an integer token arrived while the
	// decoder was configured to reject integer values.
	ErrIntegerDisallowed = errors.New("integer enum values are not allowed")

	// ErrMalformedToken indicates a token whose payload could not be
	// interpreted at all, such as an integer-kind token with a
	// non-numeric payload.
	ErrMalformedToken = errors.New("malformed token")

	// ErrUnexpectedToken indicates a token kind the strict decoder has
	// no mapping for (null, boolean, float, object, array).
	ErrUnexpectedToken = errors.New("unexpected token kind")
)

// Sentinel errors for registry and configuration misuse.
var (
	ErrNoDecoderRegistered       = errors.New("no decoder registered for this destination type")
	ErrMultipleDecodersAvailable = errors.New("multiple decoders available for this destination type, use WithDecoder() to specify which one")
	ErrDecoderNotFound           = errors.New("specified decoder not found for this destination type")
	ErrDecoderTypeMismatch       = errors.New("decoder does not accept this destination type")
	ErrNoEnumMembers             = errors.New("enum spec requires at least one member")
	ErrNotAnEnumType             = errors.New("destination is not an integer-kinded named type")
)

// DecodeError is the structured failure reported by the strict decoder.
// Kind is one of the decode sentinels above, so both errors.Is(err,
// ErrNoMatchingMember) and inspection of a *DecodeError work.
type DecodeError struct {
	Kind  error  // Sentinel classifying the failure
	Enum  string // Name of the enum spec being decoded into
	Token Token  // Token that failed to decode
}

func (e *DecodeError) Error() string {
	if e.Token.Text != "" {
		return fmt.Sprintf("%s: %s %q into enum %s", e.Kind.Error(), e.Token.Kind, e.Token.Text, e.Enum)
	}
	return fmt.Sprintf("%s: %s token into enum %s", e.Kind.Error(), e.Token.Kind, e.Enum)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

// newDecodeError creates a DecodeError for the given failure kind.
func newDecodeError(kind error, enum string, token Token) error {
	return &DecodeError{
		Kind:  kind,
		Enum:  enum,
		Token: token,
	}
}
