package lenum

import (
	"fmt"

	"github.com/tidwall/gjson"
)

///////////////////////////////////////////////////////////////////////////////
// Token Model
///////////////////////////////////////////////////////////////////////////////

// TokenKind tags a Token with the lexical category the decoders
// dispatch on. Anything that is not a null marker, a quoted string, or
// an integral numeric literal is KindOther.
type TokenKind int

const (
	KindNull TokenKind = iota
	KindString
	KindInteger
	KindOther
)

// String returns a human readable name for the kind, for error messages.
func (k TokenKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is one lexical unit of the input being decoded: a kind plus,
// for string and integer kinds, the raw textual payload.
//
// Tokens are plain values. They are usually produced by TokenOf or
// ParseToken, but may be constructed directly, which is how a decoder
// can be handed an integer-kind token whose payload is not numeric.
type Token struct {
	Kind TokenKind
	Text string
}

// NullToken returns a token for a JSON null (or absent) value.
func NullToken() Token {
	return Token{Kind: KindNull}
}

// StringToken returns a string-kind token carrying the given payload.
func StringToken(s string) Token {
	return Token{Kind: KindString, Text: s}
}

// IntegerToken returns an integer-kind token carrying the given raw
// literal text.
func IntegerToken(s string) Token {
	return Token{Kind: KindInteger, Text: s}
}

// OtherToken returns a token for any value the enum decoders do not
// handle themselves (booleans, floats, objects, arrays).
func OtherToken(raw string) Token {
	return Token{Kind: KindOther, Text: raw}
}

// TokenOf classifies a gjson value into a Token.
//
// A missing result classifies as null. Numbers classify as integer
// only when the raw literal is integral (optional sign followed by
// digits); floats and exponent forms classify as other, so they reach
// the strict decoder untouched and fail there.
func TokenOf(result gjson.Result) Token {
	if !result.Exists() {
		return NullToken()
	}

	switch result.Type {
	case gjson.Null:
		return NullToken()
	case gjson.String:
		return StringToken(result.Str)
	case gjson.Number:
		if isIntegralLiteral(result.Raw) {
			return IntegerToken(result.Raw)
		}
		return OtherToken(result.Raw)
	default:
		return OtherToken(result.Raw)
	}
}

// ParseToken parses a single JSON value and classifies it.
func ParseToken(json string) Token {
	return TokenOf(gjson.Parse(json))
}

// isIntegralLiteral reports whether s is an optional sign followed by
// one or more ASCII digits.
func isIntegralLiteral(s string) bool {
	if len(s) == 0 {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
