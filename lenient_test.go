package lenum

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLenientEnumDecoder_Defaulting(t *testing.T) {
	spec := colorSpec(t, EnumSpecOpts{})
	decoder := NewLenientEnumDecoder(spec, DecoderOpts{})

	t.Run("Null", func(t *testing.T) {
		c, err := decodeColor(t, decoder, NullToken(), ColorGreen)
		require.NoError(t, err)
		assert.Equal(t, ColorGreen, c)
	})

	t.Run("EmptyString", func(t *testing.T) {
		c, err := decodeColor(t, decoder, StringToken(""), ColorGreen)
		require.NoError(t, err)
		assert.Equal(t, ColorGreen, c)
	})

	t.Run("WhitespaceString", func(t *testing.T) {
		c, err := decodeColor(t, decoder, StringToken("   "), ColorGreen)
		require.NoError(t, err)
		assert.Equal(t, ColorGreen, c)
	})

	t.Run("UnknownMemberName", func(t *testing.T) {
		c, err := decodeColor(t, decoder, StringToken("purple"), ColorGreen)
		require.NoError(t, err)
		assert.Equal(t, ColorGreen, c)
	})

	t.Run("MalformedInteger", func(t *testing.T) {
		c, err := decodeColor(t, decoder, IntegerToken("abc"), ColorGreen)
		require.NoError(t, err)
		assert.Equal(t, ColorGreen, c)
	})

	t.Run("IntegerOverflowingInt32", func(t *testing.T) {
		c, err := decodeColor(t, decoder, IntegerToken("4294967296"), ColorGreen)
		require.NoError(t, err)
		assert.Equal(t, ColorGreen, c)
	})
}

func TestLenientEnumDecoder_WellFormedInputUnaltered(t *testing.T) {
	spec := colorSpec(t, EnumSpecOpts{})
	decoder := NewLenientEnumDecoder(spec, DecoderOpts{})

	t.Run("MemberName", func(t *testing.T) {
		c, err := decodeColor(t, decoder, StringToken("blue"), ColorRed)
		require.NoError(t, err)
		assert.Equal(t, ColorBlue, c)
	})

	t.Run("MemberName_Folded", func(t *testing.T) {
		c, err := decodeColor(t, decoder, StringToken("BLUE"), ColorRed)
		require.NoError(t, err)
		assert.Equal(t, ColorBlue, c)
	})

	t.Run("Integer", func(t *testing.T) {
		c, err := decodeColor(t, decoder, IntegerToken("2"), ColorRed)
		require.NoError(t, err)
		assert.Equal(t, ColorBlue, c)
	})
}

func TestLenientEnumDecoder_Propagation(t *testing.T) {
	spec := colorSpec(t, EnumSpecOpts{})
	decoder := NewLenientEnumDecoder(spec, DecoderOpts{})

	t.Run("IntegerWithNoMember", func(t *testing.T) {
		// Pre-parse succeeds, so the delegate's failure is real and
		// must not be suppressed.
		c, err := decodeColor(t, decoder, IntegerToken("99"), ColorGreen)
		assert.ErrorIs(t, err, ErrNoMatchingMember)
		assert.Equal(t, ColorGreen, c)
	})

	t.Run("OtherTokenKind", func(t *testing.T) {
		_, err := decodeColor(t, decoder, OtherToken("1.5"), ColorGreen)
		assert.ErrorIs(t, err, ErrUnexpectedToken)
	})
}

func TestLenientEnumDecoder_IntegerModeDisabled(t *testing.T) {
	spec := colorSpec(t, EnumSpecOpts{})
	decoder := NewLenientEnumDecoder(spec, DecoderOpts{DisallowIntegerValues: true})

	t.Run("IntegerDelegatedUnconditionally", func(t *testing.T) {
		_, err := decodeColor(t, decoder, IntegerToken("2"), ColorGreen)
		assert.ErrorIs(t, err, ErrIntegerDisallowed)
	})

	t.Run("MalformedIntegerAlsoDelegated", func(t *testing.T) {
		// No pre-parse happens when integer mode is off, so even a
		// non-numeric payload reaches the delegate and fails there.
		_, err := decodeColor(t, decoder, IntegerToken("abc"), ColorGreen)
		assert.ErrorIs(t, err, ErrIntegerDisallowed)
	})

	t.Run("NullStillDefaults", func(t *testing.T) {
		c, err := decodeColor(t, decoder, NullToken(), ColorGreen)
		require.NoError(t, err)
		assert.Equal(t, ColorGreen, c)
	})
}

func TestTypedLenientDecoder(t *testing.T) {
	spec := colorSpec(t, EnumSpecOpts{})
	decoder := NewTypedLenientDecoder(spec, ColorBlue, DecoderOpts{})

	t.Run("Name", func(t *testing.T) {
		assert.Equal(t, TypedDecoderName, decoder.Name())
	})

	t.Run("FixedDefaultIgnoresExistingValue", func(t *testing.T) {
		c, err := decodeColor(t, decoder, StringToken("purple"), ColorGreen)
		require.NoError(t, err)
		assert.Equal(t, ColorBlue, c)
	})

	t.Run("FixedDefaultOnNull", func(t *testing.T) {
		c, err := decodeColor(t, decoder, NullToken(), ColorGreen)
		require.NoError(t, err)
		assert.Equal(t, ColorBlue, c)
	})

	t.Run("WellFormedInputUnaltered", func(t *testing.T) {
		c, err := decodeColor(t, decoder, StringToken("red"), ColorGreen)
		require.NoError(t, err)
		assert.Equal(t, ColorRed, c)
	})

	t.Run("CanDecode_ExactTypeOnly", func(t *testing.T) {
		assert.True(t, decoder.CanDecode(reflect.TypeOf(Color(0))))
		assert.False(t, decoder.CanDecode(reflect.TypeOf((*Color)(nil))))
		assert.False(t, decoder.CanDecode(reflect.TypeOf(0)))

		type OtherColor Color
		assert.False(t, decoder.CanDecode(reflect.TypeOf(OtherColor(0))))
	})
}

func TestLenientEnumDecoder_BaseVariantCanDecode(t *testing.T) {
	spec := colorSpec(t, EnumSpecOpts{})
	decoder := NewLenientEnumDecoder(spec, DecoderOpts{})

	// The base variant defers applicability to its delegate, which
	// accepts the nullable pointer form too.
	assert.True(t, decoder.CanDecode(reflect.TypeOf(Color(0))))
	assert.True(t, decoder.CanDecode(reflect.TypeOf((*Color)(nil))))
	assert.False(t, decoder.CanDecode(reflect.TypeOf(uint8(0))))
}

func TestNewLenientDecoderFor_CustomStrategy(t *testing.T) {
	spec := colorSpec(t, EnumSpecOpts{})
	strict := NewStrictEnumDecoder(spec, DecoderOpts{})

	calls := 0
	decoder := NewLenientDecoderFor(strict, func(dest reflect.Value) error {
		calls++
		return spec.setValue(dest, int64(ColorRed))
	}, DecoderOpts{})

	c, err := decodeColor(t, decoder, StringToken("nope"), ColorGreen)
	require.NoError(t, err)
	assert.Equal(t, ColorRed, c)
	assert.Equal(t, 1, calls)

	// Well-formed input never consults the default strategy.
	c, err = decodeColor(t, decoder, StringToken("blue"), ColorGreen)
	require.NoError(t, err)
	assert.Equal(t, ColorBlue, c)
	assert.Equal(t, 1, calls)
}

func TestLenientEnumDecoder_DefaultErrorSurfaces(t *testing.T) {
	spec := colorSpec(t, EnumSpecOpts{})
	wantErr := errors.New("default strategy failed")

	decoder := NewLenientDecoderFor(
		NewStrictEnumDecoder(spec, DecoderOpts{}),
		func(dest reflect.Value) error { return wantErr },
		DecoderOpts{},
	)

	_, err := decodeColor(t, decoder, NullToken(), ColorGreen)
	assert.ErrorIs(t, err, wantErr)
}
