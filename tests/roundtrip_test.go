package lenum_test

import (
	"sync"
	"testing"

	"github.com/SimonDaKappa/go-lenum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelSpec = lenum.MustEnumSpec("level", map[string]Level{
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
}, lenum.EnumSpecOpts{})

func newLevelRegistry(t *testing.T) *lenum.DecoderRegistry {
	t.Helper()
	reg, err := lenum.NewDecoderRegistry(lenum.DecoderRegistryOpts{
		Decoders: []lenum.EnumDecoder{
			lenum.NewTypedLenientDecoder(levelSpec, LevelInfo, lenum.DecoderOpts{}),
		},
	})
	require.NoError(t, err)
	return reg
}

func TestDecodeEncodeRoundtrip(t *testing.T) {
	reg := newLevelRegistry(t)
	encoder := lenum.NewEnumEncoder(levelSpec, lenum.DecoderOpts{})

	for _, member := range levelSpec.Members() {
		t.Run(member, func(t *testing.T) {
			var lvl Level
			require.NoError(t, reg.DecodeValue(`"`+member+`"`, &lvl))

			out, err := encoder.Marshal(lvl)
			require.NoError(t, err)
			assert.Equal(t, `"`+member+`"`, string(out))
		})
	}
}

func TestDriftingUpstreamNeverAborts(t *testing.T) {
	reg := newLevelRegistry(t)
	sd := lenum.NewStructDecoder(lenum.StructDecoderOpts{Registry: reg})

	type logLine struct {
		Message string `json:"msg"`
		Level   Level  `json:"level" enum:""`
	}

	// Documents a newer producer might emit: unknown members, nulls,
	// blanks, garbage integers. None of them may abort decoding.
	documents := []string{
		`{"msg": "a", "level": "trace"}`,
		`{"msg": "b", "level": null}`,
		`{"msg": "c", "level": ""}`,
		`{"msg": "d", "level": "  "}`,
		`{"msg": "e"}`,
	}

	for _, doc := range documents {
		var line logLine
		require.NoError(t, sd.Unmarshal([]byte(doc), &line), doc)
		if line.Level != LevelInfo && line.Level != LevelDebug {
			t.Fatalf("document %s produced out-of-set level %d", doc, line.Level)
		}
		assert.NotEmpty(t, line.Message)
	}
}

func TestConcurrentDecodes(t *testing.T) {
	reg := newLevelRegistry(t)
	sd := lenum.NewStructDecoder(lenum.StructDecoderOpts{Registry: reg})

	type logLine struct {
		Message string `json:"msg"`
		Level   Level  `json:"level" enum:""`
	}

	documents := []struct {
		data []byte
		want Level
	}{
		{[]byte(`{"msg": "x", "level": "debug"}`), LevelDebug},
		{[]byte(`{"msg": "x", "level": "error"}`), LevelError},
		{[]byte(`{"msg": "x", "level": "nonsense"}`), LevelInfo},
		{[]byte(`{"msg": "x", "level": 2}`), LevelWarn},
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		doc := documents[i%len(documents)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				var line logLine
				if err := sd.Unmarshal(doc.data, &line); err != nil {
					t.Errorf("unexpected decode failure: %v", err)
					return
				}
				if line.Level != doc.want {
					t.Errorf("got level %d, want %d", line.Level, doc.want)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkLenientDecode(b *testing.B) {
	decoder := lenum.NewTypedLenientDecoder(levelSpec, LevelInfo, lenum.DecoderOpts{})
	reg, err := lenum.NewDecoderRegistry(lenum.DecoderRegistryOpts{
		Decoders: []lenum.EnumDecoder{decoder},
	})
	if err != nil {
		b.Fatal(err)
	}

	b.Run("KnownMember", func(b *testing.B) {
		var lvl Level
		for i := 0; i < b.N; i++ {
			_ = reg.DecodeValue(`"warn"`, &lvl)
		}
	})

	b.Run("UnknownMember", func(b *testing.B) {
		var lvl Level
		for i := 0; i < b.N; i++ {
			_ = reg.DecodeValue(`"nope"`, &lvl)
		}
	})
}
