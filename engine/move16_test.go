package engine

import (
	"testing"

	"github.com/brighamskarda/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove16RoundTrip(t *testing.T) {
	cases := []string{"a1a8", "e2e4", "h7h8q", "h7h8n", "a7a8r", "b7b8b", "e1g1"}
	for _, text := range cases {
		var mv chess.Move
		require.NoError(t, mv.UnmarshalText([]byte(text)))

		packed := EncodeMove16(mv)
		assert.False(t, packed.IsZero(), "real move must not pack to the zero sentinel: %s", text)

		decoded, ok := packed.Decode()
		require.True(t, ok)

		decodedText, err := decoded.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, text, string(decodedText))
	}
}

func TestMove16ZeroSentinel(t *testing.T) {
	var zero Move16
	assert.True(t, zero.IsZero())
	_, ok := zero.Decode()
	assert.False(t, ok)
}

func TestMove16AllSquarePairs(t *testing.T) {
	for src := 0; src < 64; src++ {
		for dst := 0; dst < 64; dst++ {
			if src == dst {
				continue
			}
			text := string(squareText(uint16(src))) + string(squareText(uint16(dst)))
			var mv chess.Move
			require.NoError(t, mv.UnmarshalText([]byte(text)))

			packed := EncodeMove16(mv)
			decoded, ok := packed.Decode()
			require.True(t, ok)
			decodedText, err := decoded.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, text, string(decodedText))
		}
	}
}
