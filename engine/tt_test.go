package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTProbeSaveIdempotence(t *testing.T) {
	tt := newTTWithClusters(1)

	hash := uint64(0xABCD1234)
	_, found, handle := tt.Probe(hash)
	require.False(t, found)

	tt.Save(handle, uint16(hash), Move16(1234), Eval(57), 6, EntryPv)

	entry, found, _ := tt.Probe(hash)
	require.True(t, found)
	assert.Equal(t, uint16(hash), entry.Key16)
	assert.Equal(t, Move16(1234), entry.Move)
	assert.Equal(t, Eval(57), entry.Eval)
	assert.Equal(t, uint8(6), entry.Depth)
	assert.Equal(t, EntryPv, entry.entryType())
}

// TestTTReplacement fills a one-cluster table with four distinct keys at
// depth 3, then a fifth save at depth 5 must evict the shallowest/oldest
// slot and be retrievable.
func TestTTReplacement(t *testing.T) {
	tt := newTTWithClusters(1)

	keys := []uint64{0x1111, 0x2222, 0x3333, 0x4444}
	for i, k := range keys {
		_, _, handle := tt.Probe(k)
		tt.Save(handle, uint16(k), Move16(i+1), Eval(i), 3, EntryPv)
	}

	fifth := uint64(0x5555)
	_, found, handle := tt.Probe(fifth)
	require.False(t, found, "fifth key should not already be present")

	tt.Save(handle, uint16(fifth), Move16(99), Eval(42), 5, EntryPv)

	entry, found, _ := tt.Probe(fifth)
	require.True(t, found)
	assert.Equal(t, Move16(99), entry.Move)
	assert.Equal(t, uint8(5), entry.Depth)
}

func TestTTSaveKeepsDeeperEntry(t *testing.T) {
	tt := newTTWithClusters(1)
	hash := uint64(0x42)

	_, _, h1 := tt.Probe(hash)
	tt.Save(h1, uint16(hash), Move16(1), Eval(10), 8, EntryPv)

	_, _, h2 := tt.Probe(hash)
	tt.Save(h2, uint16(hash), Move16(2), Eval(20), 3, EntryPv)

	entry, found, _ := tt.Probe(hash)
	require.True(t, found)
	assert.Equal(t, Move16(1), entry.Move, "shallower save must not replace the deeper entry")
	assert.Equal(t, uint8(8), entry.Depth)
}

func TestMulHi64(t *testing.T) {
	// high64(2^64-1 * 2) should be 1 (the product is 2^65-2, upper 64
	// bits are 1).
	got := mulHi64(^uint64(0), 2)
	assert.Equal(t, uint64(1), got)
}
