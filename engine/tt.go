package engine

import "sync/atomic"

// EntryType records whether a TT entry's score is exact, a lower bound
// (beta cutoff), or an upper bound (no move improved alpha).
type EntryType uint8

const (
	EntryNone EntryType = 0
	EntryAll  EntryType = 1 // upper bound
	EntryCut  EntryType = 2 // lower bound
	EntryPv   EntryType = 4 // exact
)

const (
	genDelta  = 8
	genCycle  = 0xFF + genDelta
	genMask   = 0xF8
	typeMask  = 0x07
	clusterSz = 4
)

// TTEntry is the 64-bit packed record stored per slot: key16 (low 16 bits
// of the position hash), a packed move, an eval, a search depth, and a
// generation+bound byte. It round-trips to/from a single uint64 so it can
// be loaded and stored atomically without tearing.
type TTEntry struct {
	Key16    uint16
	Move     Move16
	Eval     Eval
	Depth    uint8
	GenBound uint8 // high 5 bits generation, low 3 bits EntryType
}

func (e TTEntry) entryType() EntryType {
	return EntryType(e.GenBound & typeMask)
}

func (e TTEntry) pack() uint64 {
	return uint64(e.Key16) |
		uint64(uint16(e.Move))<<16 |
		uint64(uint16(e.Eval))<<32 |
		uint64(e.Depth)<<48 |
		uint64(e.GenBound)<<56
}

func unpackTTEntry(w uint64) TTEntry {
	return TTEntry{
		Key16:    uint16(w),
		Move:     Move16(uint16(w >> 16)),
		Eval:     Eval(uint16(w >> 32)),
		Depth:    uint8(w >> 48),
		GenBound: uint8(w >> 56),
	}
}

// TTCluster holds 4 entries and is the resolution unit of replacement. The
// four atomic.Uint64 words occupy 32 bytes, matching one cache line on
// common architectures.
type TTCluster struct {
	slots [clusterSz]atomic.Uint64
}

// Handle names the slot a save should write into.
type Handle struct {
	cluster int
	slot    int
}

// TT is the shared, lock-free transposition table.
type TT struct {
	clusters []TTCluster
	gen      atomic.Uint32 // low byte is the active generation
}

// NewTT builds a table sized to hold roughly sizeMB megabytes of clusters.
func NewTT(sizeMB int) *TT {
	if sizeMB <= 0 {
		sizeMB = 64
	}
	n := (uint64(sizeMB) * 1024 * 1024) / uint64(32)
	if n == 0 {
		n = 1
	}
	return &TT{clusters: make([]TTCluster, n)}
}

// newTTWithClusters builds a table with an exact cluster count, for tests
// that need to force key collisions into a single cluster.
func newTTWithClusters(n int) *TT {
	if n < 1 {
		n = 1
	}
	return &TT{clusters: make([]TTCluster, n)}
}

// Resize rebuilds the table at a new size, discarding all entries. Callers
// must ensure no search is in flight.
func (t *TT) Resize(sizeMB int) {
	fresh := NewTT(sizeMB)
	t.clusters = fresh.clusters
	t.gen.Store(0)
}

func mulHi64(x, y uint64) uint64 {
	const mask32 = 0xFFFFFFFF
	xLo, xHi := x&mask32, x>>32
	yLo, yHi := y&mask32, y>>32

	lo := xLo * yLo
	mid1 := xHi * yLo
	mid2 := xLo * yHi
	hi := xHi * yHi

	carry := (lo>>32 + mid1&mask32 + mid2&mask32) >> 32
	return hi + mid1>>32 + mid2>>32 + carry
}

func (t *TT) clusterIndex(hash uint64) int {
	return int(mulHi64(hash, uint64(len(t.clusters))))
}

// NewSearch bumps the generation counter for a fresh `go` command.
func (t *TT) NewSearch() {
	t.gen.Add(genDelta)
}

func (t *TT) currentGen() uint8 {
	return uint8(t.gen.Load())
}

// Probe looks up hash. If found, entry.Depth != 0 and its fields reflect
// the last save at that key. handle names the slot to pass to Save
// (either the matching/stale slot refreshed here, or the chosen victim).
func (t *TT) Probe(hash uint64) (entry TTEntry, found bool, handle Handle) {
	ci := t.clusterIndex(hash)
	cluster := &t.clusters[ci]
	key16 := uint16(hash)
	gen := t.currentGen()

	victim := -1
	victimScore := int(^uint(0) >> 1) // max int, so any real score is smaller

	for i := 0; i < clusterSz; i++ {
		w := cluster.slots[i].Load()
		e := unpackTTEntry(w)
		if e.Key16 == key16 || e.Depth == 0 {
			e.GenBound = gen | (e.GenBound & typeMask)
			cluster.slots[i].Store(e.pack())
			if e.Depth == 0 {
				return TTEntry{}, false, Handle{cluster: ci, slot: i}
			}
			return e, true, Handle{cluster: ci, slot: i}
		}
		age := int((uint16(genCycle) + uint16(gen) - uint16(e.GenBound)) & genMask)
		score := int(e.Depth) - age
		if score < victimScore {
			victimScore = score
			victim = i
		}
	}
	if victim < 0 {
		victim = 0
	}
	return TTEntry{}, false, Handle{cluster: ci, slot: victim}
}

// Save writes (key16, mv, eval, depth, type) into handle's slot, but only
// if depth strictly improves on whatever is currently there (always-replace
// by depth; ties keep the older entry).
func (t *TT) Save(handle Handle, key16 uint16, mv Move16, eval Eval, depth uint8, et EntryType) {
	cluster := &t.clusters[handle.cluster]
	slot := &cluster.slots[handle.slot]
	old := unpackTTEntry(slot.Load())
	if old.Depth != 0 && old.Depth >= depth {
		return
	}
	e := TTEntry{
		Key16:    key16,
		Move:     mv,
		Eval:     eval,
		Depth:    depth,
		GenBound: t.currentGen() | uint8(et),
	}
	slot.Store(e.pack())
}

// Hashfull samples the first 1000 clusters and returns the permille of
// slots occupied by entries of the current generation, for UCI
// `info hashfull`. Entries left from earlier searches are not counted.
func (t *TT) Hashfull() int {
	sample := 1000
	if sample > len(t.clusters) {
		sample = len(t.clusters)
	}
	if sample == 0 {
		return 0
	}
	used, total := 0, 0
	gen := t.currentGen()
	for i := 0; i < sample; i++ {
		for s := 0; s < clusterSz; s++ {
			total++
			e := unpackTTEntry(t.clusters[i].slots[s].Load())
			if e.Depth != 0 && e.GenBound&genMask == gen {
				used++
			}
		}
	}
	return used * 1000 / total
}
