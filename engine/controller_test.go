package engine

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahoem/transparov/uci"
)

func TestParseIntOption(t *testing.T) {
	cases := map[string]struct {
		val int
		ok  bool
	}{
		"128": {128, true},
		"0":   {0, true},
		"":    {0, false},
		"abc": {0, false},
	}
	for in, want := range cases {
		v, ok := parseIntOption(in)
		if ok != want.ok || v != want.val {
			t.Errorf("parseIntOption(%q) = (%d, %v), want (%d, %v)", in, v, ok, want.val, want.ok)
		}
	}
}

func TestMaxDepthOption(t *testing.T) {
	assert.Equal(t, uint8(0), maxDepthOption(0))
	assert.Equal(t, uint8(0), maxDepthOption(-1))
	assert.Equal(t, uint8(0), maxDepthOption(256))
	assert.Equal(t, uint8(2), maxDepthOption(2))
	assert.Equal(t, uint8(255), maxDepthOption(255))
}

// syncBuffer is a concurrency-safe io.Writer so the test goroutine can poll
// engine output while the controller's own goroutine is still writing it.
type syncBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// TestEngineGoDepthEmitsBestMove drives scenario S2: a `go depth 2` with no
// time control must still terminate and emit a bestmove, instead of hanging
// forever waiting on a deadline that was never set.
func TestEngineGoDepthEmitsBestMove(t *testing.T) {
	logger, err := NewLogger(filepath.Join(t.TempDir(), "engine.log"))
	require.NoError(t, err)
	defer logger.Close()

	out := &syncBuffer{}
	e := NewEngine(1, uci.NewWriter(out), logger)

	in := make(chan uci.InMessage, 4)
	in <- uci.Parse("position fen 6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	in <- uci.Parse("go depth 2")

	done := make(chan struct{})
	go func() {
		e.Run(in)
		close(done)
	}()

	deadline := time.Now().Add(10 * time.Second)
	for !strings.Contains(out.String(), "bestmove") {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for bestmove: go depth was not honored")
		}
		time.Sleep(5 * time.Millisecond)
	}

	in <- uci.InMessage{Kind: uci.Quit}
	<-done

	assert.Contains(t, out.String(), "bestmove a1a8")
}
