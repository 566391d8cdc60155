package live

import (
	"sort"
	"testing"
	"time"

	"github.com/jzhdev/vcanvas/pkg/surface"
)

func calculatePercentile(latencies []time.Duration, percentile float64) time.Duration {
	sorted := append([]time.Duration(nil), latencies...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(float64(len(sorted)-1) * percentile / 100)
	return sorted[idx]
}

// dragFrames is one corner drag: press, n moves, release
func dragFrames(n int) [][]byte {
	frames := [][]byte{EncodeEvent(Event{Type: EventPointerDown, Handle: surface.BottomRight, X: 0, Y: 0})}
	for i := 1; i <= n; i++ {
		frames = append(frames, EncodeEvent(Event{Type: EventPointerMove, X: float64(i), Y: float64(i)}))
	}
	return append(frames, EncodeEvent(Event{Type: EventPointerUp, X: float64(n), Y: float64(n)}))
}

// TestInputToStateLatencyP95 measures decode, controller update and state
// encoding for one input frame.
func TestInputToStateLatencyP95(t *testing.T) {
	sess := newSession("bench", nil, surface.Config{Width: 500, Height: 500, Resizable: true, Zoomable: true})
	frames := dragFrames(200)

	latencies := make([]time.Duration, 0, len(frames))
	for _, frame := range frames {
		start := time.Now()
		evt, err := DecodeEvent(frame)
		if err != nil {
			t.Fatal(err)
		}
		sess.handleEvent(evt)
		latencies = append(latencies, time.Since(start))
	}

	if st := sess.State(); st.Dimension.Width != 700 || st.Resizing() {
		t.Fatalf("unexpected final state %+v", st)
	}
	if sess.pending == nil {
		t.Fatal("no state queued")
	}

	p95 := calculatePercentile(latencies, 95)
	if p95 > 5*time.Millisecond {
		t.Errorf("input latency P95 is %v, expected <5ms", p95)
	} else {
		t.Logf("✓ input latency P95: %v", p95)
	}
}

func BenchmarkHandleMove(b *testing.B) {
	sess := newSession("bench", nil, surface.Config{Width: 500, Height: 500, Resizable: true})
	sess.handleEvent(&Event{Type: EventPointerDown, Handle: surface.BottomRight})
	frames := dragFrames(100)[1:101]

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		evt, _ := DecodeEvent(frames[i%len(frames)])
		sess.handleEvent(evt)
	}
}

func BenchmarkEventCodec(b *testing.B) {
	evt := Event{Type: EventPointerMove, X: 123.5, Y: 456.25}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeEvent(EncodeEvent(evt)); err != nil {
			b.Fatal(err)
		}
	}
}
