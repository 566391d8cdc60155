//go:build js && wasm

package debug

import (
	"strings"
	"syscall/js"
	"testing"

	"github.com/jzhdev/vcanvas/pkg/reactive"
	"github.com/jzhdev/vcanvas/pkg/surface"
)

// captureConsole swaps console.log for a recorder until the test ends
func captureConsole(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	console := js.Global().Get("console")
	orig := console.Get("log")
	fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		for _, a := range args {
			lines = append(lines, a.String())
		}
		return nil
	})
	console.Set("log", fn)
	t.Cleanup(func() {
		console.Set("log", orig)
		fn.Release()
	})
	return &lines
}

func TestEnableLogging_StructValues(t *testing.T) {
	lines := captureConsole(t)
	EnableLogging()
	defer reactive.SetDebugLog(nil)

	ctrl := surface.New(surface.Config{Width: 300, Height: 200, Resizable: true, Zoomable: true})
	ctrl.BeginResize(surface.BottomRight, surface.Coordinate{X: 10, Y: 10})
	ctrl.PointerMove(surface.Coordinate{X: 30, Y: 40})
	ctrl.EndResize()
	ctrl.Wheel(1)

	if len(*lines) == 0 {
		t.Fatal("expected console output")
	}
	found := false
	for _, l := range *lines {
		if strings.HasPrefix(l, "[State] Set called with value: ") && strings.Contains(l, "320") {
			found = true
		}
	}
	if !found {
		t.Errorf("resize not traced, got %q", *lines)
	}
}

func TestLog(t *testing.T) {
	lines := captureConsole(t)
	Log("size", surface.Dimension{Width: 1, Height: 2}, 3)
	Logf("zoom %.2f", 0.5)

	want := []string{"size {1 2} 3", "zoom 0.50"}
	if len(*lines) != len(want) {
		t.Fatalf("lines = %q", *lines)
	}
	for i, w := range want {
		if (*lines)[i] != w {
			t.Errorf("line %d = %q, want %q", i, (*lines)[i], w)
		}
	}
}
