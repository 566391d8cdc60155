//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/jzhdev/vcanvas/pkg/components/canvas"
	"github.com/jzhdev/vcanvas/pkg/debug"
	"github.com/jzhdev/vcanvas/pkg/styling"
	"github.com/jzhdev/vcanvas/pkg/surface"
)

var (
	document js.Value
	window   js.Value
)

func main() {
	document = js.Global().Get("document")
	window = js.Global().Get("window")

	debug.Log("🚀 vcanvas WASM client starting...")

	if document.Get("readyState").String() != "loading" {
		onReady()
	} else {
		document.Call("addEventListener", "DOMContentLoaded", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			onReady()
			return nil
		}))
	}

	// Keep the WASM runtime alive
	select {}
}

// pageConfig reads window.vcanvasConfig, which the host page may set to a
// JSON string, falling back to a 500x500 resizable, zoomable surface.
func pageConfig() surface.Config {
	cfg := surface.Config{Width: 500, Height: 500, Resizable: true, Zoomable: true}
	raw := window.Get("vcanvasConfig")
	if raw.Type() != js.TypeString {
		return cfg
	}
	if err := json.Unmarshal([]byte(raw.String()), &cfg); err != nil {
		debug.Logf("[client] ignoring bad vcanvasConfig: %v", err)
	}
	return cfg
}

func onReady() {
	root := document.Call("getElementById", "root")
	if root.IsNull() {
		js.Global().Get("console").Call("error", "Could not find #root element")
		return
	}

	if window.Get("vcanvasDebug").Truthy() {
		debug.EnableLogging()
	}

	style := document.Call("createElement", "style")
	style.Set("textContent", styling.GetAllCSS())
	document.Get("head").Call("appendChild", style)

	ctrl := surface.New(pageConfig())
	mounted, err := canvas.Mount(root, ctrl, canvas.SampleStroke.Node())
	if err != nil {
		debug.Logf("[client] mount failed: %v", err)
		return
	}

	window.Call("addEventListener", "pagehide", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		mounted.Release()
		return nil
	}))
}
