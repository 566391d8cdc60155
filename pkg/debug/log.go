//go:build js && wasm

// Package debug logs to the browser console.
package debug

import (
	"fmt"
	"strings"
	"syscall/js"

	"github.com/jzhdev/vcanvas/pkg/reactive"
)

// EnableLogging routes reactive state tracing to the console
func EnableLogging() {
	reactive.SetDebugLog(Log)
}

// Log logs its arguments to the console, space separated. Values are
// formatted in Go first since js.ValueOf only accepts primitives.
func Log(args ...interface{}) {
	console(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// Logf logs a formatted message to the console
func Logf(format string, args ...interface{}) {
	console(fmt.Sprintf(format, args...))
}

func console(msg string) {
	js.Global().Get("console").Call("log", msg)
}
