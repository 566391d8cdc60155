//go:build !js || !wasm

package vdom

// ElementRef is a reference to a rendered element. Outside the browser there
// is nothing to reference.
type ElementRef = any
