package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/jzhdev/vcanvas/pkg/builder"
	"github.com/jzhdev/vcanvas/pkg/surface"
	"github.com/jzhdev/vcanvas/pkg/vdom"
)

// clientPackage is the in-browser client built by serve --wasm
const clientPackage = "./app/client"

// wasmBundle is a compiled client next to the wasm_exec.js shipped with the
// Go toolchain that built it.
type wasmBundle struct {
	dir string
}

func (b *wasmBundle) wasmPath() string { return filepath.Join(b.dir, "app.wasm") }
func (b *wasmBundle) execPath() string { return filepath.Join(b.dir, "wasm_exec.js") }

// buildWASM compiles pkg for js/wasm into dir and copies the matching
// wasm_exec.js beside it.
func buildWASM(ctx context.Context, pkg, dir string) (*wasmBundle, error) {
	b := &wasmBundle{dir: dir}
	start := time.Now()

	cmd := exec.CommandContext(ctx, "go", "build", "-o", b.wasmPath(), pkg)
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("wasm build failed: %w\nOutput: %s", err, output)
	}

	src, err := findWasmExec(ctx)
	if err != nil {
		return nil, err
	}
	if err := copyFile(src, b.execPath()); err != nil {
		return nil, fmt.Errorf("copy wasm_exec.js: %w", err)
	}

	log.Printf("[serve] Built %s in %v", pkg, time.Since(start).Round(time.Millisecond))
	return b, nil
}

// findWasmExec locates wasm_exec.js under GOROOT. Go 1.24 moved it from
// misc/wasm to lib/wasm.
func findWasmExec(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "go", "env", "GOROOT").Output()
	if err != nil {
		return "", fmt.Errorf("go env GOROOT: %w", err)
	}
	root := strings.TrimSpace(string(out))
	for _, rel := range []string{"lib/wasm/wasm_exec.js", "misc/wasm/wasm_exec.js"} {
		p := filepath.Join(root, rel)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("wasm_exec.js not found under %s", root)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (b *wasmBundle) serveWASM(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/wasm")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, b.wasmPath())
}

func (b *wasmBundle) serveWasmExec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	http.ServeFile(w, r, b.execPath())
}

// wasmScripts loads the client and hands it cfg through window.vcanvasConfig
func wasmScripts(cfg surface.Config) ([]*vdom.VNode, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	// Encoded twice: the client expects a JSON string, and json.Marshal
	// escapes < and > so the literal cannot close the script element.
	literal, err := json.Marshal(string(raw))
	if err != nil {
		return nil, err
	}
	return []*vdom.VNode{
		builder.Script().Attr("src", "/wasm_exec.js").Build(),
		builder.Script().Text(fmt.Sprintf(wasmBootstrapJS, literal)).Build(),
	}, nil
}

const wasmBootstrapJS = `window.vcanvasConfig = %s;
(function () {
  var go = new Go();
  WebAssembly.instantiateStreaming(fetch("/app.wasm"), go.importObject)
    .then(function (r) { go.run(r.instance); })
    .catch(function (err) { console.error("vcanvas: loading app.wasm failed", err); });
})();
`
