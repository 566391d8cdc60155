package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jzhdev/vcanvas/pkg/builder"
	"github.com/jzhdev/vcanvas/pkg/live"
	"github.com/jzhdev/vcanvas/pkg/surface"
)

func TestRenderPage(t *testing.T) {
	st := surface.New(surface.Config{Width: 500, Height: 500, Resizable: true, Zoomable: true}).State()

	var buf bytes.Buffer
	if err := renderPage(&buf, "abc", st, builder.Script().Text(liveClientJS).Build()); err != nil {
		t.Fatalf("renderPage: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`data-session="abc"`,
		`<svg`,
		`width="500"`,
		`viewBox="0 0 500 500"`,
		`data-handle="r"`,
		`data-handle="b"`,
		`data-handle="br"`,
		`x1="6"`,
		"new WebSocket",
		".resizer-br",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestServeMux(t *testing.T) {
	liveServer := live.NewServer(surface.Config{Width: 300, Height: 200, VerticallyResizable: true})
	ts := httptest.NewServer(newServeMux(liveServer, nil))
	defer ts.Close()

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/", http.StatusOK, `data-handle="b"`},
		{"/missing", http.StatusNotFound, ""},
		{"/favicon.ico", http.StatusNoContent, ""},
		{"/live/", http.StatusBadRequest, ""},
		{"/app.wasm", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body, _ := io.ReadAll(resp.Body)
			if tt.body != "" && !strings.Contains(string(body), tt.body) {
				t.Errorf("body missing %q", tt.body)
			}
		})
	}
}

func TestServeMux_FreshSessionPerPage(t *testing.T) {
	liveServer := live.NewServer(surface.Config{Width: 100, Height: 100})
	mux := newServeMux(liveServer, nil)

	ids := map[string]bool{}
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		body := rec.Body.String()
		idx := strings.Index(body, `data-session="`)
		if idx < 0 {
			t.Fatal("no session attribute")
		}
		rest := body[idx+len(`data-session="`):]
		ids[rest[:strings.Index(rest, `"`)]] = true
	}
	if len(ids) != 2 {
		t.Errorf("expected distinct session ids, got %v", ids)
	}
}

func TestServeMux_WASM(t *testing.T) {
	dir := t.TempDir()
	bundle := &wasmBundle{dir: dir}
	if err := os.WriteFile(bundle.wasmPath(), []byte("\x00asm\x01\x00\x00\x00"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bundle.execPath(), []byte("class Go {}"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := surface.Config{Width: 320, Height: 240, Resizable: true, Zoomable: true, Zoom: 0.5}
	ts := httptest.NewServer(newServeMux(live.NewServer(cfg), bundle))
	defer ts.Close()

	tests := []struct {
		path        string
		contentType string
		body        string
	}{
		{"/app.wasm", "application/wasm", "\x00asm"},
		{"/wasm_exec.js", "application/javascript", "class Go"},
		{"/", "text/html; charset=utf-8", `<script src="/wasm_exec.js">`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.body) {
				t.Errorf("body missing %q", tt.body)
			}
		})
	}

	// The page boots the client with the served config instead of the live script
	rec := httptest.NewRecorder()
	servePage(rec, cfg, bundle)
	page := rec.Body.String()
	if strings.Contains(page, "new WebSocket") {
		t.Error("wasm page still carries the live client")
	}
	const prefix = "window.vcanvasConfig = "
	i := strings.Index(page, prefix)
	if i < 0 {
		t.Fatal("page does not set window.vcanvasConfig")
	}
	rest := page[i+len(prefix):]
	var raw string
	if err := json.NewDecoder(strings.NewReader(rest)).Decode(&raw); err != nil {
		t.Fatalf("config literal: %v", err)
	}
	var got surface.Config
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("config json: %v", err)
	}
	if got != cfg {
		t.Errorf("client config = %+v, want %+v", got, cfg)
	}
}

func TestBuildWASM(t *testing.T) {
	if testing.Short() {
		t.Skip("compiles the client")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not on PATH")
	}
	bundle, err := buildWASM(context.Background(), "../../app/client", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(bundle.wasmPath())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x00asm")) {
		t.Errorf("app.wasm is not a wasm module")
	}
	if info, err := os.Stat(bundle.execPath()); err != nil || info.Size() == 0 {
		t.Errorf("wasm_exec.js missing: %v", err)
	}
}

func TestReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vcanvas.yaml")
	liveServer := live.NewServer(surface.Config{Width: 500, Height: 500})

	data := []byte("canvas:\n  width: 320\n  height: 240\n  zoomable: true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	reloadConfig(path, liveServer)
	if got := liveServer.Config(); got.Width != 320 || got.Height != 240 || !got.Zoomable {
		t.Errorf("config after reload = %+v", got)
	}

	// A broken file keeps the last good configuration
	if err := os.WriteFile(path, []byte("canvas: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	reloadConfig(path, liveServer)
	if got := liveServer.Config(); got.Width != 320 {
		t.Errorf("broken file replaced config: %+v", got)
	}
}
