package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jzhdev/vcanvas/cmd/vcanvas/internal/config"
	"github.com/jzhdev/vcanvas/cmd/vcanvas/internal/watcher"
	"github.com/jzhdev/vcanvas/pkg/live"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var port int
	var host string
	var noWatch bool
	var wasm bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the canvas page",
		Long: `Serves a page hosting the canvas. Each page load opens a live session that
streams pointer and wheel input to the server, which owns the surface state.
Edits to the config file are applied to every open page.

With --wasm the page runs the surface in the browser instead: ./app/client is
compiled with GOOS=js GOARCH=wasm at startup and served as /app.wasm. Config
edits then take effect on the next page load.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			return runServe(cmd.Context(), path, host, port, !noWatch, wasm)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (overrides config)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the config file on change")
	cmd.Flags().BoolVar(&wasm, "wasm", false, "Build and serve the WASM client from "+clientPackage)

	return cmd
}

func runServe(ctx context.Context, path, host string, port int, watch, wasm bool) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	// CLI takes precedence over the file
	if port != 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var bundle *wasmBundle
	if wasm {
		dir, err := os.MkdirTemp("", "vcanvas-wasm-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)
		if bundle, err = buildWASM(ctx, clientPackage, dir); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}
	}

	liveServer := live.NewServer(cfg.Canvas.Surface())

	if watch {
		err := watcher.WatchFile(ctx, path, watcher.DefaultDebounce, func() {
			reloadConfig(path, liveServer)
		})
		if err != nil {
			log.Printf("[serve] Config reload disabled: %v", err)
		}
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: newServeMux(liveServer, bundle),
	}

	go func() {
		<-ctx.Done()
		log.Println("[serve] Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[serve] Canvas running at http://%s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// reloadConfig re-reads the file and pushes the canvas section to every
// session. A broken file keeps the previous configuration.
func reloadConfig(path string, liveServer *live.Server) {
	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("[serve] Ignoring config change: %v", err)
		return
	}
	log.Printf("[serve] Config changed, reloading %s", path)
	liveServer.Reconfigure(cfg.Canvas.Surface())
}

// newServeMux routes the page and the live endpoint. A non-nil bundle also
// serves the WASM client.
func newServeMux(liveServer *live.Server, bundle *wasmBundle) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(live.PathPrefix, liveServer.HandleWebSocket)
	if bundle != nil {
		mux.HandleFunc("/app.wasm", bundle.serveWASM)
		mux.HandleFunc("/wasm_exec.js", bundle.serveWasmExec)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		servePage(w, liveServer.Config(), bundle)
	})
	// Quiet favicon 404s
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}
