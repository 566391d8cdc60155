package main

import (
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/jzhdev/vcanvas/pkg/builder"
	"github.com/jzhdev/vcanvas/pkg/components/canvas"
	"github.com/jzhdev/vcanvas/pkg/renderer/html"
	"github.com/jzhdev/vcanvas/pkg/styling"
	"github.com/jzhdev/vcanvas/pkg/surface"
	"github.com/jzhdev/vcanvas/pkg/vdom"
)

const pageTitle = "vcanvas"

// servePage renders the host page for a fresh session. With a bundle the
// page boots the WASM client, which owns the surface state in the browser;
// otherwise the inline script drives a server-side session over /live/.
func servePage(w http.ResponseWriter, cfg surface.Config, bundle *wasmBundle) {
	scripts := []*vdom.VNode{builder.Script().Text(liveClientJS).Build()}
	if bundle != nil {
		var err error
		if scripts, err = wasmScripts(cfg); err != nil {
			log.Printf("[serve] Failed to encode client config: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if err := renderPage(w, uuid.NewString(), surface.New(cfg).State(), scripts...); err != nil {
		log.Printf("[serve] Failed to render page: %v", err)
	}
}

// renderPage writes the full document: the canvas as of st followed by the
// scripts that bring it to life.
func renderPage(w io.Writer, session string, st surface.State, scripts ...*vdom.VNode) error {
	body := []*vdom.VNode{
		builder.H1().Text("Resizable canvas").Build(),
		builder.Div().
			ID("root").
			Data("session", session).
			Children(canvas.Canvas(st, canvas.SampleStroke.Node())).
			Build(),
	}
	page := builder.Html().Children(
		builder.Head().Children(
			builder.Meta().Charset("utf-8").Build(),
			builder.Title().Text(pageTitle).Build(),
			builder.StyleTag().Text(styling.GetAllCSS()).Build(),
		).Build(),
		builder.Body().Children(append(body, scripts...)...).Build(),
	).Build()
	return html.NewRenderer(w).RenderPage(page)
}

// liveClientJS forwards mouse input as binary event frames
// ([0x01][event][handle][x f64 LE][y f64 LE]) and applies state frames.
const liveClientJS = `(function () {
  var root = document.getElementById("root");
  var handles = { r: 1, b: 2, br: 3 };
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/live/" + root.dataset.session);
  ws.binaryType = "arraybuffer";
  var dragging = false;

  function send(type, handle, x, y) {
    if (ws.readyState !== WebSocket.OPEN) return;
    var buf = new ArrayBuffer(19);
    var v = new DataView(buf);
    v.setUint8(0, 1);
    v.setUint8(1, type);
    v.setUint8(2, handle);
    v.setFloat64(3, x, true);
    v.setFloat64(11, y, true);
    ws.send(buf);
  }

  root.addEventListener("mousedown", function (e) {
    var h = e.target.dataset && e.target.dataset.handle;
    if (!h) return;
    e.preventDefault();
    dragging = true;
    send(1, handles[h], e.clientX, e.clientY);
  });
  window.addEventListener("mousemove", function (e) {
    if (dragging) send(2, 0, e.clientX, e.clientY);
  });
  window.addEventListener("mouseup", function (e) {
    if (!dragging) return;
    dragging = false;
    send(3, 0, e.clientX, e.clientY);
  });
  root.addEventListener("wheel", function (e) {
    var svg = root.querySelector("svg");
    if (!svg || !svg.contains(e.target)) return;
    if (svg.hasAttribute("viewBox")) e.preventDefault();
    send(4, 0, 0, e.deltaY);
  }, { passive: false });

  ws.onmessage = function (m) {
    if (typeof m.data !== "string") return;
    var s = JSON.parse(m.data);
    if (s.type === "state") apply(s);
  };

  function apply(s) {
    var container = root.firstElementChild;
    var svg = container.querySelector("svg");
    svg.setAttribute("width", s.width);
    svg.setAttribute("height", s.height);
    if (s.viewBox) {
      svg.setAttribute("viewBox", s.viewBox);
      svg.dataset.zoom = s.zoom;
    } else {
      svg.removeAttribute("viewBox");
    }
    var seen = {};
    s.handles.forEach(function (h) {
      var el = container.querySelector('[data-handle="' + h.handle + '"]');
      if (!el) {
        el = document.createElement("div");
        el.dataset.handle = h.handle;
        container.appendChild(el);
      }
      el.className = "resizer resizer-" + h.handle + (s.active === h.handle ? " active" : "");
      el.style.cssText = h.style;
      seen[h.handle] = true;
    });
    container.querySelectorAll("[data-handle]").forEach(function (el) {
      if (!seen[el.dataset.handle]) el.remove();
    });
  }
})();
`
