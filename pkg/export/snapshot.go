// Package export writes a still image of a surface: its current size, the
// visible viewport and the strokes drawn on it.
package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/jzhdev/vcanvas/pkg/components/canvas"
	"github.com/jzhdev/vcanvas/pkg/surface"
)

// Format selects the output encoding
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts "svg" or "png", case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported snapshot format %q (want svg or png)", s)
	}
}

// Options configures a snapshot
type Options struct {
	// Path is the output file. Format defaults to its extension.
	Path    string
	Format  Format
	State   surface.State
	Strokes []canvas.Stroke
	// Caption is drawn in the bottom-left corner, outside the viewport transform
	Caption string
}

// Save writes a snapshot to opts.Path
func Save(opts Options) error {
	if opts.Format == "" {
		f, err := ParseFormat(filepath.Ext(opts.Path))
		if err != nil {
			return err
		}
		opts.Format = f
	} else if _, err := ParseFormat(string(opts.Format)); err != nil {
		return err
	}

	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := Write(f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write encodes a snapshot to w in opts.Format. opts.Path is ignored.
func Write(w io.Writer, opts Options) error {
	switch opts.Format {
	case FormatSVG:
		return writeSVG(w, opts)
	case FormatPNG:
		return writePNG(w, opts)
	default:
		return fmt.Errorf("unsupported snapshot format %q", opts.Format)
	}
}

func px(v float64) int {
	return int(math.Round(v))
}

func writeSVG(w io.Writer, opts Options) error {
	st := opts.State
	width, height := px(st.Dimension.Width), px(st.Dimension.Height)
	doc := svg.New(w)
	if st.Zoomable {
		// Startview only takes ints; the live page renders fractional viewBoxes
		doc.Start(width, height, fmt.Sprintf(`viewBox="%s"`, st.Viewport.ViewBox()))
	} else {
		doc.Start(width, height)
	}
	vp := st.Viewport
	doc.Rect(int(math.Floor(vp.X)), int(math.Floor(vp.Y)), int(math.Ceil(vp.Width)), int(math.Ceil(vp.Height)), "fill:white")
	for _, s := range opts.Strokes {
		doc.Line(px(s.X1), px(s.Y1), px(s.X2), px(s.Y2), "stroke:"+strokeColor(s))
	}
	if opts.Caption != "" {
		// Undo the viewBox scale so the caption keeps its size
		doc.Gtransform(fmt.Sprintf("translate(%g %g) scale(%g)", st.Viewport.X, st.Viewport.Y, 1/viewScale(st)))
		doc.Text(4, height-4, opts.Caption, "font-family:monospace;font-size:13px;fill:#555")
		doc.Gend()
	}
	doc.End()
	return nil
}

func writePNG(w io.Writer, opts Options) error {
	st := opts.State
	width, height := px(st.Dimension.Width), px(st.Dimension.Height)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("cannot rasterize %dx%d surface", width, height)
	}
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// The viewport maps onto the full surface, like an svg viewBox
	scale := viewScale(st)
	dc.Push()
	dc.Scale(scale, scale)
	dc.Translate(-st.Viewport.X, -st.Viewport.Y)
	dc.SetLineWidth(1 / scale)
	for _, s := range opts.Strokes {
		if err := setColor(dc, strokeColor(s)); err != nil {
			return err
		}
		dc.DrawLine(s.X1, s.Y1, s.X2, s.Y2)
		dc.Stroke()
	}
	dc.Pop()

	if opts.Caption != "" {
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetRGB(0.33, 0.33, 0.33)
		dc.DrawString(opts.Caption, 4, float64(height-4))
	}
	return dc.EncodePNG(w)
}

// viewScale is surface pixels per viewport unit
func viewScale(st surface.State) float64 {
	if st.Viewport.Width <= 0 {
		return 1
	}
	return st.Dimension.Width / st.Viewport.Width
}

func strokeColor(s canvas.Stroke) string {
	if s.Color == "" {
		return "black"
	}
	return s.Color
}

var namedColors = map[string][3]float64{
	"black": {0, 0, 0},
	"white": {1, 1, 1},
	"red":   {1, 0, 0},
	"green": {0, 0.5, 0},
	"blue":  {0, 0, 1},
}

func setColor(dc *gg.Context, color string) error {
	if rgb, ok := namedColors[color]; ok {
		dc.SetRGB(rgb[0], rgb[1], rgb[2])
		return nil
	}
	if strings.HasPrefix(color, "#") {
		dc.SetHexColor(color)
		return nil
	}
	return fmt.Errorf("unsupported stroke color %q", color)
}
