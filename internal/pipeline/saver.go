package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sketchvec/internal/export"
	"sketchvec/internal/render"
)

// Output formats understood by Save.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// FormatForPath picks an output format from a file extension, falling
// back to JSON.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG
	case ".png":
		return FormatPNG
	default:
		return FormatJSON
	}
}

// Save writes res in the given format. PNG output is a preview raster of
// the source dimensions at the result's own world scale.
func Save(w io.Writer, res *Result, format string) error {
	if res == nil {
		return fmt.Errorf("no result to save")
	}

	switch strings.ToLower(format) {
	case "", FormatJSON:
		return export.WriteJSON(w, res.Strokes)
	case FormatSVG:
		return export.WriteSVG(w, res.Strokes, export.DefaultSVGOptions())
	case FormatPNG:
		return render.WritePNG(w, res.Strokes, render.DefaultPreviewOptions(res.Width, res.Height, res.WorldScale))
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// SaveFile creates path and writes res to it, choosing the format from the
// extension when format is empty.
func SaveFile(path string, res *Result, format string) (err error) {
	if format == "" {
		format = FormatForPath(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Save(bw, res, format); err != nil {
		return err
	}
	return bw.Flush()
}
