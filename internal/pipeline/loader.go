package pipeline

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"sketchvec/internal/edges"
)

// Source is an encoded input kept alongside a decoded copy for display.
type Source struct {
	Name   string
	Data   []byte
	Image  image.Image
	Width  int
	Height int
	Format string
}

func LoadFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return LoadReader(f, path)
}

func LoadReader(r io.Reader, name string) (*Source, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read image data: %w", err)
	}
	return LoadBytes(data, name)
}

// LoadBytes decodes data once to validate it and to keep a display copy.
// Failures are reported as *edges.DecodeError.
func LoadBytes(data []byte, name string) (*Source, error) {
	if len(data) == 0 {
		return nil, edges.NewDecodeError("loader", edges.ReasonEmpty, nil)
	}
	img, stdFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, edges.NewDecodeError("loader", edges.ReasonUnsupported, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, edges.NewDecodeError("loader", edges.ReasonZeroSize, nil)
	}

	return &Source{
		Name:   name,
		Data:   data,
		Image:  img,
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: detectFormat(strings.ToLower(filepath.Ext(name)), stdFormat),
	}, nil
}

func detectFormat(ext, stdFormat string) string {
	switch ext {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		if stdFormat != "" {
			return stdFormat
		}
		return "unknown"
	}
}
