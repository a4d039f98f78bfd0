package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"sketchvec/internal/geometry"
)

type SVGOptions struct {
	Margin      float64
	StrokeWidth float64
	Stroke      string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Margin: 4, StrokeWidth: 1.5, Stroke: "#000000"}
}

type svgDoc struct {
	XMLName xml.Name `xml:"svg"`
	NS      string   `xml:"xmlns,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	Group   svgGroup `xml:"g"`
}

type svgGroup struct {
	Fill        string        `xml:"fill,attr"`
	Stroke      string        `xml:"stroke,attr"`
	StrokeWidth string        `xml:"stroke-width,attr"`
	LineCap     string        `xml:"stroke-linecap,attr"`
	LineJoin    string        `xml:"stroke-linejoin,attr"`
	Lines       []svgPolyline `xml:"polyline"`
}

type svgPolyline struct {
	Points string `xml:"points,attr"`
}

// WriteSVG writes one polyline per stroke in draw order. The viewBox
// covers the stroke bounds plus the margin; y keeps its world orientation,
// which already points down.
func WriteSVG(w io.Writer, set geometry.StrokeSet, opts SVGOptions) error {
	if opts.Stroke == "" {
		opts.Stroke = "#000000"
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 1
	}

	b := set.Bounds().Inflate(opts.Margin)
	width, height := math.Max(b.Width(), 1), math.Max(b.Height(), 1)

	doc := svgDoc{
		NS:      "http://www.w3.org/2000/svg",
		ViewBox: strings.Join([]string{num(b.Min.X), num(b.Min.Y), num(width), num(height)}, " "),
		Width:   num(width),
		Height:  num(height),
		Group: svgGroup{
			Fill:        "none",
			Stroke:      opts.Stroke,
			StrokeWidth: num(opts.StrokeWidth),
			LineCap:     "round",
			LineJoin:    "round",
			Lines:       make([]svgPolyline, 0, set.Len()),
		},
	}

	for i := 0; i < set.Len(); i++ {
		stroke := set.At(i)
		pts := make([]string, len(stroke))
		for k, p := range stroke {
			pts[k] = num(p.X) + "," + num(p.Y)
		}
		doc.Group.Lines = append(doc.Group.Lines, svgPolyline{Points: strings.Join(pts, " ")})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode svg: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// num formats with at most three decimals and no trailing zeros.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 { // drops negative zero
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
