package export

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchvec/internal/geometry"
)

func sampleSet() geometry.StrokeSet {
	return geometry.NewStrokeSet([]geometry.Polyline{
		{{X: -10, Y: -10}, {X: 10, Y: -10}},
		{{X: 0, Y: 0}, {X: 1.23456, Y: -0.0001}, {X: 2, Y: 5}},
	})
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleSet()))

	assert.True(t, strings.HasPrefix(buf.String(), `{"strokes":[[[-10,-10],[10,-10]],`))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.True(t, sampleSet().Equal(back))
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, geometry.StrokeSet{}))
	assert.Equal(t, "{\"strokes\":[]}\n", buf.String())
}

func TestReadJSONRejectsGarbage(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{"))
	assert.Error(t, err)
}

type parsedSVG struct {
	ViewBox string `xml:"viewBox,attr"`
	Group   struct {
		Stroke string `xml:"stroke,attr"`
		Lines  []struct {
			Points string `xml:"points,attr"`
		} `xml:"polyline"`
	} `xml:"g"`
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, sampleSet(), DefaultSVGOptions()))
	assert.True(t, strings.HasPrefix(buf.String(), "<?xml"))

	var doc parsedSVG
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))

	// bounds x -10..10, y -10..5, margin 4
	assert.Equal(t, "-14 -14 28 23", doc.ViewBox)
	assert.Equal(t, "#000000", doc.Group.Stroke)
	require.Len(t, doc.Group.Lines, 2)
	assert.Equal(t, "-10,-10 10,-10", doc.Group.Lines[0].Points)
	assert.Equal(t, "0,0 1.235,0 2,5", doc.Group.Lines[1].Points)
}

func TestWriteSVGEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, geometry.StrokeSet{}, SVGOptions{}))

	var doc parsedSVG
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "0 0 1 1", doc.ViewBox)
	assert.Empty(t, doc.Group.Lines)
}

func TestNum(t *testing.T) {
	assert.Equal(t, "0", num(-0.0001))
	assert.Equal(t, "1.5", num(1.5))
	assert.Equal(t, "-2.667", num(-2.66666))
	assert.Equal(t, "100", num(100))
}
