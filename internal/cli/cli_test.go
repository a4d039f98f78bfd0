package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchvec/internal/export"
)

func writeImage(t *testing.T, dir, name string, ink bool) string {
	t.Helper()
	dc := gg.NewContext(64, 64)
	defer dc.Close()

	dc.ClearWithColor(gg.White)
	if ink {
		dc.SetRGB(0, 0, 0)
		dc.DrawRectangle(16, 16, 32, 32)
		require.NoError(t, dc.Fill())
	}

	var buf bytes.Buffer
	require.NoError(t, dc.EncodePNG(&buf))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func run(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = Run(append([]string{"--log-level", "off"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVectorizePrintsJSON(t *testing.T) {
	img := writeImage(t, t.TempDir(), "square.png", true)

	code, stdout, stderr := run("vectorize", img)
	require.Equal(t, 0, code, stderr)

	set, err := export.ReadJSON(strings.NewReader(stdout))
	require.NoError(t, err)
	assert.False(t, set.IsEmpty())
}

func TestVectorizeWritesSVGAndPreview(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir, "square.png", true)
	out := filepath.Join(dir, "square.svg")
	preview := filepath.Join(dir, "preview.png")

	code, stdout, stderr := run("vectorize", img, "--format", "svg", "--out", out, "--preview", preview, "--preset", "centerline")
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)

	svg, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<polyline")

	info, err := os.Stat(preview)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestVectorizeBlankImageReportsNothingToDraw(t *testing.T) {
	img := writeImage(t, t.TempDir(), "blank.png", false)

	code, stdout, stderr := run("vectorize", img)
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "nothing to draw")
	assert.Equal(t, "{\"strokes\":[]}\n", stdout)
}

func TestVectorizeUndecodableExitsWithTwo(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.png")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	code, stdout, stderr := run("vectorize", empty)
	assert.Equal(t, exitDecode, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "cannot read image")
}

func TestVectorizeErrorsExitWithOne(t *testing.T) {
	img := writeImage(t, t.TempDir(), "square.png", true)

	cases := map[string][]string{
		"missing file":    {"vectorize", "/does/not/exist.png"},
		"unknown backend": {"vectorize", img, "--backend", "gpu"},
		"unknown preset":  {"vectorize", img, "--preset", "sketchy"},
		"bad format":      {"vectorize", img, "--format", "pdf"},
		"no args":         {"vectorize"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			code, _, _ := run(args...)
			assert.Equal(t, exitError, code)
		})
	}
}

func TestVectorizeWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir, "square.png", true)
	cfgPath := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("preset: outline\nworld_scale: 0\n"), 0o644))

	code, _, stderr := run("vectorize", img, "--config", cfgPath)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "world_scale")
}

func TestBatchWritesOneFilePerInput(t *testing.T) {
	dir := t.TempDir()
	a := writeImage(t, dir, "a.png", true)
	b := writeImage(t, dir, "b.png", false)
	outDir := filepath.Join(dir, "out")

	code, stdout, stderr := run("batch", a, b, "--out-dir", outDir, "--jobs", "2", "--format", "svg")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "nothing to draw")

	for _, name := range []string{"a.svg", "b.svg"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
}

func TestBatchKeepsSameNamedInputsApart(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"a", "b"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}
	inked := writeImage(t, filepath.Join(dir, "a"), "page.png", true)
	blank := writeImage(t, filepath.Join(dir, "b"), "page.png", false)
	outDir := filepath.Join(dir, "out")

	code, stdout, stderr := run("batch", inked, blank, "--out-dir", outDir)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, filepath.Join(outDir, "page.json"))
	assert.Contains(t, stdout, filepath.Join(outDir, "page-1.json"))

	first, err := os.ReadFile(filepath.Join(outDir, "page.json"))
	require.NoError(t, err)
	set, err := export.ReadJSON(bytes.NewReader(first))
	require.NoError(t, err)
	assert.False(t, set.IsEmpty(), "first input's strokes must survive")

	second, err := os.ReadFile(filepath.Join(outDir, "page-1.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\"strokes\":[]}\n", string(second))
}

func TestBatchReportsDecodeFailures(t *testing.T) {
	dir := t.TempDir()
	a := writeImage(t, dir, "a.png", true)
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))

	code, _, stderr := run("batch", a, bad, "--out-dir", filepath.Join(dir, "out"))
	assert.Equal(t, exitDecode, code)
	assert.Contains(t, stderr, "bad.png")
}

func TestConfigPrintsEffectiveYAML(t *testing.T) {
	code, stdout, _ := run("config", "--preset", "outline")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "merge_parallel: false")
	assert.Contains(t, stdout, "edge_mode: canny")
	assert.Contains(t, stdout, "resample_spacing: 4")
}

func TestOutputPaths(t *testing.T) {
	assert.Equal(t, []string{
		filepath.Join("out", "scan.json"),
		filepath.Join("out", "noext.json"),
	}, outputPaths("out", []string{"/in/scan.png", "noext"}, "json"))
}

func TestOutputPathsDisambiguatesStems(t *testing.T) {
	got := outputPaths("out", []string{"/a/page.png", "/b/page.png", "x.png", "x.jpg", "page-1.png"}, "json")
	assert.Equal(t, []string{
		filepath.Join("out", "page.json"),
		filepath.Join("out", "page-1.json"),
		filepath.Join("out", "x.json"),
		filepath.Join("out", "x-1.json"),
		filepath.Join("out", "page-1-1.json"),
	}, got)
}
