package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rastertrace/internal/config"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestConvertContours(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "square.wkt")
	require.NoError(t, os.WriteFile(in, []byte("LINESTRING (0 0, 10 0, 10 10, 0 10)"), 0o644))
	out := filepath.Join(dir, "draw.py")

	stdout, stderr, err := run(t, "convert", "--contours", in, "-o", out, "--close", "-v")
	require.NoError(t, err)
	assert.Equal(t, "generated "+out+": 1 strokes, 8 commands\n", stdout)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.FileExists(t, out)
}

func TestConvertNothingToDraw(t *testing.T) {
	dir := t.TempDir()
	inputs := map[string]string{
		"empty.json":    "[]",
		"empty.geojson": `{"type": "FeatureCollection", "features": []}`,
		"header.csv":    "x,y\n",
		"empty.wkt":     "MULTILINESTRING EMPTY",
	}
	for name, body := range inputs {
		in := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(in, []byte(body), 0o644))
		out := filepath.Join(dir, name+".py")

		stdout, _, err := run(t, "convert", "--contours", in, "-o", out)
		require.NoError(t, err, name)
		assert.Equal(t, "nothing to draw\n", stdout, name)
		assert.NoFileExists(t, out, name)
	}
}

func TestConvertRejectsNonFiniteInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "shape.wkt")
	require.NoError(t, os.WriteFile(in, []byte("LINESTRING (0 0, NaN 5, 10 10)"), 0o644))
	out := filepath.Join(dir, "draw.py")

	_, _, err := run(t, "convert", "--contours", in, "-o", out)
	require.Error(t, err)
	assert.NoFileExists(t, out)

	_, _, err = run(t, "convert", "--contours", in, "-o", out, "--span", "NaN")
	require.Error(t, err)
}

func TestConvertMissingImage(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "convert", filepath.Join(dir, "nope.png"), "-o", filepath.Join(dir, "draw.py"))
	require.Error(t, err)
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "run.toml")
	require.NoError(t, os.WriteFile(file, []byte("span = 300.0\nthreshold = 90\ntitle = \"from file\"\n"), 0o644))

	flags := config.Default()
	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	bindConfigFlags(fs, &flags)
	require.NoError(t, fs.Parse([]string{"--span", "200"}))
	cfg, err := resolveConfig(fs, flags, file, []string{"cat.png"})
	require.NoError(t, err)
	assert.Equal(t, 200.0, cfg.TargetSpan)
	assert.Equal(t, 90, cfg.Threshold)
	assert.Equal(t, "from file", cfg.Title)
	assert.Equal(t, "cat.png", cfg.ImagePath)
	assert.Equal(t, "draw.py", cfg.Output)
}

func TestPlaceholderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rose.png")
	stdout, _, err := run(t, "placeholder", path)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+" (300x300)\n", stdout)
	assert.FileExists(t, path)
}
