package emit

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rastertrace/internal/geom"
)

var square = []geom.Command{
	{Op: geom.PenUp},
	{Op: geom.MoveTo, X: -250, Y: 250},
	{Op: geom.PenDown},
	{Op: geom.MoveTo, X: -250, Y: 250},
	{Op: geom.MoveTo, X: 250, Y: 250},
	{Op: geom.MoveTo, X: 250, Y: -250},
	{Op: geom.MoveTo, X: -250, Y: -250},
}

const squareScript = `import turtle


def draw():
    screen = turtle.Screen()
    screen.title("Square")
    turtle.speed(0)
    turtle.penup()
    turtle.hideturtle()
    turtle.pencolor('black')

    turtle.penup()
    turtle.goto(-250, 250)
    turtle.pendown()
    turtle.goto(-250, 250)
    turtle.goto(250, 250)
    turtle.goto(250, -250)
    turtle.goto(-250, -250)

    turtle.done()


if __name__ == '__main__':
    draw()
`

func TestWriteTurtleGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTurtle(&buf, Meta{Title: "Square", Span: 500}, slices.Values(square)))
	assert.Equal(t, squareScript, buf.String())
}

func TestWriteTurtleFormatting(t *testing.T) {
	cmds := []geom.Command{
		{Op: geom.MoveTo, X: 0.1, Y: -1.0 / 3},
		{Op: geom.MoveTo, X: -0.0, Y: 12.5},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTurtle(&buf, Meta{Title: `it's "q"`}, slices.Values(cmds)))
	out := buf.String()
	assert.Contains(t, out, `screen.title("it's \"q\"")`)
	assert.Contains(t, out, "turtle.goto(0.1, -0.3333333333333333)\n")
	assert.Contains(t, out, "turtle.goto(0, 12.5)\n")

	buf.Reset()
	require.NoError(t, WriteTurtle(&buf, Meta{}, slices.Values([]geom.Command(nil))))
	assert.Contains(t, buf.String(), `screen.title("`+DefaultTitle+`")`)
	assert.NotContains(t, buf.String(), "goto")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("if __name__ == '__main__':\n    draw()\n")))
}

func TestPyQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Rose", `"Rose"`},
		{`a\b`, `"a\\b"`},
		{"tab\there\nnext", `"tab\there\nnext"`},
		{"del\x7f bell\a", `"del\x7f bell\x07"`},
		{"Größe", `"Größe"`},
		{"line\u2028sep", `"line\u2028sep"`},
		{"\xff", "\"\uFFFD\""},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, pyQuote(test.in), test.in)
	}
}

func TestTurtleSinkWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.py")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, Turtle{Path: path}.Emit(Meta{Title: "Square"}, slices.Values(square)))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, squareScript, string(got))
	assertNoTemps(t, filepath.Dir(path))
}

func TestWriteAtomicFailureKeepsDestination(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draw.py")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	boom := errors.New("boom")
	err := writeFileAtomic(path, func(f *os.File) error {
		fmt.Fprintln(f, "partial")
		return boom
	})
	require.ErrorIs(t, err, ErrEmission)
	require.ErrorIs(t, err, boom)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(got))
	assertNoTemps(t, dir)

	fresh := filepath.Join(dir, "fresh.py")
	require.Error(t, writeAtomic(fresh, func(string) error { return boom }))
	assert.NoFileExists(t, fresh)
	assertNoTemps(t, dir)
}

func TestEmitMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "draw.py")
	err := Turtle{Path: path}.Emit(Meta{}, slices.Values(square))
	assert.ErrorIs(t, err, ErrEmission)
	assert.NoFileExists(t, path)
}

func assertNoTemps(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

type penLog []string

func (p *penLog) MoveTo(x, y float64) { *p = append(*p, fmt.Sprintf("M %g %g", x, y)) }
func (p *penLog) LineTo(x, y float64) { *p = append(*p, fmt.Sprintf("L %g %g", x, y)) }
func (p *penLog) Stroke() error       { *p = append(*p, "S"); return nil }

func TestReplay(t *testing.T) {
	cmds := append(slices.Clone(square),
		geom.Command{Op: geom.PenUp},
		geom.Command{Op: geom.MoveTo, X: 1, Y: 2},
		geom.Command{Op: geom.PenDown},
		geom.Command{Op: geom.MoveTo, X: 1, Y: 2},
		geom.Command{Op: geom.MoveTo, X: 3, Y: 4},
	)
	var log penLog
	require.NoError(t, Replay(slices.Values(cmds), &log))
	assert.Equal(t, penLog{
		"M -250 250", "M -250 250", "L 250 250", "L 250 -250", "L -250 -250", "S",
		"M 1 2", "M 1 2", "L 3 4", "S",
	}, log)

	log = nil
	require.NoError(t, Replay(slices.Values([]geom.Command{{Op: geom.PenUp}, {Op: geom.MoveTo, X: 5, Y: 5}}), &log))
	assert.Equal(t, penLog{"M 5 5"}, log)

	log = nil
	require.NoError(t, Replay(slices.Values([]geom.Command{
		{Op: geom.PenUp}, {Op: geom.MoveTo, X: 1, Y: 2},
		{Op: geom.PenDown}, {Op: geom.MoveTo, X: 3, Y: 4},
	}), &log))
	assert.Equal(t, penLog{"M 1 2", "M 1 2", "L 3 4", "S"}, log)

	log = nil
	require.NoError(t, Replay(slices.Values([]geom.Command{
		{Op: geom.PenDown}, {Op: geom.MoveTo, X: 3, Y: 4}, {Op: geom.PenUp},
	}), &log))
	assert.Equal(t, penLog{"M 0 0", "L 3 4", "S"}, log)
}

func TestForPath(t *testing.T) {
	s, err := ForPath("out/draw.py")
	require.NoError(t, err)
	assert.Equal(t, Turtle{Path: "out/draw.py"}, s)

	s, err = ForPath("x.PDF")
	require.NoError(t, err)
	assert.IsType(t, PDF{}, s)

	s, err = ForPath("x.png")
	require.NoError(t, err)
	assert.IsType(t, PNG{}, s)

	_, err = ForPath("x.svg")
	var unsupported *UnsupportedOutputError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".svg", unsupported.Ext)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	require.NoError(t, r.Emit(Meta{Title: "t", Span: 10}, slices.Values(square)))
	assert.Equal(t, square, r.Commands)
	assert.Equal(t, Meta{Title: "t", Span: 10}, r.Meta)
	assert.Equal(t, 1, r.Strokes())
}

func TestPNGSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	require.NoError(t, PNG{Path: path, LineWidth: 4}.Emit(Meta{Span: 500}, slices.Values(square)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	side := 500 + 2*pageMargin
	require.Equal(t, side, img.Bounds().Dx())
	require.Equal(t, side, img.Bounds().Dy())

	c := side / 2
	r, _, _, _ := img.At(c, c).RGBA()
	assert.Greater(t, r, uint32(0xc000), "centre should stay white")
	r, _, _, _ = img.At(c, c-250).RGBA()
	assert.Less(t, r, uint32(0x8000), "top edge should be inked")
}

func TestPDFSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.pdf")
	require.NoError(t, PDF{Path: path}.Emit(Meta{Span: 500}, slices.Values(square)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assertNoTemps(t, filepath.Dir(path))
}
