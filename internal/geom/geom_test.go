package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var square = ContourSet{{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}}

func TestComputeBounds(t *testing.T) {
	tests := []struct {
		name string
		cs   ContourSet
		want BBox
	}{
		{"square", square, BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}},
		{"single point", ContourSet{{Pt(5, 5)}}, BBox{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5}},
		{"vertical line", ContourSet{{Pt(3, 1), Pt(3, 9)}}, BBox{MinX: 3, MinY: 1, MaxX: 3, MaxY: 9}},
		{"spread over contours", ContourSet{{Pt(4, 7)}, nil, {Pt(-2, 3), Pt(8, 12)}}, BBox{MinX: -2, MinY: 3, MaxX: 8, MaxY: 12}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			bb, err := ComputeBounds(test.cs)
			require.NoError(t, err)
			assert.Equal(t, test.want, bb)
			assert.LessOrEqual(t, bb.MinX, bb.MaxX)
			assert.LessOrEqual(t, bb.MinY, bb.MaxY)
			for _, c := range test.cs {
				for _, p := range c {
					assert.True(t, bb.Contains(p), "point %v outside %v", p, bb)
				}
			}
		})
	}
}

func TestComputeBoundsNoGeometry(t *testing.T) {
	for _, cs := range []ContourSet{nil, {}, {nil, {}}} {
		_, err := ComputeBounds(cs)
		require.ErrorIs(t, err, ErrNoGeometry)
		assert.Empty(t, Collect(Linearize(cs, Transform{Scale: 1})))
	}
}

func TestBuildTransform(t *testing.T) {
	boxes := []BBox{
		{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		{MinX: 12, MinY: 40, MaxX: 312, MaxY: 90},
		{MinX: -7, MinY: 3, MaxX: -7, MaxY: 250},
		{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5},
		{MinX: 0, MinY: 0, MaxX: 0.25, MaxY: 0.5},
	}
	for _, bb := range boxes {
		tr := BuildTransform(bb, DefaultTargetSpan)
		require.False(t, math.IsNaN(tr.Scale) || math.IsInf(tr.Scale, 0))
		assert.Greater(t, tr.Scale, 0.0)
		assert.InDelta(t, DefaultTargetSpan, tr.Scale*max(bb.Width(), bb.Height(), 1), 1e-9)

		x, y := tr.Apply(bb.Center())
		assert.InDelta(t, 0, x, 1e-9)
		assert.InDelta(t, 0, y, 1e-9)
	}
}

func TestScenarioSquare(t *testing.T) {
	bb, err := ComputeBounds(square)
	require.NoError(t, err)
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, bb)

	tr := BuildTransform(bb, 500)
	assert.Equal(t, Transform{Scale: 50, OffsetX: -250, OffsetY: -250}, tr)

	cmds := Collect(Linearize(square, tr))
	want := []Command{
		{Op: PenUp},
		{Op: MoveTo, X: -250, Y: 250},
		{Op: PenDown},
		{Op: MoveTo, X: -250, Y: 250},
		{Op: MoveTo, X: 250, Y: 250},
		{Op: MoveTo, X: 250, Y: -250},
		{Op: MoveTo, X: -250, Y: -250},
	}
	assert.Equal(t, want, cmds)
}

func TestScenarioSinglePoint(t *testing.T) {
	cs := ContourSet{{Pt(5, 5)}}
	bb, err := ComputeBounds(cs)
	require.NoError(t, err)
	assert.Equal(t, BBox{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5}, bb)
	assert.Empty(t, Collect(Linearize(cs, BuildTransform(bb, 500))))
	assert.Equal(t, 0, StrokeCount(cs))
	assert.Equal(t, 1, PointCount(cs))
}

func TestLinearizeStrokeShape(t *testing.T) {
	cs := ContourSet{
		{Pt(1, 1)},
		{Pt(0, 0), Pt(4, 0), Pt(4, 3)},
		{},
		{Pt(2, 2), Pt(3, 3)},
		{Pt(9, 9), Pt(8, 8), Pt(7, 7), Pt(6, 6), Pt(5, 5)},
	}
	tr := BuildTransform(BBox{MaxX: 9, MaxY: 9}, 500)
	cmds := Collect(Linearize(cs, tr))
	assert.Len(t, cmds, (3+3)+(3+2)+(3+5))

	// walk the stream stroke by stroke
	i := 0
	for _, c := range cs {
		if len(c) < 2 {
			continue
		}
		require.Equal(t, PenUp, cmds[i].Op)
		require.Equal(t, MoveTo, cmds[i+1].Op)
		require.Equal(t, PenDown, cmds[i+2].Op)
		for j, p := range c {
			x, y := tr.Apply(p)
			got := cmds[i+3+j]
			require.Equal(t, Command{Op: MoveTo, X: x, Y: y}, got)
		}
		assert.Equal(t, cmds[i+1], cmds[i+3], "first point is visited twice")
		i += 3 + len(c)
	}
	assert.Equal(t, 3, StrokeCount(cs))
}

func TestLinearizeClose(t *testing.T) {
	tr := BuildTransform(BBox{MaxX: 10, MaxY: 10}, 500)
	open := Collect(Linearize(square, tr))
	closed := Collect(Linearize(square, tr, WithClose(true)))
	require.Len(t, closed, len(open)+1)
	assert.Equal(t, open, closed[:len(open)])
	assert.Equal(t, open[1], closed[len(closed)-1])

	assert.Equal(t, open, Collect(Linearize(square, tr, WithClose(false))))
}

func TestLinearizeDeterministic(t *testing.T) {
	cs := ContourSet{
		{Pt(3, 7), Pt(11, 2), Pt(5, 5)},
		{Pt(0, 0), Pt(1, 1)},
	}
	bb, err := ComputeBounds(cs)
	require.NoError(t, err)
	tr := BuildTransform(bb, 321)
	first := Collect(Linearize(cs, tr))
	for range 3 {
		assert.Equal(t, first, Collect(Linearize(cs, tr)))
	}
}

func TestLinearizeStopsEarly(t *testing.T) {
	tr := BuildTransform(BBox{MaxX: 10, MaxY: 10}, 500)
	n := 0
	for range Linearize(append(ContourSet{}, square[0], square[0]), tr) {
		n++
		if n == 4 {
			break
		}
	}
	assert.Equal(t, 4, n)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "penup", Command{Op: PenUp}.String())
	assert.Equal(t, "pendown", Command{Op: PenDown}.String())
	assert.Equal(t, "goto(-250, 12.5)", Command{Op: MoveTo, X: -250, Y: 12.5}.String())
	assert.Equal(t, "op(9)", Op(9).String())
}
