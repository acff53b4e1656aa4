package emit

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"
	"unicode"

	"rastertrace/internal/geom"
)

// DefaultTitle is the window title used when Meta.Title is empty.
const DefaultTitle = "Vectorized image"

// Turtle writes a standalone Python script that replays the commands with
// the standard turtle module.
type Turtle struct {
	Path string
}

func (s Turtle) Emit(meta Meta, cmds iter.Seq[geom.Command]) error {
	return writeFileAtomic(s.Path, func(f *os.File) error {
		return WriteTurtle(f, meta, cmds)
	})
}

// WriteTurtle writes the turtle script to w. The trailing __main__ guard
// is written last, so a script missing it was cut short.
func WriteTurtle(w io.Writer, meta Meta, cmds iter.Seq[geom.Command]) error {
	title := meta.Title
	if title == "" {
		title = DefaultTitle
	}
	bw := bufio.NewWriter(w)
	bw.WriteString("import turtle\n\n\n")
	bw.WriteString("def draw():\n")
	bw.WriteString("    screen = turtle.Screen()\n")
	bw.WriteString("    screen.title(" + pyQuote(title) + ")\n")
	bw.WriteString("    turtle.speed(0)\n")
	bw.WriteString("    turtle.penup()\n")
	bw.WriteString("    turtle.hideturtle()\n")
	bw.WriteString("    turtle.pencolor('black')\n\n")
	for c := range cmds {
		switch c.Op {
		case geom.PenUp:
			bw.WriteString("    turtle.penup()\n")
		case geom.PenDown:
			bw.WriteString("    turtle.pendown()\n")
		case geom.MoveTo:
			bw.WriteString("    turtle.goto(" + pyFloat(c.X) + ", " + pyFloat(c.Y) + ")\n")
		}
	}
	bw.WriteString("\n    turtle.done()\n\n\n")
	bw.WriteString("if __name__ == '__main__':\n")
	bw.WriteString("    draw()\n")
	return bw.Flush()
}

// pyFloat formats v as the shortest literal that reads back exactly.
func pyFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// pyQuote renders s as a double-quoted Python string literal. Control
// characters and unprintable runes use escapes Python reads back unchanged.
func pyQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			switch {
			case r < 0x20 || r == 0x7f:
				fmt.Fprintf(&b, `\x%02x`, r)
			case !unicode.IsPrint(r) && r <= 0xffff:
				fmt.Fprintf(&b, `\u%04x`, r)
			case !unicode.IsPrint(r):
				fmt.Fprintf(&b, `\U%08x`, r)
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
