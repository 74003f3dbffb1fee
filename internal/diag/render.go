package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"riptide/internal/source"
)

var sevColor = map[Severity]*color.Color{
	SevInfo:    color.New(color.FgCyan),
	SevWarning: color.New(color.FgYellow, color.Bold),
	SevError:   color.New(color.FgRed, color.Bold),
}

// Render prints one diagnostic with its source line and a caret under
// the primary span. Colors are applied only when colorize is set; the
// caret column is computed with display widths so wide runes line up.
func Render(w io.Writer, fs *source.FileSet, d Diagnostic, colorize bool) {
	head := fmt.Sprintf("%s[%s]", d.Severity, d.Code)
	if colorize {
		head = sevColor[d.Severity].Sprint(head)
	}
	f := fs.Get(d.Primary.File)
	if f == nil {
		fmt.Fprintf(w, "%s %s\n", head, d.Message)
		return
	}
	lc := f.LineCol(d.Primary.Start)
	fmt.Fprintf(w, "%s %s:%d:%d: %s\n", head, f.Path, lc.Line, lc.Col, d.Message)
	renderLine(w, f, d.Primary, lc, colorize)
	for _, n := range d.Notes {
		nlc := f.LineCol(n.Span.Start)
		fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", f.Path, nlc.Line, nlc.Col, n.Msg)
	}
}

// RenderBag prints every diagnostic in the bag in source order.
func RenderBag(w io.Writer, fs *source.FileSet, b *Bag, colorize bool) {
	b.SortStable()
	for _, d := range b.Items() {
		Render(w, fs, d, colorize)
	}
}

func renderLine(w io.Writer, f *source.File, span source.Span, lc source.LineCol, colorize bool) {
	line := string(f.Line(lc.Line))
	gutter := fmt.Sprintf("%4d | ", lc.Line)
	fmt.Fprintf(w, "%s%s\n", gutter, line)

	// ширина префикса строки до начала span в экранных колонках
	prefix := ""
	if int(lc.Col)-1 <= len(line) {
		prefix = line[:lc.Col-1]
	}
	pad := runewidth.StringWidth(prefix)
	carets := 1
	if n := int(span.Len()); n > 1 && int(lc.Col)-1+n <= len(line) {
		carets = runewidth.StringWidth(line[lc.Col-1 : int(lc.Col)-1+n])
	}
	marker := strings.Repeat("^", max(carets, 1))
	if colorize {
		marker = sevColor[SevError].Sprint(marker)
	}
	fmt.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", pad), marker)
}
