package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const headerWidth = 70

// Step statuses understood by Printer.Step.
type status int

const (
	statusRunning status = iota
	statusSuccess
	statusWarning
	statusError
)

// Printer renders pipeline progress for humans.
type Printer struct {
	out io.Writer

	header  func(a ...any) string
	running func(a ...any) string
	success func(a ...any) string
	warning func(a ...any) string
	failure func(a ...any) string
	good    func(a ...any) string
	warn    func(a ...any) string
	bad     func(a ...any) string
}

// NewPrinter writes to out, coloring output only when enabled.
func NewPrinter(out io.Writer, enabled bool) *Printer {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &Printer{
		out:     out,
		header:  mk(color.FgHiMagenta, color.Bold),
		running: mk(color.FgHiCyan),
		success: mk(color.FgHiGreen),
		warning: mk(color.FgHiYellow),
		failure: mk(color.FgHiRed),
		good:    mk(color.FgHiGreen, color.Bold),
		warn:    mk(color.FgHiYellow, color.Bold),
		bad:     mk(color.FgHiRed, color.Bold),
	}
}

// ColorEnabled reports whether w should receive ANSI colors.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return writerIsTerminal(w)
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Banner prints the boxed title and the run mode.
func (p *Printer) Banner(title string, checkOnly bool) {
	inner := headerWidth - 3
	bar := strings.Repeat("═", inner)
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.header("╔"+bar+"╗"))
	fmt.Fprintln(p.out, p.header("║"+center(title, inner)+"║"))
	fmt.Fprintln(p.out, p.header("╚"+bar+"╝"))
	fmt.Fprintln(p.out)
	mode := "FIX MODE"
	if checkOnly {
		mode = "CHECK MODE"
	}
	fmt.Fprintln(p.out, p.running("Mode: "+mode))
	fmt.Fprintln(p.out)
}

// Header prints a section title between two rules.
func (p *Printer) Header(msg string) {
	rule := strings.Repeat("=", headerWidth)
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.header(rule))
	fmt.Fprintln(p.out, p.header(center(msg, headerWidth)))
	fmt.Fprintln(p.out, p.header(rule))
	fmt.Fprintln(p.out)
}

// Step prints one progress line.
func (p *Printer) Step(msg string, st status) {
	switch st {
	case statusRunning:
		fmt.Fprintln(p.out, p.running("▶ "+msg+"..."))
	case statusSuccess:
		fmt.Fprintln(p.out, p.success("✓ "+msg))
	case statusWarning:
		fmt.Fprintln(p.out, p.warning("⚠ "+msg))
	case statusError:
		fmt.Fprintln(p.out, p.failure("✗ "+msg))
	}
}

// Raw prints tool output verbatim, skipping empty captures.
func (p *Printer) Raw(text string) {
	writeRaw(p.out, text)
}

func writeRaw(w io.Writer, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	fmt.Fprintln(w, strings.TrimRight(text, "\n"))
}

// Line prints a plain line.
func (p *Printer) Line(msg string) {
	fmt.Fprintln(p.out, msg)
}

// center pads s with spaces to width display columns, putting any odd
// column on the right.
func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
