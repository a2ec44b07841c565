// Package term provides adapters for terminal-facing output: status
// printing and markdown rendering.
package term

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the status line prefixes.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Printer writes human-facing status lines. It implements
// domain.UserOutput. By default, it writes to stdout.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to stdout.
func NewPrinter() *Printer {
	return &Printer{out: os.Stdout}
}

// NewPrinterWithOutput creates a new Printer with a custom output
// destination. This is useful for testing.
func NewPrinterWithOutput(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Infof writes a plain status line.
func (p *Printer) Infof(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Successf writes a line marked as success.
func (p *Printer) Successf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, successStyle.Render("✓")+" "+format+"\n", args...)
}

// Warnf writes a line marked as a warning.
func (p *Printer) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, warnStyle.Render("!")+" "+format+"\n", args...)
}

// Errorf writes a line marked as an error.
func (p *Printer) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, errorStyle.Render("✗")+" "+format+"\n", args...)
}
