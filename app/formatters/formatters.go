package formatters

import (
	"fmt"
	"html"

	"github.com/fatih/color"
)

// Formatter styles pieces of a rendered dictionary response
type Formatter interface {
	// Error styles failure messages
	Error(string) string
	// Underline styles the looked up word
	Underline(string) string
	// Heading styles block headings
	Heading(string) string
	// Value styles phonetics and web reference keys
	Value(string) string
	// Secondary styles web reference phrases
	Secondary(string) string
	// Plain is used for regular text
	Plain(string) string
}

// names of supported formatters
const (
	NamePlain = "plain"
	NameAnsi  = "ansi"
	NameHTML  = "html"
)

// New returns formatter by name
func New(name string) (Formatter, error) {
	switch name {
	case NamePlain:
		return PlainFormatter{}, nil
	case NameAnsi:
		return NewAnsiFormatter(), nil
	case NameHTML:
		return HTMLFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown formatter %q", name)
}

// PlainFormatter leaves text as is
type PlainFormatter struct{}

func (PlainFormatter) Error(s string) string     { return s }
func (PlainFormatter) Underline(s string) string { return s }
func (PlainFormatter) Heading(s string) string   { return s }
func (PlainFormatter) Value(s string) string     { return s }
func (PlainFormatter) Secondary(s string) string { return s }
func (PlainFormatter) Plain(s string) string     { return s }

// AnsiFormatter colors text with ANSI escape sequences.
// Colors are always emitted, terminal detection is up to the caller.
type AnsiFormatter struct {
	red       *color.Color
	underline *color.Color
	cyan      *color.Color
	yellow    *color.Color
	magenta   *color.Color
}

// NewAnsiFormatter creates AnsiFormatter with colors enabled
func NewAnsiFormatter() *AnsiFormatter {
	f := &AnsiFormatter{
		red:       color.New(color.FgRed),
		underline: color.New(color.Underline),
		cyan:      color.New(color.FgCyan),
		yellow:    color.New(color.FgYellow),
		magenta:   color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{f.red, f.underline, f.cyan, f.yellow, f.magenta} {
		c.EnableColor()
	}
	return f
}

func (f *AnsiFormatter) Error(s string) string     { return f.red.Sprint(s) }
func (f *AnsiFormatter) Underline(s string) string { return f.underline.Sprint(s) }
func (f *AnsiFormatter) Heading(s string) string   { return f.cyan.Sprint(s) }
func (f *AnsiFormatter) Value(s string) string     { return f.yellow.Sprint(s) }
func (f *AnsiFormatter) Secondary(s string) string { return f.magenta.Sprint(s) }
func (f *AnsiFormatter) Plain(s string) string     { return s }

// HTMLFormatter produces markup supported by Telegram HTML parse mode
type HTMLFormatter struct{}

func (HTMLFormatter) Error(s string) string     { return "<b>" + html.EscapeString(s) + "</b>" }
func (HTMLFormatter) Underline(s string) string { return "<u>" + html.EscapeString(s) + "</u>" }
func (HTMLFormatter) Heading(s string) string   { return "<b>" + html.EscapeString(s) + "</b>" }
func (HTMLFormatter) Value(s string) string     { return "<code>" + html.EscapeString(s) + "</code>" }
func (HTMLFormatter) Secondary(s string) string { return "<i>" + html.EscapeString(s) + "</i>" }
func (HTMLFormatter) Plain(s string) string     { return html.EscapeString(s) }
