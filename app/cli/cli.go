// Package cli implements command line lookups
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rbhz/ydcv/app/db"
	"github.com/rbhz/ydcv/app/formatters"
	"github.com/rbhz/ydcv/app/lookup"
	"github.com/rbhz/ydcv/app/ydresponse"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// LineReader reads user input line by line
type LineReader interface {
	Readline() (string, error)
}

// Runner prints lookups to output
type Runner struct {
	service   lookup.Service
	formatter formatters.Formatter
	out       io.Writer
	raw       bool
}

// Lookup looks word up and prints result
func (r Runner) Lookup(ctx context.Context, word string) error {
	if r.raw {
		raw, err := r.service.LookupRaw(ctx, word)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, raw)
		return err
	}
	resp, err := r.service.Lookup(ctx, db.LocalUser, word)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, resp.Explain(r.formatter))
	return err
}

// Render prints saved dictionary reply
func (r Runner) Render(data []byte) error {
	if r.raw {
		_, err := r.out.Write(data)
		return err
	}
	resp, err := ydresponse.ParseBytes(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, resp.Explain(r.formatter))
	return err
}

// Interactive looks up every line until EOF or exit command
func (r Runner) Interactive(ctx context.Context, rl LineReader) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		if word == "exit" || word == "quit" {
			return nil
		}
		if err := r.Lookup(ctx, word); err != nil {
			log.Error().Err(err).Str("word", word).Msg("lookup failed")
			fmt.Fprintln(r.out, r.formatter.Error(" -- Lookup failed."))
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// NewPrompt creates readline prompt for interactive mode
func NewPrompt(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}

// IsTerminal reports whether file is a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// SelectFormatter picks formatter for output options
func SelectFormatter(color string, html bool, tty bool) formatters.Formatter {
	if html {
		return formatters.HTMLFormatter{}
	}
	switch color {
	case ColorAlways:
		return formatters.NewAnsiFormatter()
	case ColorAuto:
		if tty {
			return formatters.NewAnsiFormatter()
		}
	}
	return formatters.PlainFormatter{}
}

// NewRunner creates runner writing to out
func NewRunner(service lookup.Service, formatter formatters.Formatter, out io.Writer, raw bool) Runner {
	return Runner{service: service, formatter: formatter, out: out, raw: raw}
}
