package main

import (
	"bytes"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// statusWriter colors the prefix of convert status lines. Each Write is one
// complete line, as produced by the batch driver.
type statusWriter struct {
	w      io.Writer
	colors map[string]*color.Color
}

// newStatusWriter returns w unchanged unless it is a terminal.
func newStatusWriter(w io.Writer) io.Writer {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return w
	}
	return colorStatus(w)
}

func colorStatus(w io.Writer) *statusWriter {
	colors := map[string]*color.Color{
		"converted:": color.New(color.FgGreen),
		"skipped:":   color.New(color.FgYellow),
		"failed:":    color.New(color.FgRed, color.Bold),
		"warning:":   color.New(color.FgMagenta),
	}
	for _, c := range colors {
		c.EnableColor()
	}
	return &statusWriter{w: w, colors: colors}
}

func (s *statusWriter) Write(p []byte) (int, error) {
	for prefix, c := range s.colors {
		rest, ok := bytes.CutPrefix(p, []byte(prefix))
		if !ok {
			continue
		}
		if _, err := io.WriteString(s.w, c.Sprint(prefix)); err != nil {
			return 0, err
		}
		if _, err := s.w.Write(rest); err != nil {
			return 0, err
		}
		return len(p), nil
	}
	return s.w.Write(p)
}
