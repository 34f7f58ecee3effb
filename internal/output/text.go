package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/annolint/annolint/internal/corpus"
)

var (
	passLabel = color.New(color.FgGreen, color.Bold).Sprint("PASS")
	failLabel = color.New(color.FgRed, color.Bold).Sprint("FAIL")
	staleTag  = color.New(color.FgYellow).Sprint("stale")
)

// TextWriter outputs a human-readable validation report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *corpus.Report) error {
	ew := &errWriter{w: w}

	files, issues, failures, stale := report.Counts()
	ew.printf("annolint — validated %d issue file(s), %d issue record(s)\n", files, issues)
	ew.println(strings.Repeat("─", 60))

	for _, res := range report.Results {
		label := passLabel
		if !res.OK() {
			label = failLabel
		}
		ew.printf("%s  %s", label, res.Path)
		if res.Cached {
			ew.printf("  (cached)")
		}
		ew.println("")

		if res.Err != nil {
			for _, line := range strings.Split(res.Err.Error(), "\n") {
				ew.printf("      %s\n", line)
			}
		}
		for _, finding := range res.Stale {
			ew.printf("      %s: %s\n", staleTag, finding)
		}
	}

	ew.println(strings.Repeat("─", 60))
	if failures == 0 && stale == 0 {
		ew.println("All records validate cleanly.")
	} else {
		ew.printf("%d file(s) failed validation, %d stale annotation(s)\n", failures, stale)
	}
	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
