package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/docsync/internal/docgen"
)

// TextWriter outputs a human-readable drift report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *docgen.Report) error {
	ew := &errWriter{w: w}

	ew.printf("docsync — %s\n", report.Target)
	ew.println(strings.Repeat("─", 60))

	status := "in sync"
	if report.Verdict.DriftDetected {
		status = "DRIFT DETECTED"
	}
	if !report.DocExists {
		status += " (no documentation file)"
	}
	ew.printf("Status: %s\n", status)
	if report.Verdict.Rationale != "" {
		ew.printf("Rationale: %s\n", report.Verdict.Rationale)
	}

	source := "model"
	if report.Cached {
		source = "cache"
	}
	ew.printf("Verdict source: %s\n", source)
	ew.printf("Fingerprint: %s\n", shortFingerprint(report.Fingerprint))
	ew.printf("Files scanned: %d\n", len(report.Files))

	if report.Merged != "" {
		ew.printf("Documentation updated: %s\n", report.DocPath)
	}

	for _, warn := range report.Warnings {
		ew.printf("warning: %s\n", warn)
	}

	ew.printf("Timing: scan %dms, llm %dms, total %dms\n",
		report.Timing.ScanMs, report.Timing.LLMMs, report.Timing.TotalMs)

	return ew.err
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}

// errWriter folds write errors so the happy path stays flat.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}
