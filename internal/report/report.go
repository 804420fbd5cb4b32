// Package report implements the append-only text report accumulated during a
// maintenance run. Sections are written in task order and are never rewritten
// or removed once written.
package report

import (
	"fmt"
	"strings"

	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/printer"
)

// Sink is the append-only destination for maintenance report output.
//
// Implementations don't need to be safe for concurrent use: tasks never run
// concurrently, so there is a single writer by construction. A task cancelled
// on timeout may still append after the orchestrator has moved on; appends
// are harmless late, so implementations must tolerate writes after the
// timeout note has landed.
type Sink interface {
	// Section appends a titled section.
	Section(title, body string) error
	// Note appends a single free-standing line (used for timeout notes).
	Note(line string) error
}

// renderSection formats a titled section. Bodies always end with a single
// trailing newline plus a blank separator line.
func renderSection(title, body string) string {
	body = strings.TrimRight(body, "\n")
	return fmt.Sprintf("----- %s -----\n%s\n\n", title, body)
}

// Header renders the report header written once at run start.
func Header(r model.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "wrench maintenance report\n")
	fmt.Fprintf(&b, "Run ID:  %s\n", r.ID)
	fmt.Fprintf(&b, "Host:    %s\n", r.Hostname)
	fmt.Fprintf(&b, "Started: %s\n\n", printer.FormatTimestamp(r.StartedAt))
	return b.String()
}
