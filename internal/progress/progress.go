// Package progress tracks and publishes the completion percentage of a
// maintenance run.
package progress

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Observer receives progress updates. It must accept repeated calls; percent
// values are non-decreasing during a normal run.
type Observer interface {
	Publish(label string, percent int)
}

// ObserverFunc is a convenience adapter to allow the use of ordinary
// functions as Observers.
type ObserverFunc func(label string, percent int)

func (f ObserverFunc) Publish(label string, percent int) { f(label, percent) }

// Noop is an Observer that discards all updates.
var Noop Observer = ObserverFunc(func(string, int) {})

// Tracker maps a monotonically increasing step counter to a percentage and
// publishes it. It is owned by the single orchestrating flow: it is not safe
// for concurrent use and doesn't need to be, the orchestrator advances it
// synchronously before dispatching each task.
type Tracker struct {
	total    int
	current  int
	observer Observer
}

// NewTracker creates a tracker over a fixed total step count.
func NewTracker(totalSteps int, observer Observer) *Tracker {
	if observer == nil {
		observer = Noop
	}
	return &Tracker{total: totalSteps, observer: observer}
}

// Advance increments the current step, publishes the new percentage with the
// given activity label and returns it. Advancing past the total is tolerated
// and reports above 100.
func (t *Tracker) Advance(label string) int {
	t.current++
	percent := int(math.Round(float64(t.current) / float64(t.total) * 100))
	t.observer.Publish(label, percent)
	return percent
}

// Current returns the current step.
func (t *Tracker) Current() int { return t.current }

// Total returns the total step count.
func (t *Tracker) Total() int { return t.total }

// ConsoleObserver renders a progress bar on a single console line.
type ConsoleObserver struct {
	w io.Writer
}

// NewConsoleObserver creates a console progress observer.
func NewConsoleObserver(w io.Writer) *ConsoleObserver {
	return &ConsoleObserver{w: w}
}

func (c *ConsoleObserver) Publish(label string, percent int) {
	barWidth := 40
	filled := percent * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
	fmt.Fprintf(c.w, "\r  [%s] %3d%% %s", bar, percent, label)
}

// Finish ends the progress line with a newline.
func (c *ConsoleObserver) Finish() {
	fmt.Fprintln(c.w)
}
