package engine

import (
	"strings"
)

// --- Battle context and helpers ---------------------------------------
type battleContext struct {
	reporter Reporter
	events   []Event
	summary  []string
}

func newBattleContext(r Reporter) *battleContext {
	if r == nil {
		r = discardReporter{}
	}
	return &battleContext{reporter: r, events: make([]Event, 0, 16), summary: make([]string, 0, 16)}
}

// add records an event, appends its message to the summary and forwards it
// to the reporter.
func (bc *battleContext) add(e Event) {
	bc.events = append(bc.events, e)
	if e.Message != "" {
		bc.summary = append(bc.summary, e.Message)
	}
	bc.reporter.Report(e)
}

// joinSummary returns the accumulated summary as a single string.
func (bc *battleContext) joinSummary() string {
	return strings.Join(bc.summary, "\n")
}

func (bc *battleContext) snapshot() []Event {
	out := make([]Event, len(bc.events))
	copy(out, bc.events)
	return out
}
