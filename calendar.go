// Package calendar generates RFC 5545 iCalendar invite files for legal
// deadlines: one deadline VEVENT plus a configurable set of reminder VEVENTs,
// assembled either into one combined VCALENDAR document or one document per
// event. The package is a pure computation over its inputs; the only
// impurities are the generation clock (DTSTAMP, UID) and the UID entropy
// source, both injectable for deterministic tests.
package calendar

import (
	"crypto/rand"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"
)

// crlf is the line terminator mandated by RFC 5545 section 3.1. It is never
// substituted with a bare newline.
const crlf = "\r\n"

// Generator produces calendar documents for a fixed Config. It holds no
// mutable state and is safe for concurrent use.
type Generator struct {
	cfg  Config
	loc  *time.Location
	now  func() time.Time
	rand io.Reader
}

// WithClock overrides the generation clock, used for DTSTAMP and the UID
// millisecond component.
type WithClock func() time.Time

// WithRandom overrides the UID entropy source.
type WithRandom struct {
	Reader io.Reader
}

// NewGenerator builds a Generator for cfg. Options may be WithClock or
// WithRandom; by default the wall clock and crypto/rand are used.
func NewGenerator(cfg Config, ops ...any) (*Generator, error) {
	loc, err := cfg.location()
	if err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:  cfg,
		loc:  loc,
		now:  time.Now,
		rand: rand.Reader,
	}
	for opi, op := range ops {
		switch op := op.(type) {
		case WithClock:
			g.now = op
		case WithRandom:
			g.rand = op.Reader
		default:
			return nil, fmt.Errorf("unknown op %d of type %s", opi, reflect.TypeOf(op))
		}
	}
	return g, nil
}

// Location returns the configured zone.
func (g *Generator) Location() *time.Location {
	return g.loc
}

func (g *Generator) envelope() []string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + g.cfg.ProductID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	return append(lines, g.timezoneBlock()...)
}

// Single assembles a standalone document containing one event.
func (g *Generator) Single(ev Event) (string, error) {
	eventLines, err := g.composeEvent(ev)
	if err != nil {
		return "", err
	}
	lines := g.envelope()
	lines = append(lines, eventLines...)
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, crlf), nil
}

// Combined assembles one document containing every event in the given order
// (deadline first, then reminders as selected). Assembly is all-or-nothing:
// if any event fails to compose, no document is returned and the error wraps
// every composition failure.
func (g *Generator) Combined(events []Event) (string, error) {
	if len(events) == 0 {
		return "", ErrNoEvents
	}
	lines := g.envelope()
	var errs []error
	for _, ev := range events {
		eventLines, err := g.composeEvent(ev)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lines = append(lines, eventLines...)
	}
	if len(errs) > 0 {
		return "", &DocumentAssemblyError{Errs: errs}
	}
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, crlf), nil
}

// FileResult is the outcome of generating one standalone document. Content is
// empty when Err is set.
type FileResult struct {
	Filename string
	Content  string
	Err      error
}

// Files generates one standalone document per event, named after the
// sanitized case name and each event's filename suffix. A failing event does
// not stop the others; its failure is reported in its own result.
func (g *Generator) Files(caseName string, events []Event) []FileResult {
	results := make([]FileResult, 0, len(events))
	for _, ev := range events {
		result := FileResult{Filename: FileName(caseName, ev.FilenameSuffix)}
		result.Content, result.Err = g.Single(ev)
		results = append(results, result)
	}
	return results
}

// CombinedFile generates the single combined document named
// <sanitized-case-name>_All_Events.ics.
func (g *Generator) CombinedFile(caseName string, events []Event) (FileResult, error) {
	content, err := g.Combined(events)
	if err != nil {
		return FileResult{}, err
	}
	return FileResult{
		Filename: FileName(caseName, CombinedSuffix),
		Content:  content,
	}, nil
}
