package calendar

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"
)

// Priority is the form-level priority which maps onto the numeric iCalendar
// PRIORITY property (RFC 5545 section 3.8.1.9).
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ICSValue returns the PRIORITY property value: 1 for high, 9 for low, and 5
// for anything else.
func (p Priority) ICSValue() string {
	switch p {
	case PriorityHigh:
		return "1"
	case PriorityLow:
		return "9"
	default:
		return "5"
	}
}

// EventMetadata is the caller-supplied description of one event. It is
// immutable for the duration of a generation call.
type EventMetadata struct {
	// Summary is the event title, written verbatim.
	Summary string
	// Description may contain newlines; they are escaped on serialization.
	Description string
	// Location is only written for the main deadline event.
	Location       string
	OrganizerName  string
	OrganizerEmail string
	Priority       Priority
	// IsMainEvent marks the deadline event. Reminder events get a fixed one
	// minute nominal duration and are always transparent/free.
	IsMainEvent     bool
	DurationMinutes int
	MarkAsBusy      bool
}

// Event pairs an instant with its metadata and filename suffix. Events are
// constructed fresh per generation request and discarded after assembly.
type Event struct {
	Start          time.Time
	Metadata       EventMetadata
	FilenameSuffix string
}

// composeEvent renders one BEGIN:VEVENT..END:VEVENT block as content lines,
// each already folded. The current time is read once, for DTSTAMP and the
// UID's millisecond component.
func (g *Generator) composeEvent(ev Event) ([]string, error) {
	if ev.Start.IsZero() {
		return nil, &CompositionError{Suffix: ev.FilenameSuffix, Err: ErrInvalidInstant}
	}

	md := ev.Metadata
	duration := 1
	markAsBusy := false
	if md.IsMainEvent {
		duration = md.DurationMinutes
		if duration < 1 {
			duration = g.cfg.DefaultDurationMinutes
		}
		markAsBusy = md.MarkAsBusy
	}

	start := ev.Start.In(g.loc)
	end := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), start.Minute()+duration, start.Second(), 0, g.loc)

	now := g.now()
	uid, err := g.newUID(now)
	if err != nil {
		return nil, &CompositionError{Suffix: ev.FilenameSuffix, Err: err}
	}

	busyStatus := "FREE"
	transp := "TRANSPARENT"
	if markAsBusy {
		busyStatus = "BUSY"
		transp = "OPAQUE"
	}

	lines := []string{"BEGIN:VEVENT"}
	lines = append(lines, FoldLine("UID:"+uid)...)
	lines = append(lines, FoldLine("DTSTAMP:"+formatUTC(now))...)
	lines = append(lines, FoldLine("DTSTART;TZID="+g.cfg.TimezoneID+":"+g.formatLocal(start))...)
	lines = append(lines, FoldLine("DTEND;TZID="+g.cfg.TimezoneID+":"+g.formatLocal(end))...)
	lines = append(lines, FoldLine("SUMMARY:"+md.Summary)...)
	lines = append(lines, FoldLine("DESCRIPTION:"+escapeDescription(md.Description))...)
	lines = append(lines, FoldLine("PRIORITY:"+md.Priority.ICSValue())...)
	lines = append(lines,
		"CLASS:PUBLIC",
		"STATUS:CONFIRMED",
		"SEQUENCE:0",
	)
	lines = append(lines, FoldLine("TRANSP:"+transp)...)
	lines = append(lines, FoldLine("X-MICROSOFT-CDO-BUSYSTATUS:"+busyStatus)...)
	lines = append(lines, FoldLine("X-MICROSOFT-CDO-INTENDEDSTATUS:"+busyStatus)...)
	lines = append(lines, "X-MICROSOFT-DISALLOW-COUNTER:FALSE")
	lines = append(lines, FoldLine("ORGANIZER;CN=\""+md.OrganizerName+"\":mailto:"+md.OrganizerEmail)...)

	if md.IsMainEvent && md.Location != "" {
		lines = append(lines, FoldLine("LOCATION:"+md.Location)...)
	}

	lines = append(lines,
		"BEGIN:VALARM",
		"ACTION:DISPLAY",
		"DESCRIPTION:Reminder",
		"TRIGGER;RELATED=START:-PT15M",
		"END:VALARM",
		"END:VEVENT",
	)

	return lines, nil
}

// newUID builds a UID from two independent 24 character hexadecimal strings
// with the millisecond generation timestamp between them. The two random
// halves make collisions within the same millisecond practically impossible.
func (g *Generator) newUID(now time.Time) (string, error) {
	buf := make([]byte, 24)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("uid entropy: %w", err)
	}
	part1 := strings.ToUpper(hex.EncodeToString(buf[:12]))
	part2 := strings.ToUpper(hex.EncodeToString(buf[12:]))
	return fmt.Sprintf("%s%d%s", part1, now.UnixMilli(), part2), nil
}
