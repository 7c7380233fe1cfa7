package calendar

import (
	"regexp"
	"strings"
	"time"
)

// Request is one validated generation request as assembled by the caller
// from the form and the settings store. The core assumes required fields
// (deadline, organizer, case name, description) were validated upstream.
type Request struct {
	CaseName    string
	Description string
	// Notes is appended to the description body when present.
	Notes string
	// Recipients are the intended recipient email addresses listed in every
	// event body.
	Recipients []string
	// Prefix, when non-empty, is prepended to the deadline summary in square
	// brackets, e.g. "URGENT" becomes "[URGENT] ".
	Prefix          string
	Location        string
	Priority        Priority
	DurationMinutes int
	MarkAsBusy      bool
	OrganizerName   string
	OrganizerEmail  string
	Deadline        time.Time
	Reminders       []ReminderRule
}

// deadlineSuffix is the filename suffix of the main event.
const deadlineSuffix = "Deadline"

// CombinedSuffix is the filename suffix of the combined document.
const CombinedSuffix = "All_Events"

// PlanEvents expands a request into the deadline event followed by one event
// per reminder rule, in rule order. It is a pure function of the request.
func (g *Generator) PlanEvents(req Request) []Event {
	summary := req.CaseName + " - " + req.Description
	if req.Prefix != "" {
		summary = "[" + req.Prefix + "] " + summary
	}

	base := "Case: " + req.CaseName
	if req.Notes != "" {
		base += "\n" + req.Notes
	}
	recipients := "\n\nIntended Recipients: " + strings.Join(req.Recipients, "; ")

	events := []Event{{
		Start: req.Deadline,
		Metadata: EventMetadata{
			Summary:         summary,
			Description:     base + recipients,
			Location:        req.Location,
			OrganizerName:   req.OrganizerName,
			OrganizerEmail:  req.OrganizerEmail,
			Priority:        req.Priority,
			IsMainEvent:     true,
			DurationMinutes: req.DurationMinutes,
			MarkAsBusy:      req.MarkAsBusy,
		},
		FilenameSuffix: deadlineSuffix,
	}}

	for _, rule := range req.Reminders {
		description := rule.Label + " REMINDER for deadline on " + g.formatDeadline(req.Deadline) +
			"\n\n" + base + recipients
		events = append(events, Event{
			Start: g.ReminderInstant(req.Deadline, rule),
			Metadata: EventMetadata{
				Summary:        "[REMINDER - " + rule.Label + "] " + req.CaseName + " - " + req.Description,
				Description:    description,
				OrganizerName:  req.OrganizerName,
				OrganizerEmail: req.OrganizerEmail,
				Priority:       req.Priority,
			},
			FilenameSuffix: "Reminder-" + strings.Join(strings.Fields(rule.Label), ""),
		})
	}

	return events
}

// formatDeadline renders the deadline for reminder bodies in a human
// readable long form, e.g. "Monday, June 16, 2025 at 05:00 PM".
func (g *Generator) formatDeadline(t time.Time) string {
	return t.In(g.loc).Format("Monday, January 2, 2006 at 03:04 PM")
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRuns      = regexp.MustCompile(`\s+`)
)

// SanitizeBaseName strips characters outside word characters, whitespace and
// hyphens, then collapses whitespace runs to single underscores. The result
// is the base of every generated filename.
func SanitizeBaseName(s string) string {
	return whitespaceRuns.ReplaceAllString(unsafeFilenameChars.ReplaceAllString(s, ""), "_")
}

// FileName builds <sanitized-case-name>_<suffix>.ics.
func FileName(caseName, suffix string) string {
	return SanitizeBaseName(caseName) + "_" + suffix + ".ics"
}
