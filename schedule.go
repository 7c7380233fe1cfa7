package calendar

import "time"

// ReminderRule describes one reminder relative to the deadline. Either
// SevenAMSameDay is set, or Days/Hours hold non-negative offsets subtracted
// from the deadline.
type ReminderRule struct {
	// Label is the human readable name, e.g. "1 Day" or "7AM Day Of". It
	// appears in reminder summaries and filename suffixes.
	Label string
	Days  int
	Hours int
	// SevenAMSameDay pins the reminder to 07:00:00 local on the deadline's
	// own calendar date, ignoring the deadline's time of day. For a deadline
	// earlier than 7 AM the reminder lands after the deadline.
	SevenAMSameDay bool
}

// StandardReminders is the built-in catalog offered by the form, in display
// order.
func StandardReminders() []ReminderRule {
	return []ReminderRule{
		{Label: "7AM Day Of", SevenAMSameDay: true},
		{Label: "1 Day", Days: 1},
		{Label: "2 Days", Days: 2},
		{Label: "3 Days", Days: 3},
		{Label: "1 Week", Days: 7},
		{Label: "2 Weeks", Days: 14},
		{Label: "1 Month", Days: 30},
	}
}

// LookupReminder resolves a catalog label to its rule.
func LookupReminder(label string) (ReminderRule, bool) {
	for _, r := range StandardReminders() {
		if r.Label == label {
			return r, true
		}
	}
	return ReminderRule{}, false
}

// ReminderInstant computes the trigger instant for rule relative to deadline.
// The arithmetic is wall-clock field mutation in the configured zone: the day
// offset is applied first, then the hour offset, each normalized by the
// calendar. Subtracting hours across a DST transition therefore shifts the
// wall clock, not a fixed duration. The result is fully determined by the
// deadline and the rule.
func (g *Generator) ReminderInstant(deadline time.Time, rule ReminderRule) time.Time {
	d := deadline.In(g.loc)
	if rule.SevenAMSameDay {
		return time.Date(d.Year(), d.Month(), d.Day(), 7, 0, 0, 0, g.loc)
	}
	d = time.Date(d.Year(), d.Month(), d.Day()-rule.Days, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), g.loc)
	return time.Date(d.Year(), d.Month(), d.Day(), d.Hour()-rule.Hours, d.Minute(), d.Second(), d.Nanosecond(), g.loc)
}
