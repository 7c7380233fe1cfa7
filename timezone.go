package calendar

// timezoneBlock emits the VTIMEZONE component for the configured zone. The
// block describes the recurring U.S. DST rule, not any specific year's
// transitions: DAYLIGHT starts the second Sunday of March at 02:00 local
// (-0600 to -0500) and STANDARD the first Sunday of November at 02:00 local
// (-0500 to -0600), per RFC 5545 section 3.6.5.
func (g *Generator) timezoneBlock() []string {
	return []string{
		"BEGIN:VTIMEZONE",
		"TZID:" + g.cfg.TimezoneID,
		"TZURL:http://tzurl.org/zoneinfo/" + g.cfg.TimezoneID,
		"X-LIC-LOCATION:" + g.cfg.TimezoneID,
		"BEGIN:DAYLIGHT",
		"TZOFFSETFROM:-0600",
		"TZOFFSETTO:-0500",
		"TZNAME:" + g.cfg.DaylightAbbr,
		"DTSTART:19700308T020000",
		"RRULE:FREQ=YEARLY;BYMONTH=3;BYDAY=2SU",
		"END:DAYLIGHT",
		"BEGIN:STANDARD",
		"TZOFFSETFROM:-0500",
		"TZOFFSETTO:-0600",
		"TZNAME:" + g.cfg.StandardAbbr,
		"DTSTART:19701101T020000",
		"RRULE:FREQ=YEARLY;BYMONTH=11;BYDAY=1SU",
		"END:STANDARD",
		"END:VTIMEZONE",
	}
}
