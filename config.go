package calendar

import (
	"fmt"
	"time"
)

// Config is the immutable generation configuration. It is fixed for the
// lifetime of a Generator and is never mutated after construction.
type Config struct {
	// TimezoneID is the IANA identifier of the single zone all local
	// timestamps are expressed in, e.g. "America/Chicago".
	TimezoneID string
	// StandardAbbr and DaylightAbbr are the TZNAME values written into the
	// VTIMEZONE block, e.g. "CST" and "CDT".
	StandardAbbr string
	DaylightAbbr string
	// ProductID is the PRODID written into every VCALENDAR envelope
	// (RFC 5545 section 3.7.3).
	ProductID string
	// DefaultDurationMinutes is the deadline event duration used when the
	// request does not supply one.
	DefaultDurationMinutes int
}

// DefaultConfig returns the stock configuration: U.S. Central Time and a
// one hour deadline event.
func DefaultConfig() Config {
	return Config{
		TimezoneID:             "America/Chicago",
		StandardAbbr:           "CST",
		DaylightAbbr:           "CDT",
		ProductID:              "-//C.A.L.E.N.D.A.R.//Legal Deadline Generator//EN",
		DefaultDurationMinutes: 60,
	}
}

func (c Config) location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimezoneID)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.TimezoneID, err)
	}
	return loc, nil
}
