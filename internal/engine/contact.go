package engine

import "time"

// ContactRecord is one parsed contact line. The birthdate is kept as the raw
// text found in the input; interpretation is deferred to the window filter so
// a record with an unparseable date is still listed.
type ContactRecord struct {
	// Name is the display name (first comma field).
	Name string

	// Address is the mailing address (second comma field).
	Address string

	// Birthdate is the raw birthdate text (third comma field),
	// expected as MM/DD/YYYY with '/', '-' or '.' separators.
	Birthdate string
}

// UpcomingBirthday is the derived view produced by the window filter.
// It is computed fresh on each invocation and never stored.
type UpcomingBirthday struct {
	ContactRecord

	// DaysUntil is the whole-day distance from today to NextOccurrence.
	// A birthday today is 0.
	DaysUntil int

	// NextOccurrence is the calendar date, in the current or next year,
	// on which the birthdate's month/day next falls.
	NextOccurrence time.Time
}
