package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/birthday-cards/internal/config"
)

// SummaryFormatter localizes the event summary line. The UI injects a
// translation-backed formatter; a nil formatter falls back to English.
type SummaryFormatter func(name string) string

// BuildCalendar renders the upcoming-birthday list as an iCalendar document
// with one all-day event per record. When the list is empty a minimal valid
// stub calendar is returned so feed clients do not flag the content.
func BuildCalendar(upcoming []UpcomingBirthday, now time.Time, formatSummary SummaryFormatter) ([]byte, error) {
	if len(upcoming) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// Birthdays are local calendar dates; only the DTSTAMP is UTC.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, b := range upcoming {
		event := ical.NewEvent()

		// Deterministic UID so feed clients keep event identity across refreshes.
		input := fmt.Sprintf(config.FormatHashInput,
			b.Name, b.NextOccurrence.Format(time.RFC3339), config.UIDSalt)
		hash := sha256.Sum256([]byte(input))
		uid := fmt.Sprintf("%x", hash[:config.UIDHashLength])
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uid, config.ICalDomain))

		summary := fmt.Sprintf(config.FallbackSummary, b.Name)
		if formatSummary != nil {
			summary = formatSummary(b.Name)
		}
		event.Props.SetText(config.PropSummary, summary)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(b.NextOccurrence)
		event.Props.Set(dtStartProp)

		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedUpdated,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(upcoming))

	return buf.Bytes(), nil
}
