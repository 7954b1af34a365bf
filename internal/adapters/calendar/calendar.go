// Package calendar renders event search results as an iCalendar document.
package calendar

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/okian/eventdesk/internal/domain/model"
)

// ContentType is the media type of an exported calendar.
const ContentType = "text/calendar; charset=utf-8"

const (
	productID = "-//eventdesk//events export//EN"
	uidDomain = "eventdesk"
	dateOnly  = "2006-01-02"
)

// Export serializes events as one all-day VEVENT each. Events whose start
// date cannot be parsed are exported without DTSTART.
func Export(name string, events []model.Event, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	for _, e := range events {
		ev := cal.AddEvent(e.ID + "@" + uidDomain)
		ev.SetDtStampTime(stamp.UTC())
		ev.SetSummary(e.Name)
		if e.URL != "" {
			ev.SetURL(e.URL)
		}
		if loc := Location(e); loc != "" {
			ev.SetLocation(loc)
		}
		if day, err := time.Parse(dateOnly, e.Start); err == nil {
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}
	}
	return cal.Serialize()
}

// Location joins the non-empty venue parts of e.
func Location(e model.Event) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{e.Venue, e.City, e.State, e.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
