package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

const productID = "-//DEVS Society//Events//EN"

// Entry one calendar event
type Entry struct {
	ID          string
	Title       string
	Description string
	Location    string
	Start       time.Time
	Duration    time.Duration // zero means one hour
}

// Export serializes entries as an iCalendar document with a one-day reminder per event
func Export(entries []Entry, now time.Time) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")

	for _, entry := range entries {
		e := cal.AddEvent(fmt.Sprintf("%s@devs-society", entry.ID))
		e.SetDtStampTime(now)
		e.SetCreatedTime(now)
		e.SetModifiedAt(now)

		d := entry.Duration
		if d <= 0 {
			d = time.Hour
		}
		e.SetStartAt(entry.Start)
		e.SetEndAt(entry.Start.Add(d))

		e.SetSummary(entry.Title)
		e.SetDescription(entry.Description)
		e.SetLocation(entry.Location)
		e.SetStatus(ics.ObjectStatusConfirmed)
		e.SetTimeTransparency(ics.TransparencyOpaque)
		e.SetClass(ics.ClassificationPublic)

		alarm := e.AddAlarm()
		alarm.SetAction(ics.ActionDisplay)
		alarm.AddProperty("TRIGGER;VALUE=DURATION", "-P1D")
		alarm.SetDescription(fmt.Sprintf("Reminder: %s (tomorrow)", entry.Title))
	}

	return []byte(cal.Serialize())
}
