package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// DefaultTimeZone is the zone attached to event times when none is configured.
const DefaultTimeZone = "Asia/Kolkata"

// ConferenceTypeMeet requests a Google Meet conference for the event.
const ConferenceTypeMeet = "hangoutsMeet"

// EventInput represents the input for creating a calendar event
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []string
}

// EventSummary is the part of a created event the service reports back.
type EventSummary struct {
	ID       string
	HTMLLink string
	MeetLink string
}

// toEventSummary converts a Google Calendar event to an EventSummary
func toEventSummary(event *calendar.Event) EventSummary {
	if event == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:       event.Id,
		HTMLLink: event.HtmlLink,
		MeetLink: event.HangoutLink,
	}

	// Fall back to the conference entry points when hangoutLink is absent
	if summary.MeetLink == "" && event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				summary.MeetLink = ep.Uri
				break
			}
		}
	}

	return summary
}
