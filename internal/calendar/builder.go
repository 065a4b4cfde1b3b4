package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// BuildEvent converts input into an insert payload that asks the provider to
// attach a Meet conference. requestID must be unique per creation attempt.
func BuildEvent(input EventInput, requestID string) *calendar.Event {
	tz := input.TimeZone
	if tz == "" {
		tz = DefaultTimeZone
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: requestID,
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: ConferenceTypeMeet,
				},
			},
		},
	}

	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{
			Email: email,
		})
	}

	return event
}
