// Package calendar creates Google Calendar events with an attached Google Meet
// conference.
//
// A Client is built per request from the requesting user's token:
//
//	client, err := calendar.NewClientForToken(ctx, token, calendar.ClientConfig{})
//	if err != nil {
//	    return err
//	}
//	event, err := client.CreateEvent(ctx, calendar.PrimaryCalendarID, calendar.EventInput{
//	    Summary:   "Planning",
//	    Start:     start,
//	    End:       start.Add(time.Hour),
//	    Attendees: []string{"a@example.com"},
//	})
//
// The Meet link of the created event is in EventSummary.MeetLink.
package calendar
