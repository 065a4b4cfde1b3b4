// Package invite ties the login flow, calendar event creation and attendee
// notification together.
//
// Every error returned by Service is an *Error whose Kind decides how the
// transport layer answers. A request whose invitations fail after the event
// was created reports KindMail; the event is left in place.
package invite
