// Package mail sends meeting invitations to event attendees.
//
// Two transports implement Sender: SMTPSender relays through an SMTP server
// with the configured mailbox credentials, GmailSender sends through the
// Gmail API as the authenticated user. Dispatcher fans an Invitation out to
// every attendee and reports all failed sends together.
package mail
