// Package logging provides structured logging helpers for the meetinvite service.
//
// All packages log through log/slog. This package keeps attribute names consistent
// and makes sure user identifiers, attendee addresses and OAuth tokens never reach
// the log output in clear text.
//
// # Usage Patterns
//
// Set up the process-wide logger once at startup:
//
//	slog.SetDefault(logging.New(os.Stderr, logging.FormatText, debug))
//
// Attach standard attributes:
//
//	logger := slog.Default().With(logging.Operation("invite.CreateEvent"))
//	logger.Info("event created",
//	    logging.UserHash(userID),
//	    logging.Status(logging.StatusSuccess))
//
// # Security Considerations
//
//   - User ids and emails are hashed so log lines can be correlated without PII
//   - Tokens are only ever logged as a length indicator
package logging
