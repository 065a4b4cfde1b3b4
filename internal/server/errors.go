package server

import (
	"net/http"

	"github.com/teemow/meetinvite/internal/invite"
)

// Response messages.
const (
	MessageLoginSuccess    = "User login successful"
	MessageEventCreated    = "Event created and email sent successfully"
	MessageAuthFailed      = "Authentication failed"
	MessageUnauthenticated = "User not authenticated"
	MessageCreateFailed    = "Failed to create event or send event"
	MessageInvalidRequest  = "Invalid request"
	MessageInternalError   = "Internal server error"
)

type errorResponse struct {
	status  int
	message string
}

// errorTable maps every error kind to the response it produces.
var errorTable = map[invite.Kind]errorResponse{
	invite.KindAuth:            {http.StatusInternalServerError, MessageAuthFailed},
	invite.KindUnauthenticated: {http.StatusUnauthorized, MessageUnauthenticated},
	invite.KindProvider:        {http.StatusInternalServerError, MessageCreateFailed},
	invite.KindMail:            {http.StatusInternalServerError, MessageCreateFailed},
	invite.KindInvalidRequest:  {http.StatusBadRequest, MessageInvalidRequest},
	invite.KindInternal:        {http.StatusInternalServerError, MessageCreateFailed},
}

// TranslateError returns the status code and plain-text body for err.
func TranslateError(err error) (int, string) {
	if resp, ok := errorTable[invite.KindOf(err)]; ok {
		return resp.status, resp.message
	}
	return http.StatusInternalServerError, MessageInternalError
}

func writeError(w http.ResponseWriter, err error) {
	status, message := TranslateError(err)
	writeText(w, status, message)
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}
