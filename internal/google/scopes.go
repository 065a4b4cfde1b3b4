package google

import (
	calendar "google.golang.org/api/calendar/v3"
	gmail "google.golang.org/api/gmail/v1"
	oauth2api "google.golang.org/api/oauth2/v2"
)

// DefaultOAuthScopes are requested on every authorization. The userinfo
// scopes are needed to resolve the user id the token is stored under.
var DefaultOAuthScopes = []string{
	calendar.CalendarScope,
	calendar.CalendarEventsScope,
	oauth2api.UserinfoProfileScope,
	oauth2api.UserinfoEmailScope,
}

// Scopes returns the scopes to request. The Gmail send scope is added when
// invitations go out through the user's own mailbox.
func Scopes(gmailSend bool) []string {
	scopes := make([]string, len(DefaultOAuthScopes), len(DefaultOAuthScopes)+1)
	copy(scopes, DefaultOAuthScopes)
	if gmailSend {
		scopes = append(scopes, gmail.GmailSendScope)
	}
	return scopes
}
