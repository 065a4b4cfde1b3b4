package mail

import (
	"context"

	"golang.org/x/oauth2"
)

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SenderFactory returns the Sender used for a request made by the owner of token.
type SenderFactory func(ctx context.Context, token *oauth2.Token) (Sender, error)

// Static returns a SenderFactory that always uses s.
func Static(s Sender) SenderFactory {
	return func(context.Context, *oauth2.Token) (Sender, error) {
		return s, nil
	}
}
