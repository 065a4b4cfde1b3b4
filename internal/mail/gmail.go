package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/teemow/meetinvite/internal/google"
	"github.com/teemow/meetinvite/internal/instrumentation"
)

// GmailSender sends mail through the Gmail API as the authenticated user.
type GmailSender struct {
	svc     *gmail.UsersService
	metrics *instrumentation.Metrics
}

// NewGmailSender creates a sender acting as the owner of token.
func NewGmailSender(ctx context.Context, token *oauth2.Token, metrics *instrumentation.Metrics, opts ...option.ClientOption) (*GmailSender, error) {
	if token == nil {
		return nil, fmt.Errorf("token cannot be nil")
	}

	opts = append([]option.ClientOption{option.WithHTTPClient(google.HTTPClient(ctx, token))}, opts...)
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &GmailSender{
		svc:     svc.Users,
		metrics: metrics,
	}, nil
}

// GmailFactory returns a SenderFactory creating a GmailSender per request.
func GmailFactory(metrics *instrumentation.Metrics, opts ...option.ClientOption) SenderFactory {
	return func(ctx context.Context, token *oauth2.Token) (Sender, error) {
		return NewGmailSender(ctx, token, metrics, opts...)
	}
}

// Send sends msg from the user's own mailbox.
func (s *GmailSender) Send(ctx context.Context, msg *Message) error {
	raw, err := BuildMIME(msg)
	if err != nil {
		return err
	}

	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceGmail, instrumentation.OperationSend)
	defer span.End()
	start := time.Now()

	_, err = s.svc.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		instrumentation.SetSpanError(span, err)
		s.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceGmail, instrumentation.OperationSend, instrumentation.StatusError, time.Since(start))
		return fmt.Errorf("failed to send email: %w", err)
	}

	instrumentation.SetSpanSuccess(span)
	s.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceGmail, instrumentation.OperationSend, instrumentation.StatusSuccess, time.Since(start))
	return nil
}
