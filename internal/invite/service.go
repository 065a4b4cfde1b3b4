package invite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/meetinvite/internal/calendar"
	"github.com/teemow/meetinvite/internal/google"
	"github.com/teemow/meetinvite/internal/instrumentation"
	"github.com/teemow/meetinvite/internal/logging"
	"github.com/teemow/meetinvite/internal/mail"
)

// EventCreator inserts calendar events for one user.
type EventCreator interface {
	CreateEvent(ctx context.Context, calendarID string, input calendar.EventInput) (*calendar.EventSummary, error)
}

// CalendarFactory returns the EventCreator acting as the owner of token.
type CalendarFactory func(ctx context.Context, token *oauth2.Token) (EventCreator, error)

// CalendarClients returns a CalendarFactory building calendar.Client values.
func CalendarClients(cfg calendar.ClientConfig) CalendarFactory {
	return func(ctx context.Context, token *oauth2.Token) (EventCreator, error) {
		return calendar.NewClientForToken(ctx, token, cfg)
	}
}

// Config holds the dependencies of a Service.
type Config struct {
	Auth       *google.AuthFlow
	Tokens     google.TokenStore
	Calendars  CalendarFactory
	Senders    mail.SenderFactory
	Dispatcher *mail.Dispatcher
	CalendarID string
	Location   *time.Location
	Metrics    *instrumentation.Metrics
	Logger     *slog.Logger
}

// Service implements login and event creation with invitations.
type Service struct {
	auth       *google.AuthFlow
	tokens     google.TokenStore
	calendars  CalendarFactory
	senders    mail.SenderFactory
	dispatcher *mail.Dispatcher
	calendarID string
	location   *time.Location
	metrics    *instrumentation.Metrics
	logger     *slog.Logger
}

// NewService creates a Service.
func NewService(cfg Config) (*Service, error) {
	if cfg.Auth == nil {
		return nil, errors.New("auth flow is required")
	}
	if cfg.Tokens == nil {
		cfg.Tokens = cfg.Auth.Store()
	}
	if cfg.Calendars == nil {
		return nil, errors.New("calendar factory is required")
	}
	if cfg.Senders == nil {
		return nil, errors.New("sender factory is required")
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = mail.NewDispatcher(mail.WithLocation(cfg.Location), mail.WithMetrics(cfg.Metrics))
	}
	if cfg.CalendarID == "" {
		cfg.CalendarID = calendar.PrimaryCalendarID
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Service{
		auth:       cfg.Auth,
		tokens:     cfg.Tokens,
		calendars:  cfg.Calendars,
		senders:    cfg.Senders,
		dispatcher: cfg.Dispatcher,
		calendarID: cfg.CalendarID,
		location:   cfg.Location,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}, nil
}

// BeginAuthorization returns the provider consent URL.
func (s *Service) BeginAuthorization(state string) string {
	return s.auth.BeginAuthorization(state)
}

// CompleteAuthorization finishes the login started by BeginAuthorization.
func (s *Service) CompleteAuthorization(ctx context.Context, code string) (*google.Authorization, error) {
	const op = "invite.CompleteAuthorization"

	auth, err := s.auth.CompleteAuthorization(ctx, code)
	if err != nil {
		s.logger.Error("authorization failed", logging.Operation(op), logging.Err(err))
		return nil, E(KindAuth, op, err)
	}
	return auth, nil
}

// CreatedEvent is the result of a successful CreateEvent.
type CreatedEvent struct {
	Event *calendar.EventSummary
	// EventLink is the Meet link of the event.
	EventLink string
}

// CreateEvent creates a calendar event with a Meet conference for the
// requesting user and emails every attendee. Mail failures are reported
// after the event exists; the event is not removed.
func (s *Service) CreateEvent(ctx context.Context, req CreateEventRequest) (*CreatedEvent, error) {
	const op = "invite.CreateEvent"
	logger := s.logger.With(logging.Operation(op), logging.UserHash(req.UserID))

	token, err := s.tokens.Get(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, google.ErrTokenNotFound) {
			s.metrics.RecordEventCreated(ctx, instrumentation.EventResultUnauthenticated)
			logger.Warn("event requested by unauthenticated user")
			return nil, E(KindUnauthenticated, op, err)
		}
		logger.Error("token lookup failed", logging.Err(err))
		return nil, E(KindInternal, op, err)
	}

	// Missing or unparsable times fail like any other rejected event.
	start, err := ParseTime(req.StartTime, s.location)
	if err != nil {
		s.metrics.RecordEventCreated(ctx, instrumentation.EventResultProviderError)
		logger.Warn("invalid event time", logging.Err(err))
		return nil, E(KindProvider, op, fmt.Errorf("startTime: %w", err))
	}
	end, err := ParseTime(req.EndTime, s.location)
	if err != nil {
		s.metrics.RecordEventCreated(ctx, instrumentation.EventResultProviderError)
		logger.Warn("invalid event time", logging.Err(err))
		return nil, E(KindProvider, op, fmt.Errorf("endTime: %w", err))
	}

	creator, err := s.calendars(ctx, token)
	if err != nil {
		logger.Error("calendar client setup failed", logging.Err(err))
		return nil, E(KindProvider, op, err)
	}

	event, err := creator.CreateEvent(ctx, s.calendarID, calendar.EventInput{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       start,
		End:         end,
		TimeZone:    s.location.String(),
		Attendees:   req.Attendees,
	})
	if err != nil {
		s.metrics.RecordEventCreated(ctx, instrumentation.EventResultProviderError)
		logger.Error("event creation failed", logging.Service(instrumentation.ServiceCalendar), logging.Err(err))
		return nil, E(KindProvider, op, err)
	}

	logger.Info("event created",
		logging.Service(instrumentation.ServiceCalendar),
		slog.String("event_id", event.ID),
		slog.String("html_link", event.HTMLLink),
		logging.Attendees(len(req.Attendees)),
		logging.Status(logging.StatusSuccess))

	inv := mail.Invitation{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       start,
		End:         end,
		MeetLink:    event.MeetLink,
	}
	if err := s.notify(ctx, token, inv, req.Attendees); err != nil {
		s.metrics.RecordEventCreated(ctx, instrumentation.EventResultNotifyFailed)
		logger.Error("invitations not delivered, event remains in calendar",
			slog.String("event_id", event.ID),
			logging.Err(err))
		return nil, E(KindMail, op, err)
	}

	s.metrics.RecordEventCreated(ctx, instrumentation.EventResultCreated)
	return &CreatedEvent{Event: event, EventLink: event.MeetLink}, nil
}

func (s *Service) notify(ctx context.Context, token *oauth2.Token, inv mail.Invitation, attendees []string) error {
	if len(attendees) == 0 {
		return nil
	}

	sender, err := s.senders(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to create mail sender: %w", err)
	}

	return s.dispatcher.Notify(ctx, sender, inv, attendees)
}
