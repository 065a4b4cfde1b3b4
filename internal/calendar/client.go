package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/teemow/meetinvite/internal/google"
	"github.com/teemow/meetinvite/internal/instrumentation"
)

// PrimaryCalendarID addresses the authenticated user's primary calendar.
const PrimaryCalendarID = "primary"

// Client wraps the Google Calendar service
type Client struct {
	svc     *calendar.Service
	apiKey  string
	metrics *instrumentation.Metrics
	newID   func() string
}

// ClientConfig holds the settings shared by every per-user client.
type ClientConfig struct {
	// APIKey is sent as the key query parameter when set.
	APIKey  string
	Metrics *instrumentation.Metrics
	// Options are appended to the service options, e.g. an endpoint override.
	Options []option.ClientOption
}

// NewClientForToken creates a Calendar client acting as the owner of token.
func NewClientForToken(ctx context.Context, token *oauth2.Token, cfg ClientConfig) (*Client, error) {
	if token == nil {
		return nil, fmt.Errorf("token cannot be nil")
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(google.HTTPClient(ctx, token))}, cfg.Options...)
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:     svc,
		apiKey:  cfg.APIKey,
		metrics: cfg.Metrics,
		newID:   uuid.NewString,
	}, nil
}

// CreateEvent inserts an event with a Meet conference into calendarID.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, input EventInput) (*EventSummary, error) {
	if calendarID == "" {
		calendarID = PrimaryCalendarID
	}

	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceCalendar, instrumentation.OperationInsert,
		attribute.String(instrumentation.SpanAttrCalendarID, calendarID),
		attribute.Int(instrumentation.SpanAttrAttendees, len(input.Attendees)),
	)
	defer span.End()
	start := time.Now()

	event := BuildEvent(input, c.newID())

	var callOpts []googleapi.CallOption
	if c.apiKey != "" {
		callOpts = append(callOpts, googleapi.QueryParameter("key", c.apiKey))
	}

	created, err := c.svc.Events.Insert(calendarID, event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do(callOpts...)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar, instrumentation.OperationInsert, instrumentation.StatusError, time.Since(start))
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	instrumentation.SetSpanSuccess(span)
	span.SetAttributes(attribute.String(instrumentation.SpanAttrEventID, created.Id))
	c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar, instrumentation.OperationInsert, instrumentation.StatusSuccess, time.Since(start))

	summary := toEventSummary(created)
	return &summary, nil
}
