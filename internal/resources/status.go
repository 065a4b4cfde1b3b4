package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// StatusURI identifies the service status resource.
const StatusURI = "meetinvite://status"

// UserCounter reports how many users hold a stored token.
type UserCounter interface {
	AuthorizedUsers() int
}

// Settings are the non-secret settings published in the status resource.
type Settings struct {
	Version       string `json:"version"`
	CalendarID    string `json:"calendarId"`
	TimeZone      string `json:"timeZone"`
	MailTransport string `json:"mailTransport"`
}

// Status is the JSON document served at StatusURI.
type Status struct {
	Settings
	AuthorizedUsers int `json:"authorizedUsers"`
}

// RegisterStatusResource registers the read-only status resource.
func RegisterStatusResource(s *mcpserver.MCPServer, users UserCounter, settings Settings) error {
	if users == nil {
		return fmt.Errorf("user counter cannot be nil")
	}

	statusResource := mcp.NewResource(
		StatusURI,
		"Service Status",
		mcp.WithResourceDescription("Calendar, time zone and mail transport in use, and the number of signed-in users"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(statusResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleStatus(ctx, request, users, settings)
	})

	return nil
}

func handleStatus(_ context.Context, request mcp.ReadResourceRequest, users UserCounter, settings Settings) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(Status{
		Settings:        settings,
		AuthorizedUsers: users.AuthorizedUsers(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
