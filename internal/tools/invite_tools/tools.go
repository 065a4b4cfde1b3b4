package invite_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/meetinvite/internal/invite"
	"github.com/teemow/meetinvite/internal/server"
	"github.com/teemow/meetinvite/internal/tools/common"
)

// Tool names.
const (
	ToolAuthURL     = "google_auth_url"
	ToolCreateEvent = "calendar_create_event"
)

// RegisterInviteTools registers the login and event creation tools with the MCP server
func RegisterInviteTools(s *mcpserver.MCPServer, svc server.Invitations, logger *slog.Logger) error {
	if svc == nil {
		return fmt.Errorf("service cannot be nil")
	}

	authURLTool := mcp.NewTool(ToolAuthURL,
		mcp.WithDescription("Get the Google consent URL. After the user signs in, the redirect response contains the userId used by calendar_create_event."),
	)
	s.AddTool(authURLTool, common.InstrumentedToolHandler(ToolAuthURL, logger,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAuthURL(ctx, request, svc)
		}))

	createEventTool := mcp.NewTool(ToolCreateEvent,
		mcp.WithDescription("Create a calendar event with a Google Meet link and email an invitation to every attendee"),
		mcp.WithString("userId",
			mcp.Required(),
			mcp.Description("Google user id returned by the login redirect"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Event title/summary"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("startTime",
			mcp.Required(),
			mcp.Description("Start time (RFC3339, e.g. '2025-01-15T14:00:00Z', or local time '2025-01-15T14:00')"),
		),
		mcp.WithString("endTime",
			mcp.Required(),
			mcp.Description("End time (RFC3339, e.g. '2025-01-15T15:00:00Z', or local time '2025-01-15T15:00')"),
		),
		mcp.WithString("attendees",
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
	)
	s.AddTool(createEventTool, common.InstrumentedToolHandler(ToolCreateEvent, logger,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, svc)
		}))

	return nil
}

func handleAuthURL(_ context.Context, _ mcp.CallToolRequest, svc server.Invitations) (*mcp.CallToolResult, error) {
	authURL := svc.BeginAuthorization(uuid.NewString())
	return mcp.NewToolResultText(fmt.Sprintf("Open this URL in a browser and sign in with Google:\n\n%s", authURL)), nil
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, svc server.Invitations) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	req := invite.CreateEventRequest{
		UserID:      common.StringArg(args, "userId"),
		Summary:     common.StringArg(args, "summary"),
		Description: common.StringArg(args, "description"),
		StartTime:   common.StringArg(args, "startTime"),
		EndTime:     common.StringArg(args, "endTime"),
		Attendees:   common.ParseCommaSeparatedList(common.StringArg(args, "attendees")),
	}

	if req.UserID == "" {
		return mcp.NewToolResultError("userId is required"), nil
	}

	created, err := svc.CreateEvent(ctx, req)
	if err != nil {
		_, message := server.TranslateError(err)
		return mcp.NewToolResultError(message), nil
	}

	out, err := json.Marshal(server.CreateEventResponse{
		Message:   server.MessageEventCreated,
		EventLink: created.EventLink,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}
