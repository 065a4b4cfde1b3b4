package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedUsers int

func (f fixedUsers) AuthorizedUsers() int { return int(f) }

func TestHandleStatus(t *testing.T) {
	var req mcp.ReadResourceRequest
	req.Params.URI = StatusURI

	settings := Settings{
		Version:       "1.2.3",
		CalendarID:    "primary",
		TimeZone:      "Asia/Kolkata",
		MailTransport: "smtp",
	}

	contents, err := handleStatus(context.Background(), req, fixedUsers(3), settings)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, StatusURI, text.URI)
	assert.Equal(t, "application/json", text.MIMEType)

	var got Status
	require.NoError(t, json.Unmarshal([]byte(text.Text), &got))
	assert.Equal(t, 3, got.AuthorizedUsers)
	assert.Equal(t, settings, got.Settings)
}

func TestRegisterStatusResource(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithResourceCapabilities(false, false))

	assert.Error(t, RegisterStatusResource(s, nil, Settings{}))
	assert.NoError(t, RegisterStatusResource(s, fixedUsers(0), Settings{}))
}
