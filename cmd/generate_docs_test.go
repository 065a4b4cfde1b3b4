package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"google_auth_url", "Authentication Tools"},
		{"calendar_create_event", "Google Calendar Tools"},
		{"unknown", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getCategoryFromToolName(tt.name))
		})
	}
}

func TestGenerateToolMarkdown(t *testing.T) {
	tool := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create an event"),
		mcp.WithString("userId", mcp.Required(), mcp.Description("Google user id")),
		mcp.WithString("attendees", mcp.Description("Comma-separated emails")),
	)

	md := generateToolMarkdown(tool)

	assert.Contains(t, md, "### calendar_create_event")
	assert.Contains(t, md, "Create an event")
	assert.Contains(t, md, "- `userId` (required): Google user id")
	assert.Contains(t, md, "- `attendees` (optional): Comma-separated emails")
}

func TestRunGenerateDocs_WritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tools.md")
	require.NoError(t, runGenerateDocs(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	md := string(data)

	assert.Contains(t, md, "# MCP Tools Reference")
	assert.Contains(t, md, "## Authentication Tools")
	assert.Contains(t, md, "### google_auth_url")
	assert.Contains(t, md, "### calendar_create_event")
}
