package common

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/meetinvite/internal/instrumentation"
	"github.com/teemow/meetinvite/internal/logging"
)

// ToolHandler is the handler signature of an MCP tool.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler in a server span and logs
// the outcome of every invocation.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", logger, handler))
func InstrumentedToolHandler(toolName string, logger *slog.Logger, handler ToolHandler) ToolHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := instrumentation.StartSpan(ctx, "tool."+toolName)
		defer span.End()
		start := time.Now()

		result, err := handler(ctx, request)

		status := instrumentation.StatusSuccess
		switch {
		case err != nil:
			status = instrumentation.StatusError
			instrumentation.SetSpanError(span, err)
		case result != nil && result.IsError:
			status = instrumentation.StatusError
		default:
			instrumentation.SetSpanSuccess(span)
		}

		logger.Info("tool invoked",
			logging.Operation(toolName),
			logging.Status(status),
			slog.Duration(logging.KeyDuration, time.Since(start)),
			slog.String("trace_id", instrumentation.GetTraceID(ctx)))

		return result, err
	}
}
