// Package mcpapi provides a stateless MCP streamable-HTTP adapter.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hylla/fraga/internal/adapters/server/common"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewHandler builds one stateless MCP adapter exposing the answer tools.
func NewHandler(cfg Config, answers common.AnswerService) (*Handler, error) {
	if answers == nil {
		return nil, fmt.Errorf("answer service is required")
	}
	cfg = normalizeConfig(cfg)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerAnswerTool(mcpSrv, answers)
	registerHistoryTool(mcpSrv, answers)

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpSrv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "fraga"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	if !strings.HasPrefix(cfg.EndpointPath, "/") {
		cfg.EndpointPath = "/" + cfg.EndpointPath
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// registerAnswerTool registers the `fraga.answer_question` tool.
func registerAnswerTool(srv *mcpserver.MCPServer, answers common.AnswerService) {
	srv.AddTool(
		mcp.NewTool(
			"fraga.answer_question",
			mcp.WithDescription("Answer a question from the content of one or more web pages."),
			mcp.WithArray("urls", mcp.Required(), mcp.Description("Page URLs to read"), mcp.WithStringItems()),
			mcp.WithString("question", mcp.Required(), mcp.Description("Question to answer")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			urls, err := req.RequireStringSlice("urls")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			question, err := req.RequireString("question")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			record, err := answers.AnswerQuestion(ctx, common.AnswerRequest{
				URLs:     urls,
				Question: question,
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(record)
			if err != nil {
				return nil, fmt.Errorf("encode answer_question result: %w", err)
			}
			return result, nil
		},
	)
}

// registerHistoryTool registers the `fraga.list_history` tool.
func registerHistoryTool(srv *mcpserver.MCPServer, answers common.AnswerService) {
	srv.AddTool(
		mcp.NewTool(
			"fraga.list_history",
			mcp.WithDescription("List recent answered submissions, newest first."),
			mcp.WithNumber("limit", mcp.Description("Maximum number of submissions to return")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			limit := req.GetInt("limit", 0)
			if limit < 0 {
				return mcp.NewToolResultError("invalid_request: limit must be >= 0"), nil
			}
			records, err := answers.ListHistory(ctx, limit)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"submissions": records})
			if err != nil {
				return nil, fmt.Errorf("encode list_history result: %w", err)
			}
			return result, nil
		},
	)
}

// toolResultFromError maps service errors into MCP-visible tool errors.
func toolResultFromError(err error) *mcp.CallToolResult {
	if failure, ok := common.AsValidationFailure(err); ok {
		msgs := make([]string, 0, len(failure.Fields.URLErrors)+2)
		if failure.Fields.GeneralError != "" {
			msgs = append(msgs, failure.Fields.GeneralError)
		}
		for i, msg := range failure.Fields.URLErrors {
			msgs = append(msgs, fmt.Sprintf("urls[%d]: %s", i, msg))
		}
		if failure.Fields.QuestionError != "" {
			msgs = append(msgs, failure.Fields.QuestionError)
		}
		return mcp.NewToolResultError("validation_failed: " + strings.Join(msgs, "; "))
	}
	switch {
	case err == nil:
		return mcp.NewToolResultError("unknown error")
	case errors.Is(err, common.ErrBusy):
		return mcp.NewToolResultError("busy: " + err.Error())
	case errors.Is(err, common.ErrAnswerFailed):
		return mcp.NewToolResultError("answer_failed: " + err.Error())
	case errors.Is(err, common.ErrInvalidAnswerRequest):
		return mcp.NewToolResultError("invalid_request: " + err.Error())
	case errors.Is(err, common.ErrNotFound):
		return mcp.NewToolResultError("not_found: " + err.Error())
	case errors.Is(err, common.ErrHistoryUnavailable):
		return mcp.NewToolResultError("not_implemented: " + err.Error())
	default:
		return mcp.NewToolResultError("internal_error: " + err.Error())
	}
}
