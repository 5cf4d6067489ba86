package mcp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"
	srv "github.com/mark3labs/mcp-go/server"
)

// newMCPHooks logs the JSON-RPC lifecycle. Tool calls carry the tool name
// and, for research_topic, the requested depth.
func newMCPHooks(logger logSDK.Logger) *srv.Hooks {
	if logger == nil {
		return nil
	}

	hooks := &srv.Hooks{}

	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcp.MCPMethod, message any) {
		fields := append(hookLogFields(ctx, id, method), toolCallFields(message)...)
		if message != nil {
			fields = append(fields, zap.String("request", hookPayload(message)))
		}
		logger.Debug("mcp request received", fields...)
	})

	hooks.AddOnSuccess(func(ctx context.Context, id any, method mcp.MCPMethod, message any, result any) {
		fields := append(hookLogFields(ctx, id, method), toolCallFields(message)...)
		if result != nil {
			fields = append(fields, zap.String("response", hookPayload(result)))
		}
		logger.Info("mcp request succeeded", fields...)
	})

	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		fields := append(hookLogFields(ctx, id, method), toolCallFields(message)...)
		fields = append(fields, zap.Error(err))
		if isUnsupportedCapabilityRequest(method, err) {
			logger.Debug("mcp client asked for unsupported capability", fields...)
			return
		}
		logger.Error("mcp request failed", fields...)
	})

	hooks.AddOnRegisterSession(func(ctx context.Context, session srv.ClientSession) {
		logger.Info("mcp session registered", zap.String("session_id", session.SessionID()))
	})

	hooks.AddOnUnregisterSession(func(ctx context.Context, session srv.ClientSession) {
		logger.Info("mcp session unregistered", zap.String("session_id", session.SessionID()))
	})

	return hooks
}

// isUnsupportedCapabilityRequest reports whether err is a client listing resources or
// prompts, neither of which this server offers.
func isUnsupportedCapabilityRequest(method mcp.MCPMethod, err error) bool {
	if err == nil {
		return false
	}

	errText := strings.ToLower(err.Error())
	switch method {
	case mcp.MethodResourcesList, mcp.MethodResourcesTemplatesList:
		return strings.Contains(errText, "resources not supported")
	case mcp.MethodPromptsList:
		return strings.Contains(errText, "prompts not supported")
	default:
		return false
	}
}

func hookLogFields(ctx context.Context, id any, method mcp.MCPMethod) []zap.Field {
	fields := []zap.Field{
		zap.Any("request_id", id),
		zap.String("method", string(method)),
	}

	if session := srv.ClientSessionFromContext(ctx); session != nil {
		fields = append(fields, zap.String("session_id", session.SessionID()))
	}

	return fields
}

// toolCallFields extracts the tool name and research depth from a tools/call message.
func toolCallFields(message any) []zap.Field {
	req, ok := message.(*mcp.CallToolRequest)
	if !ok || req == nil {
		return nil
	}

	fields := []zap.Field{zap.String("tool", req.Params.Name)}
	if req.Params.Name == toolResearchTopic {
		depth := strings.TrimSpace(req.GetString("depth", ""))
		if depth == "" {
			depth = "default"
		}
		fields = append(fields, zap.String("depth", depth))
	}
	if query := req.GetString("query", ""); query != "" {
		fields = append(fields, zap.Int("query_len", len(query)))
	}

	return fields
}

// withHTTPLogging logs a bounded prefix of request and response bodies at debug level.
func withHTTPLogging(next http.Handler, logger logSDK.Logger) http.Handler {
	if next == nil {
		return nil
	}
	if logger == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startAt := time.Now()
		body, truncated, err := peekRequestBody(r, httpLogBodyLimit)
		if err != nil {
			logger.Warn("peek mcp request body", zap.Error(err))
		}
		sessionID := strings.TrimSpace(r.Header.Get(srv.HeaderKeySessionID))

		logger.Debug("incoming mcp http request",
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.String("body", body),
			zap.Bool("body_truncated", truncated),
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("mcp_session_id", sessionID),
		)

		cw := newCapturingWriter(w, httpLogBodyLimit)
		next.ServeHTTP(cw, r)

		respBody, respTruncated := cw.Body()
		logger.Debug("outgoing mcp http response",
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.Int("status", cw.Status()),
			zap.String("body", respBody),
			zap.Bool("body_truncated", respTruncated),
			zap.Duration("cost", time.Since(startAt)),
		)
	})
}

// peekRequestBody reads at most limit bytes for logging and puts them back in
// front of the unread remainder, so the next handler still sees the whole body.
func peekRequestBody(r *http.Request, limit int) (string, bool, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", false, nil
	}

	prefix, err := io.ReadAll(io.LimitReader(r.Body, int64(limit)+1))
	r.Body = struct {
		io.Reader
		io.Closer
	}{
		Reader: io.MultiReader(bytes.NewReader(prefix), r.Body),
		Closer: r.Body,
	}
	if err != nil {
		return "", false, err
	}

	logged, truncated := truncateForLog(prefix, limit)
	return logged, truncated, nil
}

// capturingWriter keeps the first bodyLimit bytes written for the response log.
type capturingWriter struct {
	http.ResponseWriter
	status    int
	buffer    bytes.Buffer
	truncated bool
	bodyLimit int
}

func newCapturingWriter(w http.ResponseWriter, limit int) *capturingWriter {
	return &capturingWriter{
		ResponseWriter: w,
		bodyLimit:      limit,
	}
}

func (cw *capturingWriter) WriteHeader(code int) {
	if cw.status == 0 {
		cw.status = code
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *capturingWriter) Write(b []byte) (int, error) {
	if cw.status == 0 {
		cw.status = http.StatusOK
	}

	remaining := cw.bodyLimit - cw.buffer.Len()
	switch {
	case remaining <= 0:
		cw.truncated = cw.truncated || len(b) > 0
	case len(b) > remaining:
		cw.buffer.Write(b[:remaining])
		cw.truncated = true
	default:
		cw.buffer.Write(b)
	}

	return cw.ResponseWriter.Write(b)
}

// Flush lets streamable HTTP push SSE events through the wrapper.
func (cw *capturingWriter) Flush() {
	if flusher, ok := cw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (cw *capturingWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}

func (cw *capturingWriter) Status() int {
	if cw.status == 0 {
		return http.StatusOK
	}
	return cw.status
}

func (cw *capturingWriter) Body() (string, bool) {
	logged, truncated := truncateForLog(cw.buffer.Bytes(), cw.bodyLimit)
	return logged, truncated || cw.truncated
}
