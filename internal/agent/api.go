package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"segurab-assistant/internal/domain"
)

const (
	noResponseText = "Sin respuesta."
	failureText    = "Hubo un problema al conectar con el agente. Intenta de nuevo."
)

// replyFields lists the response fields checked for the reply text, in order.
// A field holding "" counts as missing, unlike a plain null check, so the
// reply shown is never blank.
var replyFields = []string{"text", "reply", "message"}

// HTTPStatusError is returned for non-2xx agent responses.
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("agent: unexpected status %d from %s", e.StatusCode, e.URL)
}

type apiResponder struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

func (a *apiResponder) Respond(ctx context.Context, userMessage string) domain.ChatResponse {
	text, err := a.post(ctx, userMessage)
	if err != nil {
		a.logger.Error("agent: failed to reach the agent", "endpoint", a.endpoint, "err", err)
		return domain.ChatResponse{Text: failureText, IsError: true}
	}
	return domain.ChatResponse{Text: text}
}

func (a *apiResponder) post(ctx context.Context, userMessage string) (string, error) {
	body, err := json.Marshal(domain.AgentRequest{Message: userMessage})
	if err != nil {
		return "", fmt.Errorf("agent: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("agent: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("agent: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", &HTTPStatusError{StatusCode: res.StatusCode, URL: a.endpoint}
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("agent: read response body: %w", err)
	}
	return extractReply(raw)
}

// extractReply returns the first non-empty reply field of a JSON object body,
// or the "no response" marker when none is present.
func extractReply(raw []byte) (string, error) {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("agent: decode response: %w", err)
	}
	if body == nil {
		return "", errors.New("agent: response body is null")
	}
	obj, ok := body.(map[string]any)
	if !ok {
		return noResponseText, nil
	}
	for _, field := range replyFields {
		if text, ok := fieldText(obj[field]); ok {
			return text, nil
		}
	}
	return noResponseText, nil
}

func fieldText(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	default:
		buf, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(buf), true
	}
}
