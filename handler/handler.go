package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"segurab-assistant/internal/domain"
	"segurab-assistant/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

type Replier interface {
	Reply(ctx context.Context, in usecase.ReplyInput) (usecase.ReplyOutput, error)
}

// chatRequest is the agent endpoint body: the site's {"message": ...} plus an
// optional conversation id.
type chatRequest struct {
	domain.AgentRequest
	ConversationID string `json:"conversationId"`
}

// Error codes owned by the transport; reply failures use usecase codes.
const (
	codeInvalidBody      = "INVALID_BODY"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeInternal         = "INTERNAL_ERROR"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the assistant chat endpoint behind API Gateway.
type Handler struct {
	replier Replier
	logger  *slog.Logger
}

func NewHandler(r Replier) (*Handler, error) {
	if r == nil {
		return nil, errors.New("handler: replier must not be nil")
	}
	return &Handler{replier: r, logger: slog.Default()}, nil
}

func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := headerValue(event.Headers, correlationHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	logger := h.logger.With("correlationId", correlationID)

	if event.HTTPMethod != "" && event.HTTPMethod != http.MethodPost {
		return respond(correlationID, http.StatusMethodNotAllowed, errorResponse{Error: codeMethodNotAllowed}), nil
	}

	var req chatRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		logger.Warn("handler: invalid request body", "err", err)
		return respond(correlationID, http.StatusBadRequest, errorResponse{Error: codeInvalidBody}), nil
	}

	out, err := h.replier.Reply(ctx, usecase.ReplyInput{
		Message:        req.Message,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		status, code := mapError(err)
		logger.Error("handler: reply failed", "status", status, "err", err)
		return respond(correlationID, status, errorResponse{Error: code}), nil
	}

	logger.Info("handler: reply served", "conversationId", out.ConversationID)
	return respond(correlationID, http.StatusOK, domain.AgentReply{
		Reply:          out.Reply,
		ConversationID: out.ConversationID,
	}), nil
}

func mapError(err error) (int, string) {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		return http.StatusInternalServerError, codeInternal
	}
	switch ucErr.Code {
	case usecase.CodeInvalidMessage:
		return http.StatusBadRequest, string(ucErr.Code)
	case usecase.CodeRepliesUnavailable:
		return http.StatusServiceUnavailable, string(ucErr.Code)
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func respond(correlationID string, status int, body any) events.APIGatewayProxyResponse {
	buf, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		buf = []byte(`{"error":"INTERNAL_ERROR"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: correlationID,
		},
		Body: string(buf),
	}
}

// headerValue looks a header up case-insensitively.
func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
