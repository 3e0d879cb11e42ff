package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"segurab-assistant/internal/domain"
)

type scriptedSender struct {
	calls atomic.Int32
	fn    func(msg string) domain.ChatResponse
}

func (s *scriptedSender) Send(_ context.Context, msg string) domain.ChatResponse {
	s.calls.Add(1)
	return s.fn(msg)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_RepliesToEachLineInOrder(t *testing.T) {
	sender := &scriptedSender{fn: func(msg string) domain.ChatResponse {
		return domain.ChatResponse{Text: "re: " + msg}
	}}
	var out bytes.Buffer

	err := Run(context.Background(), strings.NewReader("a\n\n   \nb\n"), &out, sender, discardLogger())
	require.NoError(t, err)
	require.Equal(t, "asistente: re: a\nasistente: re: b\n", out.String())
	require.Equal(t, int32(2), sender.calls.Load())
}

func TestRun_ErrorResponsesAreLabelled(t *testing.T) {
	sender := &scriptedSender{fn: func(string) domain.ChatResponse {
		return domain.ChatResponse{Text: "sin conexión", IsError: true}
	}}
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), strings.NewReader("hola\n"), &out, sender, discardLogger()))
	require.Equal(t, "error: sin conexión\n", out.String())
}

func TestRun_PanickingSenderShowsGenericError(t *testing.T) {
	sender := &scriptedSender{fn: func(string) domain.ChatResponse { panic("boom") }}
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), strings.NewReader("hola\nadiós\n"), &out, sender, discardLogger()))
	require.Equal(t, "error: Error inesperado. Intenta de nuevo.\nerror: Error inesperado. Intenta de nuevo.\n", out.String())
}

func TestRun_QuitCommandStops(t *testing.T) {
	sender := &scriptedSender{fn: func(msg string) domain.ChatResponse {
		return domain.ChatResponse{Text: msg}
	}}
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), strings.NewReader("uno\n/salir\ndos\n"), &out, sender, discardLogger()))
	require.Equal(t, "asistente: uno\n", out.String())
	require.Equal(t, int32(1), sender.calls.Load())
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sender := &scriptedSender{fn: func(string) domain.ChatResponse { return domain.ChatResponse{} }}

	err := Run(ctx, strings.NewReader("hola\n"), io.Discard, sender, discardLogger())
	require.ErrorIs(t, err, context.Canceled)
}
