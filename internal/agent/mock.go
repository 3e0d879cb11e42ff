package agent

import (
	"context"
	"time"

	"segurab-assistant/internal/domain"
)

const (
	mockMinDelay    = 900 * time.Millisecond
	mockDelaySpread = 600 * time.Millisecond
)

// mockResponder ignores the message and answers with a random canned reply.
type mockResponder struct {
	replies []string
	sleep   sleepFunc
	rng     RandSource
}

func (m *mockResponder) Respond(ctx context.Context, _ string) domain.ChatResponse {
	m.sleep(ctx, m.delay())
	return domain.ChatResponse{Text: m.replies[m.rng.IntN(len(m.replies))]}
}

// delay is uniform in [900ms, 1500ms).
func (m *mockResponder) delay() time.Duration {
	return mockMinDelay + time.Duration(m.rng.Int64N(int64(mockDelaySpread)))
}
