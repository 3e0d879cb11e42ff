package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"segurab-assistant/internal/domain"
)

type mockLister struct {
	vals  map[string][]string
	err   error
	calls int
}

func (m *mockLister) GetStringList(_ context.Context, name string) ([]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.vals[name]
	if !ok {
		return nil, errors.New("param not found: " + name)
	}
	return v, nil
}

// transientLister fails the first call only.
type transientLister struct {
	*mockLister
	failOnce bool
}

func (p *transientLister) GetStringList(ctx context.Context, name string) ([]string, error) {
	if p.failOnce {
		p.failOnce = false
		return nil, errors.New("temporary ssm failure")
	}
	return p.mockLister.GetStringList(ctx, name)
}

func fixedPick(t *testing.T, idx int) {
	t.Helper()
	orig := pick
	pick = func(int) int { return idx }
	t.Cleanup(func() { pick = orig })
}

func fixedUUID(t *testing.T, id string) {
	t.Helper()
	orig := newUUID
	newUUID = func() string { return id }
	t.Cleanup(func() { newUUID = orig })
}

func requireCode(t *testing.T, err error, code ErrorCode, reason string) {
	t.Helper()
	var ucErr *Error
	require.ErrorAs(t, err, &ucErr)
	require.Equal(t, code, ucErr.Code)
	require.Equal(t, reason, ucErr.Reason)
}

func TestNewReplyService_RequiresPrefixWithLister(t *testing.T) {
	_, err := NewReplyService(&mockLister{}, " / ", 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "prefix")

	s, err := NewReplyService(nil, "", 0)
	require.NoError(t, err)
	require.Equal(t, defaultMaxMessage, s.maxMessageLen)
}

func TestReply_BuiltInRepliesWithoutLister(t *testing.T) {
	fixedPick(t, 2)
	fixedUUID(t, "conv-new")
	s, err := NewReplyService(nil, "", 0)
	require.NoError(t, err)

	out, err := s.Reply(context.Background(), ReplyInput{Message: "  hola  "})
	require.NoError(t, err)
	require.Equal(t, domain.CannedReplies[2], out.Reply)
	require.Equal(t, "conv-new", out.ConversationID)
}

func TestReply_EchoesConversationID(t *testing.T) {
	s, err := NewReplyService(nil, "", 0)
	require.NoError(t, err)

	out, err := s.Reply(context.Background(), ReplyInput{Message: "hola", ConversationID: " conv-1 "})
	require.NoError(t, err)
	require.Equal(t, "conv-1", out.ConversationID)
	require.Contains(t, domain.CannedReplies, out.Reply)
}

func TestReply_ValidatesMessage(t *testing.T) {
	s, err := NewReplyService(nil, "", 10)
	require.NoError(t, err)

	_, err = s.Reply(context.Background(), ReplyInput{Message: " \n "})
	requireCode(t, err, CodeInvalidMessage, reasonEmptyMessage)

	_, err = s.Reply(context.Background(), ReplyInput{Message: strings.Repeat("x", 11)})
	requireCode(t, err, CodeInvalidMessage, reasonMessageTooLong)
}

func TestReply_LoadsRepliesOnceFromParamStore(t *testing.T) {
	fixedPick(t, 1)
	lister := &mockLister{vals: map[string][]string{"/segurab/replies": {"uno", "dos"}}}
	s, err := NewReplyService(lister, "/segurab/", 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		out, err := s.Reply(context.Background(), ReplyInput{Message: "hola"})
		require.NoError(t, err)
		require.Equal(t, "dos", out.Reply)
	}
	require.Equal(t, 1, lister.calls)
}

func TestReply_ParamStoreFailureIsInternal(t *testing.T) {
	s, err := NewReplyService(&mockLister{err: errors.New("ssm down")}, "/segurab", 0)
	require.NoError(t, err)

	_, err = s.Reply(context.Background(), ReplyInput{Message: "hola"})
	requireCode(t, err, CodeRepliesUnavailable, reasonLoadReplies)
	require.ErrorContains(t, err, "ssm down")
}

func TestReply_EmptyReplySetIsInternal(t *testing.T) {
	lister := &mockLister{vals: map[string][]string{"/segurab/replies": {}}}
	s, err := NewReplyService(lister, "/segurab", 0)
	require.NoError(t, err)

	_, err = s.Reply(context.Background(), ReplyInput{Message: "hola"})
	requireCode(t, err, CodeRepliesUnavailable, reasonLoadReplies)
}

func TestReply_RetriesLoadAfterTransientFailure(t *testing.T) {
	lister := &transientLister{
		mockLister: &mockLister{vals: map[string][]string{"/segurab/replies": {"uno"}}},
		failOnce:   true,
	}
	s, err := NewReplyService(lister, "/segurab", 0)
	require.NoError(t, err)

	_, err = s.Reply(context.Background(), ReplyInput{Message: "hola"})
	require.Error(t, err)

	out, err := s.Reply(context.Background(), ReplyInput{Message: "hola"})
	require.NoError(t, err)
	require.Equal(t, "uno", out.Reply)
}

func TestError_Formatting(t *testing.T) {
	invalid := invalidMessage(reasonEmptyMessage)
	require.Equal(t, "reply: INVALID_MESSAGE (empty_message)", invalid.Error())
	require.False(t, invalid.Retryable())

	inner := errors.New("boom")
	err := repliesUnavailable(inner)
	require.Equal(t, "reply: REPLIES_UNAVAILABLE (ssm_load_error): boom", err.Error())
	require.ErrorIs(t, err, inner)
	require.True(t, err.Retryable())

	var nilErr *Error
	require.Empty(t, nilErr.Error())
	require.NoError(t, nilErr.Unwrap())
	require.False(t, nilErr.Retryable())
}
