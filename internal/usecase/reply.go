package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"segurab-assistant/internal/domain"
)

const defaultMaxMessage = 500

// ReplyLister loads the configured reply set.
type ReplyLister interface {
	GetStringList(ctx context.Context, name string) ([]string, error)
}

// ReplyService answers chat messages on behalf of the assistant until the
// trained agent replaces it.
type ReplyService struct {
	params        ReplyLister
	paramPrefix   string
	maxMessageLen int

	cacheMu     sync.RWMutex
	cacheLoaded bool
	replies     []string
}

type ReplyInput struct {
	Message        string
	ConversationID string
}

type ReplyOutput struct {
	Reply          string
	ConversationID string
}

// NewReplyService builds a service. With a nil lister the built-in canned
// replies are used and paramPrefix is ignored.
func NewReplyService(p ReplyLister, paramPrefix string, maxMessageLen int) (*ReplyService, error) {
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if p != nil && paramPrefix == "" {
		return nil, errors.New("usecase: parameter prefix must not be empty")
	}
	if maxMessageLen <= 0 {
		maxMessageLen = defaultMaxMessage
	}
	return &ReplyService{
		params:        p,
		paramPrefix:   paramPrefix,
		maxMessageLen: maxMessageLen,
	}, nil
}

func (s *ReplyService) Reply(ctx context.Context, in ReplyInput) (ReplyOutput, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return ReplyOutput{}, invalidMessage(reasonEmptyMessage)
	}
	if len(message) > s.maxMessageLen {
		return ReplyOutput{}, invalidMessage(reasonMessageTooLong)
	}

	replies, err := s.ensureReplies(ctx)
	if err != nil {
		return ReplyOutput{}, repliesUnavailable(err)
	}

	convID := strings.TrimSpace(in.ConversationID)
	if convID == "" {
		convID = newUUID()
	}
	return ReplyOutput{
		Reply:          replies[pick(len(replies))],
		ConversationID: convID,
	}, nil
}

func (s *ReplyService) ensureReplies(ctx context.Context) ([]string, error) {
	s.cacheMu.RLock()
	if s.cacheLoaded {
		defer s.cacheMu.RUnlock()
		return s.replies, nil
	}
	s.cacheMu.RUnlock()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheLoaded {
		return s.replies, nil
	}

	replies, err := s.loadReplies(ctx)
	if err != nil {
		return nil, err
	}
	s.replies = replies
	s.cacheLoaded = true
	return replies, nil
}

func (s *ReplyService) loadReplies(ctx context.Context) ([]string, error) {
	if s.params == nil {
		return domain.CannedReplies, nil
	}
	replies, err := s.params.GetStringList(ctx, s.paramPrefix+"/replies")
	if err != nil {
		return nil, fmt.Errorf("usecase: load replies: %w", err)
	}
	if len(replies) == 0 {
		return nil, errors.New("usecase: reply set is empty")
	}
	return replies, nil
}

var newUUID = func() string {
	return uuid.NewString()
}

var pick = func(n int) int {
	return rand.IntN(n)
}
