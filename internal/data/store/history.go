package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/data/redisStore"
	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/pkg/logger_i"
)

// HistoryStore keeps web chat conversations in the history DB as a list per
// user, oldest turn first.
type HistoryStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisHistoryStore(ctx context.Context) *HistoryStore {
	rs := redisStore.GetRedisStore(ctx, config.RedisHistoryStore)
	if rs == nil {
		return nil
	}
	return &HistoryStore{
		store:  rs,
		logger: logger_i.NewLogger("HistoryStore"),
	}
}

func historyKey(userID string) string { return "web_history:" + userID }

func docHistoryKey(userID, documentID string) string {
	return "doc_history:" + userID + ":" + documentID
}

func (s *HistoryStore) appendTurn(ctx context.Context, key, question, answer string) error {
	turn := domain.ChatTurn{
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now(),
	}
	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}
	return s.store.ListPush(ctx, key, data)
}

func (s *HistoryStore) recentTurns(ctx context.Context, key string, depth int) ([]domain.ChatTurn, error) {
	raw, err := s.store.ListGetRecent(ctx, key, depth)
	if err != nil {
		return nil, err
	}

	turns := make([]domain.ChatTurn, 0, len(raw))
	for _, r := range raw {
		var turn domain.ChatTurn
		if err := json.Unmarshal([]byte(r), &turn); err != nil {
			s.logger.Warn("dropping unreadable history entry", "error", err)
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (s *HistoryStore) AppendTurn(ctx context.Context, userID string, question, answer string) error {
	return s.appendTurn(ctx, historyKey(userID), question, answer)
}

// RecentTurns returns up to the last depth turns, oldest first.
func (s *HistoryStore) RecentTurns(ctx context.Context, userID string, depth int) ([]domain.ChatTurn, error) {
	return s.recentTurns(ctx, historyKey(userID), depth)
}

func (s *HistoryStore) Clear(ctx context.Context, userID string) error {
	return s.store.Del(ctx, historyKey(userID))
}

// Document conversations are recorded per (user, document) so clients can
// replay them, even though document answers never read them back.
func (s *HistoryStore) AppendDocTurn(ctx context.Context, userID, documentID, question, answer string) error {
	return s.appendTurn(ctx, docHistoryKey(userID, documentID), question, answer)
}

func (s *HistoryStore) DocTurns(ctx context.Context, userID, documentID string, depth int) ([]domain.ChatTurn, error) {
	return s.recentTurns(ctx, docHistoryKey(userID, documentID), depth)
}

func (s *HistoryStore) ClearDoc(ctx context.Context, userID, documentID string) error {
	return s.store.Del(ctx, docHistoryKey(userID, documentID))
}

func TestHistoryStore(store *redisStore.Store) *HistoryStore {
	return &HistoryStore{
		store:  store,
		logger: logger_i.NewLogger("test history store"),
	}
}
