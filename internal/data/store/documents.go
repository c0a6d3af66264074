package store

import (
	"context"
	"encoding/json"

	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/data/redisStore"
	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/pkg/logger_i"
)

// DocumentStore keeps upload records in the document DB: doc:<id> holds the
// record, user_docs:<userId> is the per-owner index set.
type DocumentStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisDocumentStore(ctx context.Context) *DocumentStore {
	rs := redisStore.GetRedisStore(ctx, config.RedisDocumentStore)
	if rs == nil {
		return nil
	}
	return &DocumentStore{
		store:  rs,
		logger: logger_i.NewLogger("DocumentStore"),
	}
}

func docKey(id string) string          { return "doc:" + id }
func userDocsKey(userID string) string { return "user_docs:" + userID }

func (s *DocumentStore) SaveDocument(ctx context.Context, doc domain.Document) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "documentId", doc.ID)

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, docKey(doc.ID), data, 0); err != nil {
		return err
	}
	if err := s.store.SetAdd(ctx, userDocsKey(doc.UserID), doc.ID); err != nil {
		return err
	}
	log.Debug("document saved")
	return nil
}

func (s *DocumentStore) GetDocument(ctx context.Context, id string) (domain.Document, error) {
	val, err := s.store.Get(ctx, docKey(id))
	if s.store.IsNil(err) {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	if err != nil {
		return domain.Document{}, err
	}

	var doc domain.Document
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

func (s *DocumentStore) ListByUser(ctx context.Context, userID string) ([]domain.Document, error) {
	ids, err := s.store.SetMembers(ctx, userDocsKey(userID))
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := s.GetDocument(ctx, id)
		if err != nil {
			// index can momentarily outlive the record, skip strays
			s.logger.Warn("stray document id in index", "documentId", id)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *DocumentStore) DeleteDocument(ctx context.Context, doc domain.Document) error {
	if err := s.store.Del(ctx, docKey(doc.ID)); err != nil {
		return err
	}
	return s.store.SetRemove(ctx, userDocsKey(doc.UserID), doc.ID)
}

func TestDocumentStore(store *redisStore.Store) *DocumentStore {
	return &DocumentStore{
		store:  store,
		logger: logger_i.NewLogger("test document store"),
	}
}
