package store

import (
	"context"
	"encoding/json"

	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/data/redisStore"
	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/pkg/logger_i"
)

// UserStore keeps accounts in the user DB: user:<id> holds the record,
// user_email:<email> is the lookup index.
type UserStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisUserStore(ctx context.Context) *UserStore {
	rs := redisStore.GetRedisStore(ctx, config.RedisUserStore)
	if rs == nil {
		return nil
	}
	return &UserStore{
		store:  rs,
		logger: logger_i.NewLogger("UserStore"),
	}
}

func userKey(id string) string     { return "user:" + id }
func emailKey(email string) string { return "user_email:" + email }

// storedUser re-adds the password hash that domain.User hides from JSON
// responses; the persisted record needs it.
type storedUser struct {
	domain.User
	PasswordHash string `json:"password_hash"`
}

func (s *UserStore) CreateUser(ctx context.Context, user domain.User) error {
	exists, err := s.store.Exists(ctx, emailKey(user.Email))
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrUserExists
	}

	data, err := json.Marshal(storedUser{User: user, PasswordHash: user.PasswordHash})
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, userKey(user.ID), data, 0); err != nil {
		return err
	}
	if err := s.store.Set(ctx, emailKey(user.Email), user.ID, 0); err != nil {
		return err
	}
	s.logger.Debug("user created", "userId", user.ID)
	return nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	id, err := s.store.Get(ctx, emailKey(email))
	if s.store.IsNil(err) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return s.GetUserByID(ctx, id)
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	val, err := s.store.Get(ctx, userKey(id))
	if s.store.IsNil(err) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	var stored storedUser
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		return domain.User{}, err
	}
	user := stored.User
	user.PasswordHash = stored.PasswordHash
	return user, nil
}

func TestUserStore(store *redisStore.Store) *UserStore {
	return &UserStore{
		store:  store,
		logger: logger_i.NewLogger("test user store"),
	}
}
