package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/pkg/domain"
)

const (
	sessionKey = "session"
	chatPrefix = "chat:"
	prefPrefix = "pref:"
)

// RedisStore keeps client state in Redis, for setups where several terminals
// on one host share a login and chat log.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed store.
func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func redisCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 3*time.Second)
}

// SaveSession writes the session as a JSON blob.
func (s *RedisStore) SaveSession(sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ctx, cancel := redisCtx()
	defer cancel()
	return s.client.Set(ctx, sessionKey, data, 0).Err()
}

// GetSession reads back the session blob.
func (s *RedisStore) GetSession() (domain.Session, bool, error) {
	ctx, cancel := redisCtx()
	defer cancel()
	val, err := s.client.Get(ctx, sessionKey).Result()
	if err == redis.Nil {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, err
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return domain.Session{}, false, err
	}
	return sess, true, nil
}

// SaveUserID updates only the identity id on the stored session.
func (s *RedisStore) SaveUserID(id string) error {
	sess, _, err := s.GetSession()
	if err != nil {
		return err
	}
	sess.UserID = id
	return s.SaveSession(sess)
}

// ClearToken blanks the token, keeping identity and everything else.
func (s *RedisStore) ClearToken() error {
	sess, ok, err := s.GetSession()
	if err != nil || !ok {
		return err
	}
	sess.Token = ""
	return s.SaveSession(sess)
}

// AppendMessage pushes a message onto the document's list.
func (s *RedisStore) AppendMessage(msg domain.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := redisCtx()
	defer cancel()
	return s.client.RPush(ctx, chatPrefix+msg.DocumentID, data).Err()
}

// ListMessages returns the document's list in push order.
func (s *RedisStore) ListMessages(documentID string) ([]domain.ChatMessage, error) {
	ctx, cancel := redisCtx()
	defer cancel()
	vals, err := s.client.LRange(ctx, chatPrefix+documentID, 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	res := make([]domain.ChatMessage, 0, len(vals))
	for _, val := range vals {
		var msg domain.ChatMessage
		if err := json.Unmarshal([]byte(val), &msg); err != nil {
			return nil, err
		}
		res = append(res, msg)
	}
	return res, nil
}

// DeleteMessages removes the document's list.
func (s *RedisStore) DeleteMessages(documentID string) error {
	ctx, cancel := redisCtx()
	defer cancel()
	if err := s.client.Del(ctx, chatPrefix+documentID).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}

// SetPreference stores a preference under its own key.
func (s *RedisStore) SetPreference(key, value string) error {
	ctx, cancel := redisCtx()
	defer cancel()
	return s.client.Set(ctx, prefPrefix+key, value, 0).Err()
}

// GetPreference reads a preference.
func (s *RedisStore) GetPreference(key string) (string, bool, error) {
	ctx, cancel := redisCtx()
	defer cancel()
	val, err := s.client.Get(ctx, prefPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}
