package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keyPrefix         = "session:"
	deliveredSuffix   = ":delivered"
	createAttemptsMax = 3
)

// RedisStore keeps each session as two keys: the record itself
// (session:<token>, a small JSON document) and its delivered set
// (session:<token>:delivered). SADD gives the per-token append atomicity the
// delivered set needs; a Lua guard ties the append to the record's existence
// so a concurrently deleted session is never resurrected as an orphan set.
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedisStore(client *redis.Client, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger.With().Str("component", "session_redis").Logger(),
	}
}

var _ Store = (*RedisStore)(nil)

func recordKey(token string) string {
	return keyPrefix + token
}

func deliveredKey(token string) string {
	return keyPrefix + token + deliveredSuffix
}

func (s *RedisStore) Create(ctx context.Context) (string, error) {
	for attempt := 0; attempt < createAttemptsMax; attempt++ {
		token := uuid.NewString()
		record := Session{Token: token, CreatedAt: time.Now().UTC()}
		data, err := json.Marshal(record)
		if err != nil {
			return "", fmt.Errorf("marshal session: %w", err)
		}

		ok, err := s.client.SetNX(ctx, recordKey(token), data, 0).Result()
		if err != nil {
			return "", fmt.Errorf("persist session: %w", err)
		}
		if ok {
			return token, nil
		}
		// uuid collision; practically unreachable but cheap to retry
		s.logger.Warn().Str("token", token).Msg("token collision on create")
	}
	return "", fmt.Errorf("create session: could not obtain unique token")
}

func (s *RedisStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, recordKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("check session %s: %w", token, err)
	}
	return n > 0, nil
}

func (s *RedisStore) Delivered(ctx context.Context, token string) ([]string, error) {
	ok, err := s.Exists(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	ids, err := s.client.SMembers(ctx, deliveredKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("read delivered set for %s: %w", token, err)
	}
	return ids, nil
}

// appendScript unions ARGV into the delivered set only while the session
// record still exists, so append-vs-delete races settle as plain NotFound.
var appendScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -1
end
return redis.call("SADD", KEYS[2], unpack(ARGV))
`)

func (s *RedisStore) AppendDelivered(ctx context.Context, token string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	argv := make([]interface{}, len(ids))
	for i, id := range ids {
		argv[i] = id
	}

	res, err := appendScript.Run(ctx, s.client,
		[]string{recordKey(token), deliveredKey(token)}, argv...).Int()
	if err != nil {
		return fmt.Errorf("append delivered for %s: %w", token, err)
	}
	if res < 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	tokens := make([]string, 0)

	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasSuffix(key, deliveredSuffix) {
			continue
		}

		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			// key vanished mid-scan or holds a non-string value
			s.logger.Warn().Err(err).Str("key", key).Msg("skip unreadable session record")
			continue
		}
		var record Session
		if err := json.Unmarshal(data, &record); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("skip corrupted session record")
			continue
		}
		tokens = append(tokens, record.Token)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan sessions: %w", err)
	}
	return tokens, nil
}

// deleteScript removes the record and its delivered set in one atomic step,
// reporting whether the record existed. A session is never left half-deleted.
var deleteScript = redis.NewScript(`
local removed = redis.call("DEL", KEYS[1])
redis.call("DEL", KEYS[2])
return removed
`)

func (s *RedisStore) Delete(ctx context.Context, token string) (bool, error) {
	removed, err := deleteScript.Run(ctx, s.client,
		[]string{recordKey(token), deliveredKey(token)}).Int()
	if err != nil {
		return false, fmt.Errorf("delete session %s: %w", token, err)
	}
	return removed > 0, nil
}
