package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"webintel/webintel/types"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

const (
	companiesKey       = "webintel:companies"
	questionsKeyPrefix = "webintel:questions:"
)

// RedisStore keeps companies in one hash and each URL's answers in its own hash.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, eris.Wrap(err, "redis ping failed")
	}
	return &RedisStore{rdb: rdb}, nil
}

func questionsKey(url string) string { return questionsKeyPrefix + url }

func (s *RedisStore) GetCompany(ctx context.Context, url string) (*types.BusinessDetails, error) {
	var details types.BusinessDetails
	ok, err := s.hget(ctx, companiesKey, url, &details)
	if !ok {
		return nil, err
	}
	return &details, nil
}

func (s *RedisStore) SaveCompany(ctx context.Context, url string, details *types.BusinessDetails) error {
	return s.hset(ctx, companiesKey, url, details)
}

func (s *RedisStore) GetAnswer(ctx context.Context, url, question string) (*types.QuestionAnswer, error) {
	var ans types.QuestionAnswer
	ok, err := s.hget(ctx, questionsKey(url), question, &ans)
	if !ok {
		return nil, err
	}
	return &ans, nil
}

func (s *RedisStore) SaveAnswer(ctx context.Context, url, question string, answer types.QuestionAnswer) error {
	return s.hset(ctx, questionsKey(url), question, answer)
}

func (s *RedisStore) Exists(ctx context.Context, url string) (bool, error) {
	ok, err := s.rdb.HExists(ctx, companiesKey, url).Result()
	return ok, eris.Wrap(err, "redis hexists")
}

func (s *RedisStore) Close() error { return s.rdb.Close() }

func (s *RedisStore) hget(ctx context.Context, key, field string, out any) (bool, error) {
	raw, err := s.rdb.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrapf(err, "redis hget %s", key)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, eris.Wrapf(err, "decode %s/%s", key, field)
	}
	return true, nil
}

func (s *RedisStore) hset(ctx context.Context, key, field string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return eris.Wrap(err, "encode value")
	}
	return eris.Wrapf(s.rdb.HSet(ctx, key, field, data).Err(), "redis hset %s", key)
}
