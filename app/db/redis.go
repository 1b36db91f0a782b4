package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const prefixHistory = "history:"

type RedisStorage struct {
	db *redis.Client
}

func historyKey(user UserID) string {
	return prefixHistory + strconv.FormatInt(int64(user), 10)
}

// SaveLookup pushes lookup to user history list
func (s *RedisStorage) SaveLookup(item Lookup) error {
	key := historyKey(item.User)
	jdata, jerr := json.Marshal(item)
	if jerr != nil {
		return fmt.Errorf("marshal lookup: %w", jerr)
	}
	if err := s.db.LPush(context.Background(), key, string(jdata)).Err(); err != nil {
		return fmt.Errorf("saving lookup: %w", err)
	}
	if err := s.db.LTrim(context.Background(), key, 0, MaxHistory-1).Err(); err != nil {
		return fmt.Errorf("trimming history: %w", err)
	}
	return nil
}

// GetHistory from redis
func (s *RedisStorage) GetHistory(user UserID, limit int) ([]Lookup, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	data, err := s.db.LRange(context.Background(), historyKey(user), 0, stop).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Lookup{}, nil
		}
		return nil, fmt.Errorf("fetching history: %w", err)
	}
	history := make([]Lookup, 0, len(data))
	for _, jdata := range data {
		var item Lookup
		if jerr := json.Unmarshal([]byte(jdata), &item); jerr != nil {
			return nil, fmt.Errorf("unmarshal lookup: %w", jerr)
		}
		history = append(history, item)
	}
	return history, nil
}

// ClearHistory from redis
func (s *RedisStorage) ClearHistory(user UserID) error {
	if err := s.db.Del(context.Background(), historyKey(user)).Err(); err != nil {
		return fmt.Errorf("deleting history: %w", err)
	}
	return nil
}

// NewRedisStorage creates RedisStorage with given url
func NewRedisStorage(url string) (*RedisStorage, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStorage{db: rdb}, nil
}
