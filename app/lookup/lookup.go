package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/rbhz/ydcv/app/db"
	"github.com/rbhz/ydcv/app/ydresponse"

	"github.com/rs/zerolog/log"
)

// Dictionary fetches raw dictionary replies
type Dictionary interface {
	Lookup(ctx context.Context, word string) (string, error)
}

// Service looks words up and keeps users history
type Service struct {
	dict    Dictionary
	storage db.Storage
}

// LookupRaw returns unparsed dictionary reply
func (s Service) LookupRaw(ctx context.Context, word string) (string, error) {
	raw, err := s.dict.Lookup(ctx, strings.TrimSpace(word))
	if err != nil {
		return "", fmt.Errorf("fetch %q: %w", word, err)
	}
	return raw, nil
}

// Lookup fetches and parses dictionary reply, successful fetches are added to user history
func (s Service) Lookup(ctx context.Context, user db.UserID, word string) (ydresponse.Response, error) {
	raw, err := s.LookupRaw(ctx, word)
	if err != nil {
		return ydresponse.Response{}, err
	}
	resp, err := ydresponse.Parse(raw)
	if err != nil {
		return ydresponse.Response{}, err
	}
	if s.storage != nil {
		if err := s.storage.SaveLookup(db.NewLookup(user, resp.Query, resp.HasResult())); err != nil {
			log.Error().Err(err).Str("word", resp.Query).Int64("user", int64(user)).Msg("failed to save lookup")
		}
	}
	return resp, nil
}

// NewService creates lookup service, storage may be nil to skip history
func NewService(dict Dictionary, storage db.Storage) Service {
	return Service{dict: dict, storage: storage}
}
