package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/rbhz/ydcv/app/db"
	"github.com/rbhz/ydcv/app/lookup"
)

const (
	testTGToken   = "123123213:1231231312"
	testJWTSecret = "tokentokentokentoken"
	testUserID    = 1
)

const (
	goodResponse  = `{"errorCode":0,"query":"good","translation":["好"],"basic":{"explains":["adj. 好的"],"phonetic":"gʊd"}}`
	xyzzyResponse = `{"errorCode":"0","query":"xyzzy","translation":null,"basic":null,"web":null}`
)

// emptyHandler is a dummy handler for testing.
type emptyHandler struct{}

func (h *emptyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {}

// ErrorStorage is a dummy storage for testing storage error handling.
type ErrorStorage struct {
	*db.InMemoryStorage
}

func (d ErrorStorage) GetHistory(db.UserID, int) ([]db.Lookup, error) {
	return nil, errors.New("test")
}

func (d ErrorStorage) ClearHistory(db.UserID) error {
	return errors.New("test")
}

// testDictionary returns replies by word
type testDictionary map[string]string

func (d testDictionary) Lookup(ctx context.Context, word string) (string, error) {
	raw, ok := d[word]
	if !ok {
		return "", errors.New("unknown word")
	}
	return raw, nil
}

// getTestServer returns a test server.
func getTestServer(storage db.Storage) (*httptest.Server, func()) {
	if storage == nil {
		storage = db.NewInMemoryStorage()
	}
	service := lookup.NewService(testDictionary{
		"good":    goodResponse,
		"xyzzy":   xyzzyResponse,
		"你好":      `{"errorCode":"0","query":"你好","translation":["hello"]}`,
		"invalid": "Invalid JSON",
	}, storage)

	server := NewServer(storage, service, testTGToken, testJWTSecret)
	srv := httptest.NewServer(server.router)
	return srv, srv.Close
}

// getTestJWT returns a test JWT signed with testJWTSecret
func getTestJWT() string {
	token, _ := newAuthService(testTGToken, testJWTSecret).createToken(testUserID)
	return "Bearer " + token
}
