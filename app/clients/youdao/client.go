package youdao

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const apiURL = "https://openapi.youdao.com/api"

// LanguageAuto lets Youdao detect the language
const LanguageAuto = "auto"

// ErrEmptyQuery is returned for blank queries
var ErrEmptyQuery = errors.New("empty query")

// Client implements integration with Youdao OpenAPI
// docs: https://ai.youdao.com/DOCSIRMA/html/trans/api/wbfy/index.html
type Client struct {
	appKey    string
	appSecret string
	from      string
	to        string
	client    *http.Client
	now       func() time.Time
	salt      func() string
}

// Lookup queries dictionary and returns raw JSON reply
func (c Client) Lookup(ctx context.Context, q string) (string, error) {
	if q == "" {
		return "", ErrEmptyQuery
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	salt := c.salt()
	curtime := strconv.FormatInt(c.now().Unix(), 10)
	query := req.URL.Query()
	query.Add("q", q)
	query.Add("from", c.from)
	query.Add("to", c.to)
	query.Add("appKey", c.appKey)
	query.Add("salt", salt)
	query.Add("sign", c.sign(q, salt, curtime))
	query.Add("signType", "v3")
	query.Add("curtime", curtime)
	req.URL.RawQuery = query.Encode()

	response, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		log.Error().
			Str("status", response.Status).
			Str("body", string(body)).
			Msg("unsuccessful response from youdao API")
		return "", fmt.Errorf("unsuccessful API response %v", response.StatusCode)
	}
	return string(body), nil
}

// sign builds v3 request signature
func (c Client) sign(q, salt, curtime string) string {
	h := sha256.Sum256([]byte(c.appKey + signInput(q) + salt + curtime + c.appSecret))
	return hex.EncodeToString(h[:])
}

// signInput shortens long queries to first 10 runes + length + last 10 runes
func signInput(q string) string {
	runes := []rune(q)
	if len(runes) <= 20 {
		return q
	}
	return string(runes[:10]) + strconv.Itoa(len(runes)) + string(runes[len(runes)-10:])
}

// NewClient creates client with default HTTP client and automatic language detection
func NewClient(appKey, appSecret string) Client {
	return NewClientWithLanguages(appKey, appSecret, LanguageAuto, LanguageAuto)
}

// NewClientWithLanguages creates client for the given language pair
func NewClientWithLanguages(appKey, appSecret, from, to string) Client {
	return Client{
		appKey:    appKey,
		appSecret: appSecret,
		from:      from,
		to:        to,
		client:    http.DefaultClient,
		now:       time.Now,
		salt:      func() string { return uuid.New().String() },
	}
}
