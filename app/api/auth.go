package api

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rbhz/ydcv/app/db"
	"github.com/rs/zerolog/log"
)

const (
	tokenTTL   = 24 * time.Hour
	maxAuthAge = 24 * time.Hour
)

// JWTClaims custom claims with user id
type JWTClaims struct {
	User *int64 `json:"user"`
	jwt.StandardClaims
}

// AuthResponse response for authentication
type AuthResponse struct {
	Token string `json:"token"`
}

// authService implements methods for API authentication
type authService struct {
	telegramToken string
	jwtSecret     []byte
	now           func() time.Time
}

// createToken creates JWT token
func (s *authService) createToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		User: &userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: s.now().UTC().Add(tokenTTL).Unix(),
			NotBefore: s.now().UTC().Unix(),
		},
	})
	tokenStr, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tokenStr, nil
}

// telegramHash calculates login widget hash for query params
// docs: https://core.telegram.org/widgets/login#checking-authorization
func telegramHash(botToken string, query url.Values) string {
	keys := make([]string, 0, len(query))
	for key := range query {
		if key != "hash" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s=%s", key, query.Get(key)))
	}
	secretKey := sha256.Sum256([]byte(botToken))
	h := hmac.New(sha256.New, secretKey[:])
	h.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(h.Sum(nil))
}

func unauthorized(w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
	if _, err := w.Write([]byte("unauthorized")); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// TelegramRedirectHandler handles authentication after Telegram redirect
func (s *authService) TelegramRedirectHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	expected := telegramHash(s.telegramToken, query)
	if !hmac.Equal([]byte(expected), []byte(query.Get("hash"))) {
		unauthorized(w)
		return
	}
	authDate, err := strconv.ParseInt(query.Get("auth_date"), 10, 64)
	if err != nil || s.now().Sub(time.Unix(authDate, 0)) > maxAuthAge {
		unauthorized(w)
		return
	}
	userID, err := strconv.ParseInt(query.Get("id"), 10, 64)
	if err != nil {
		log.Error().Err(err).Str("userID", query.Get("id")).Msg("failed to parse user id")
		w.WriteHeader(http.StatusBadRequest)
		if _, err := w.Write([]byte("invalid ID")); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return
	}

	// create JWT token
	token, err := s.createToken(userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create token")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	jdata, jerr := json.Marshal(AuthResponse{Token: token})
	if jerr != nil {
		log.Error().Err(jerr).Msg("failed to marshal json")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(jdata); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// UserCtx checks authorization token and adds user to context
func (s *authService) UserCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestToken := r.Header.Get("Authorization")
		if !strings.HasPrefix(requestToken, "Bearer ") {
			unauthorized(w)
			return
		}
		requestToken = strings.TrimPrefix(requestToken, "Bearer ")
		token, err := jwt.ParseWithClaims(requestToken, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return s.jwtSecret, nil
		})
		if err != nil {
			unauthorized(w)
			return
		}

		claims, ok := token.Claims.(*JWTClaims)
		if !ok || claims.User == nil {
			unauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserIDKey, db.UserID(*claims.User))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newAuthService(telegramToken string, jwtSecret string) *authService {
	return &authService{telegramToken: telegramToken, jwtSecret: []byte(jwtSecret), now: time.Now}
}
