package db

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// UserID is a type for users ID
type UserID int64

// LocalUser is used for lookups made from the command line
const LocalUser UserID = 0

// MaxHistory limits how many lookups are kept per user
const MaxHistory = 100

// GenerateID generates new uuid and encodes it to base64
func GenerateID() string {
	id := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// Storage defines method provided by database interfaces
type Storage interface {
	// SaveLookup adds lookup to user history
	SaveLookup(Lookup) error
	// GetHistory returns user lookups starting from the most recent one.
	// Non-positive limit returns the whole history.
	GetHistory(UserID, int) ([]Lookup, error)
	// ClearHistory removes user history
	ClearHistory(UserID) error
}

// Lookup holds data for a single dictionary lookup
type Lookup struct {
	ID      string
	User    UserID
	Query   string
	Found   bool
	Created time.Time
}

// NewLookup creates new lookup
func NewLookup(user UserID, query string, found bool) Lookup {
	return Lookup{
		ID:      GenerateID(),
		User:    user,
		Query:   query,
		Found:   found,
		Created: time.Now().UTC(),
	}
}
