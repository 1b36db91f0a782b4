package db

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	bolt "go.etcd.io/bbolt"
)

const bucketHistory = "History"

// BoltStorage implements storage interface for BoltDB
type BoltStorage struct {
	db *bolt.DB
}

func userKey(user UserID) []byte {
	return []byte(strconv.FormatInt(int64(user), 10))
}

// SaveLookup adds lookup to user bucket and drops the oldest ones over MaxHistory
func (b *BoltStorage) SaveLookup(item Lookup) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketHistory))
		userBucket, err := bucket.CreateBucketIfNotExists(userKey(item.User))
		if err != nil {
			return fmt.Errorf("failed to create user bucket: %w", err)
		}
		seq, err := userBucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get sequence: %w", err)
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		jdata, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal lookup: %w", err)
		}
		if err := userBucket.Put(key, jdata); err != nil {
			return fmt.Errorf("failed to put lookup: %w", err)
		}

		var keys [][]byte
		c := userBucket.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for i := 0; i < len(keys)-MaxHistory; i++ {
			if err := userBucket.Delete(keys[i]); err != nil {
				return fmt.Errorf("failed to delete old lookup: %w", err)
			}
		}
		return nil
	})
}

// GetHistory returns lookups from user bucket, newest first
func (b *BoltStorage) GetHistory(user UserID, limit int) ([]Lookup, error) {
	res := []Lookup{}
	if err := b.db.View(func(tx *bolt.Tx) error {
		userBucket := tx.Bucket([]byte(bucketHistory)).Bucket(userKey(user))
		if userBucket == nil {
			return nil
		}
		c := userBucket.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(res) >= limit {
				break
			}
			var item Lookup
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("failed to unmarshal lookup: %w", err)
			}
			res = append(res, item)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// ClearHistory removes user bucket
func (b *BoltStorage) ClearHistory(user UserID) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket([]byte(bucketHistory)).DeleteBucket(userKey(user))
		if err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return fmt.Errorf("failed to delete user bucket: %w", err)
		}
		return nil
	})
}

// NewBoltStorage creates BoltStorage instance and initialize buckets
func NewBoltStorage(db *bolt.DB) (*BoltStorage, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketHistory))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &BoltStorage{db: db}, nil
}
