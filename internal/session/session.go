package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	bucketName = "session"
	userKey    = "user"
)

// ErrNotLoggedIn is returned when no identity is stored.
var ErrNotLoggedIn = errors.New("no user logged in")

// User is the authenticated employee identity, stored the same way the
// web client kept it in local storage.
type User struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}

// Session is a small bbolt-backed key-value store holding the current
// user identity between invocations. The services never read it
// directly; the identity is read once at wiring time and injected.
type Session struct {
	db *bbolt.DB
}

// Open opens (or creates) the session database at path.
func Open(path string) (*Session, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating session bucket: %w", err)
	}

	return &Session{db: db}, nil
}

// SaveUser stores the authenticated user, replacing any previous one.
func (s *Session) SaveUser(u User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshaling user: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(userKey), data)
	})
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// CurrentUser returns the stored identity, or ErrNotLoggedIn when
// nobody is logged in.
func (s *Session) CurrentUser() (User, error) {
	var u User
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(userKey))
		if data == nil {
			return ErrNotLoggedIn
		}
		return json.Unmarshal(data, &u)
	})
	if err != nil {
		return User{}, fmt.Errorf("reading user: %w", err)
	}
	return u, nil
}

// Clear removes the stored identity.
func (s *Session) Clear() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(userKey))
	})
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Session) Close() error {
	return s.db.Close()
}
