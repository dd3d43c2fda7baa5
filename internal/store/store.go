// Package store persists users, balances, and game history. Two
// implementations exist: an in-memory store for tests and ephemeral runs,
// and a SQLite store for durable deployments.
package store

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("store: user not found")

	// ErrUsernameTaken is returned by CreateUser on a duplicate username.
	// Usernames are case-insensitive.
	ErrUsernameTaken = errors.New("store: username already taken")

	// ErrInsufficientFunds is returned when an adjustment would take a
	// balance below zero. The balance is left unchanged.
	ErrInsufficientFunds = errors.New("store: insufficient funds")
)

// User is a registered player. Password holds the hex sha256 digest of the
// password, never the plaintext.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Balance  int    `json:"balance"`
}

// HistoryRecord is one settled wager in the append-only history ledger.
type HistoryRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	GameType  string    `json:"gameType"`
	Bet       int       `json:"bet"`
	Outcome   string    `json:"outcome"`
	WinAmount int       `json:"winAmount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the persistence interface the rest of the system depends on.
type Store interface {
	// GetUser fetches a user by id.
	GetUser(id int64) (*User, error)

	// GetUserByUsername fetches a user by username, case-insensitively.
	GetUserByUsername(username string) (*User, error)

	// CreateUser registers a new user with the given starting balance.
	CreateUser(username, passwordHash string, balance int) (*User, error)

	// AdjustBalance applies delta atomically and returns the new balance.
	// An adjustment that would go negative fails with ErrInsufficientFunds
	// and changes nothing.
	AdjustBalance(userID int64, delta int) (int, error)

	// AddHistory appends a settled wager to the ledger and fills in the
	// record's ID and CreatedAt.
	AddHistory(rec *HistoryRecord) error

	// GetHistory returns the user's most recent records, newest first.
	// A limit of 0 means no limit.
	GetHistory(userID int64, limit int) ([]HistoryRecord, error)

	// Close releases the store's resources.
	Close() error
}
