package store

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-memory Store. Safe for concurrent use.
type Memory struct {
	mu         sync.Mutex
	users      map[int64]*User
	byUsername map[string]int64
	history    map[int64][]HistoryRecord
	nextUserID int64
	nextHistID int64
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[int64]*User),
		byUsername: make(map[string]int64),
		history:    make(map[int64][]HistoryRecord),
		nextUserID: 1,
		nextHistID: 1,
	}
}

func (m *Memory) GetUser(id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *Memory) GetUserByUsername(username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byUsername[strings.ToLower(username)]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *m.users[id]
	return &copied, nil
}

func (m *Memory) CreateUser(username, passwordHash string, balance int) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(username)
	if _, ok := m.byUsername[key]; ok {
		return nil, ErrUsernameTaken
	}

	u := &User{
		ID:       m.nextUserID,
		Username: username,
		Password: passwordHash,
		Balance:  balance,
	}
	m.nextUserID++
	m.users[u.ID] = u
	m.byUsername[key] = u.ID

	copied := *u
	return &copied, nil
}

func (m *Memory) AdjustBalance(userID int64, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return 0, ErrUserNotFound
	}
	if u.Balance+delta < 0 {
		return 0, ErrInsufficientFunds
	}
	u.Balance += delta
	return u.Balance, nil
}

func (m *Memory) AddHistory(rec *HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[rec.UserID]; !ok {
		return ErrUserNotFound
	}
	rec.ID = m.nextHistID
	m.nextHistID++
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	m.history[rec.UserID] = append(m.history[rec.UserID], *rec)
	return nil
}

func (m *Memory) GetHistory(userID int64, limit int) ([]HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := m.history[userID]

	out := make([]HistoryRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
