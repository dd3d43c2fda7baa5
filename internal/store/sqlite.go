package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite implements Store on a SQLite database file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and runs migrations.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			username_lower TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			balance INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS game_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			game_type TEXT NOT NULL,
			bet INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			win_amount INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_user_id ON game_history(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Balance)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func (s *SQLite) GetUser(id int64) (*User, error) {
	row := s.db.QueryRow(
		"SELECT id, username, password, balance FROM users WHERE id = ?", id)
	return s.scanUser(row)
}

func (s *SQLite) GetUserByUsername(username string) (*User, error) {
	row := s.db.QueryRow(
		"SELECT id, username, password, balance FROM users WHERE username_lower = ?",
		strings.ToLower(username))
	return s.scanUser(row)
}

func (s *SQLite) CreateUser(username, passwordHash string, balance int) (*User, error) {
	res, err := s.db.Exec(
		"INSERT INTO users (username, username_lower, password, balance) VALUES (?, ?, ?, ?)",
		username, strings.ToLower(username), passwordHash, balance)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}
	return &User{ID: id, Username: username, Password: passwordHash, Balance: balance}, nil
}

// AdjustBalance applies delta in a single guarded UPDATE so concurrent
// adjustments can never drive a balance negative.
func (s *SQLite) AdjustBalance(userID int64, delta int) (int, error) {
	res, err := s.db.Exec(
		"UPDATE users SET balance = balance + ? WHERE id = ? AND balance + ? >= 0",
		delta, userID, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to adjust balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check adjustment: %w", err)
	}
	if affected == 0 {
		// Either the user is missing or the guard rejected the delta.
		if _, err := s.GetUser(userID); err != nil {
			return 0, err
		}
		return 0, ErrInsufficientFunds
	}

	var balance int
	if err := s.db.QueryRow("SELECT balance FROM users WHERE id = ?", userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	return balance, nil
}

func (s *SQLite) AddHistory(rec *HistoryRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.Exec(
		"INSERT INTO game_history (user_id, game_type, bet, outcome, win_amount, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.UserID, rec.GameType, rec.Bet, rec.Outcome, rec.WinAmount, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add history: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get history id: %w", err)
	}
	rec.ID = id
	return nil
}

func (s *SQLite) GetHistory(userID int64, limit int) ([]HistoryRecord, error) {
	query := "SELECT id, user_id, game_type, bet, outcome, win_amount, created_at FROM game_history WHERE user_id = ? ORDER BY id DESC"
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var rec HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.GameType, &rec.Bet, &rec.Outcome, &rec.WinAmount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
