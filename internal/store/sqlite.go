package store

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/nantokaworks/card-roulette/internal/shared/logger"
	"go.uber.org/zap"
)

// SQLiteStore persists values in the store table of the local database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(key string, out any) bool {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM store WHERE key = ?`, Prefix+key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		logger.Error("Failed to read from store", zap.Error(err), zap.String("key", key))
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Error("Failed to decode stored value", zap.Error(err), zap.String("key", key))
		return false
	}
	return true
}

func (s *SQLiteStore) Set(key string, v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to encode value", zap.Error(err), zap.String("key", key))
		return false
	}
	_, err = s.db.Exec(
		`INSERT INTO store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		Prefix+key, string(raw),
	)
	if err != nil {
		logger.Error("Failed to write to store", zap.Error(err), zap.String("key", key))
		return false
	}
	return true
}

func (s *SQLiteStore) Remove(key string) {
	if _, err := s.db.Exec(`DELETE FROM store WHERE key = ?`, Prefix+key); err != nil {
		logger.Error("Failed to remove from store", zap.Error(err), zap.String("key", key))
	}
}

func (s *SQLiteStore) Clear() {
	if _, err := s.db.Exec(`DELETE FROM store WHERE key LIKE ?`, Prefix+"%"); err != nil {
		logger.Error("Failed to clear store", zap.Error(err))
	}
}

func (s *SQLiteStore) Exists(key string) bool {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM store WHERE key = ?`, Prefix+key).Scan(&n)
	if err != nil {
		logger.Error("Failed to check store key", zap.Error(err), zap.String("key", key))
		return false
	}
	return n > 0
}

func (s *SQLiteStore) ListKeys() []string {
	rows, err := s.db.Query(`SELECT key FROM store WHERE key LIKE ? ORDER BY key`, Prefix+"%")
	if err != nil {
		logger.Error("Failed to list store keys", zap.Error(err))
		return []string{}
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			logger.Error("Failed to scan store key", zap.Error(err))
			continue
		}
		keys = append(keys, strings.TrimPrefix(key, Prefix))
	}
	return keys
}
