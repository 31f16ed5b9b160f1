package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/GhoshCoop/membergate-go/pkg/config"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

const queryTimeout = 5 * time.Second

// SQLStore persists blobs in a single kv table over database/sql, using
// SQLite locally or libsql when a remote URL is configured.
type SQLStore struct {
	conn      *sql.DB
	useLibSQL bool
}

// SQLConfig selects the driver and connection parameters.
type SQLConfig struct {
	SQLitePath  string
	LibSQLURL   string
	LibSQLToken string
}

// NewSQLStore opens the database, creates the kv table if needed, and applies
// the pool configuration.
func NewSQLStore(cfg *SQLConfig) (*SQLStore, error) {
	var conn *sql.DB
	var err error
	var useLibSQL bool

	if cfg.LibSQLURL != "" && cfg.LibSQLToken != "" {
		connStr := cfg.LibSQLURL + "?authToken=" + cfg.LibSQLToken
		conn, err = sql.Open("libsql", connStr)
		if err != nil || conn.Ping() != nil {
			return nil, fmt.Errorf("libsql connection failed")
		}
		useLibSQL = true
	} else {
		dbDir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}

		conn, err = sql.Open("sqlite3", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection failed: %w", err)
		}

		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite database ping failed: %w", err)
		}
	}

	conn.SetMaxOpenConns(config.DBMaxOpenConns)
	conn.SetMaxIdleConns(config.DBMaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)
	conn.SetConnMaxIdleTime(time.Duration(config.DBConnMaxIdleMinutes) * time.Minute)

	store := &SQLStore{conn: conn, useLibSQL: useLibSQL}
	if err := store.ensureSchema(); err != nil {
		conn.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLStore) ensureSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	query := `CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`
	_, err := s.conn.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var value string
	query := `SELECT value FROM kv WHERE key = ? LIMIT 1`
	err := s.conn.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQLStore) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	query := `INSERT INTO kv (key, value) VALUES (?, ?)
	          ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	_, err := s.conn.ExecContext(ctx, query, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	query := `DELETE FROM kv WHERE key = ?`
	_, err := s.conn.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// GetConnectionInfo describes the active backend for startup logs.
func (s *SQLStore) GetConnectionInfo() string {
	if s.useLibSQL {
		return "libsql (remote)"
	}
	return "sqlite (local)"
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
