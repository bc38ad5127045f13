package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// dialect holds the statements that differ between SQL engines
type dialect struct {
	driver string
	schema string
	get    string
	upsert string
}

var sqliteDialect = dialect{
	driver: "sqlite3",
	schema: `CREATE TABLE IF NOT EXISTS kv (
    "key" TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`,
	get: `SELECT value FROM kv WHERE "key" = ?`,
	upsert: `INSERT INTO kv ("key", value, updated_at) VALUES (?, ?, ?)
ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
}

var mysqlDialect = dialect{
	driver: "mysql",
	schema: "CREATE TABLE IF NOT EXISTS kv (\n" +
		"    `key` VARCHAR(191) PRIMARY KEY,\n" +
		"    value LONGTEXT NOT NULL,\n" +
		"    updated_at TIMESTAMP NOT NULL\n" +
		")",
	get: "SELECT value FROM kv WHERE `key` = ?",
	upsert: "INSERT INTO kv (`key`, value, updated_at) VALUES (?, ?, ?)\n" +
		"ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)",
}

// SQLBackend stores values in a single kv table
type SQLBackend struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQLite opens (or creates) a SQLite database file
func OpenSQLite(ctx context.Context, dbPath string) (*SQLBackend, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	return openSQL(ctx, sqliteDialect, dbPath)
}

// OpenMySQL connects to a MySQL server. dsn uses the go-sql-driver format,
// e.g. user:pass@tcp(127.0.0.1:3306)/todo
func OpenMySQL(ctx context.Context, dsn string) (*SQLBackend, error) {
	return openSQL(ctx, mysqlDialect, dsn)
}

func openSQL(ctx context.Context, d dialect, dsn string) (*SQLBackend, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize schema
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLBackend{db: db, dialect: d}, nil
}

func (s *SQLBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.dialect.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLBackend) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.upsert, key, value, time.Now().UTC())
	return err
}

// Close closes the database connection
func (s *SQLBackend) Close() error {
	return s.db.Close()
}
