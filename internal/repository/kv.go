package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// KV внешнее key-value хранилище, куда сохраняется состояние
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Close() error
}

// Supported storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// OpenKV открывает хранилище по имени драйвера
func OpenKV(ctx context.Context, driver, dsn string) (KV, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemoryKV(), nil
	case DriverSQLite, DriverPostgres:
		return NewSQLKV(ctx, driver, dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// MemoryKV хранилище в памяти процесса
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryKV) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Close() error { return nil }

// SQLKV таблица kv поверх database/sql (sqlite или postgres)
type SQLKV struct {
	db     *sql.DB
	getSQL string
	putSQL string
}

func NewSQLKV(ctx context.Context, driver, dsn string) (*SQLKV, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	kv := &SQLKV{db: db}
	switch driver {
	case DriverSQLite:
		// SQLite benefits from single writer
		db.SetMaxOpenConns(1)
		kv.getSQL = "SELECT value FROM kv WHERE name = ?"
		kv.putSQL = "INSERT INTO kv (name, value) VALUES (?, ?)" +
			" ON CONFLICT (name) DO UPDATE SET value = excluded.value"
	default:
		kv.getSQL = "SELECT value FROM kv WHERE name = $1"
		kv.putSQL = "INSERT INTO kv (name, value) VALUES ($1, $2)" +
			" ON CONFLICT (name) DO UPDATE SET value = excluded.value"
	}

	_, err = db.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS kv ("+
			" name VARCHAR (64) PRIMARY KEY,"+
			" value TEXT NOT NULL"+
			" );")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return kv, nil
}

func (s *SQLKV) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, s.getSQL, key).Scan(&v)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", err
	}
	return v, nil
}

func (s *SQLKV) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.putSQL, key, value)
	return err
}

func (s *SQLKV) Close() error { return s.db.Close() }
