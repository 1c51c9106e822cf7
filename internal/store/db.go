package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// DB is the opt-in run archive. A file lock next to the database keeps two
// concurrent CLI runs from interleaving their writes.
type DB struct {
	Pool *sql.DB
	lock *flock.Flock
}

func Open(dataDir string) (*DB, error) {
	lk := flock.New(filepath.Join(dataDir, "inspections.db.lock"))
	if err := lk.Lock(); err != nil {
		return nil, fmt.Errorf("lock archive: %w", err)
	}

	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.Join(dataDir, "inspections.db"))

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = lk.Unlock()
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		_ = lk.Unlock()
		return nil, err
	}

	d := &DB{Pool: pool, lock: lk}
	if err := Migrate(pool); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) Close() error {
	if d == nil {
		return nil
	}
	var err error
	if d.Pool != nil {
		err = d.Pool.Close()
	}
	if d.lock != nil {
		_ = d.lock.Unlock()
	}
	return err
}
