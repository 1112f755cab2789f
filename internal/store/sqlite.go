package store

import (
	"database/sql"
	"fmt"

	"github.com/Hara602/dirSentry/internal/model"
	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore SQLite 后端, 建表结构后即可用
func NewSQLiteStore(dbPath string) (SnapshotStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS snapshot (
		path TEXT PRIMARY KEY,
		mtime REAL NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Load() (model.Snapshot, error) {
	rows, err := s.db.Query("SELECT path, mtime FROM snapshot")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	defer rows.Close()

	snap := model.Snapshot{}
	for rows.Next() {
		var path string
		var mtime float64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		snap[path] = mtime
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return snap, nil
}

// Save 单个事务里清表重写, 要么全部落盘要么保持旧记录
func (s *sqliteStore) Save(snap model.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM snapshot"); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear snapshot: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO snapshot(path, mtime) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for path, mtime := range snap {
		if _, err := stmt.Exec(path, mtime); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s: %w", path, err)
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) Close() error { return s.db.Close() }
