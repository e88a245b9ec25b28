package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/okian/pinpoint/internal/domain/model"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS characters (
	seq    INTEGER PRIMARY KEY,
	id     TEXT    NOT NULL UNIQUE,
	cx     REAL    NOT NULL,
	cy     REAL    NOT NULL,
	radius REAL    NOT NULL,
	found  INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS scores (
	seq     INTEGER PRIMARY KEY,
	id      TEXT    NOT NULL UNIQUE,
	name    TEXT    NOT NULL,
	time_ms INTEGER NOT NULL
);`

// SQLiteStore keeps the document in two tables. Save rewrites both inside a
// single transaction; seq preserves document order.
type SQLiteStore struct {
	db *sqlx.DB
}

type characterRow struct {
	Seq int `db:"seq"`
	model.Character
}

type scoreRow struct {
	Seq int `db:"seq"`
	model.Score
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite store: path is required")
	}
	dsn := ":memory:"
	if path != ":memory:" {
		dsn = "file:" + filepath.Clean(path) +
			"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single writer connection keeps :memory: databases alive and
	// serializes document rewrites.
	sqlDB.SetMaxOpenConns(1)

	db := sqlx.NewDb(sqlDB, "sqlite3")
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load implements GameStore.
func (s *SQLiteStore) Load(ctx context.Context) (model.State, error) {
	if err := ctx.Err(); err != nil {
		return model.State{}, err
	}
	if s == nil || s.db == nil {
		return model.State{}, ErrClosed
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.State{}, s.wrap("begin read", err)
	}
	defer func() { _ = tx.Rollback() }()

	var chars []characterRow
	if err := tx.SelectContext(ctx, &chars,
		`SELECT seq, id, cx, cy, radius, found FROM characters ORDER BY seq`); err != nil {
		return model.State{}, s.wrap("select characters", err)
	}
	var scores []scoreRow
	if err := tx.SelectContext(ctx, &scores,
		`SELECT seq, id, name, time_ms FROM scores ORDER BY seq`); err != nil {
		return model.State{}, s.wrap("select scores", err)
	}

	st := model.EmptyState()
	for _, r := range chars {
		st.Characters = append(st.Characters, r.Character)
	}
	for _, r := range scores {
		st.Scores = append(st.Scores, r.Score)
	}
	return st, nil
}

// Save implements GameStore.
func (s *SQLiteStore) Save(ctx context.Context, st model.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return ErrClosed
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return s.wrap("begin write", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM characters`); err != nil {
		return s.wrap("clear characters", err)
	}
	for i, c := range st.Characters {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO characters (seq, id, cx, cy, radius, found) VALUES (:seq, :id, :cx, :cy, :radius, :found)`,
			characterRow{Seq: i, Character: c}); err != nil {
			return s.wrap("insert character "+c.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM scores`); err != nil {
		return s.wrap("clear scores", err)
	}
	for i, sc := range st.Scores {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO scores (seq, id, name, time_ms) VALUES (:seq, :id, :name, :time_ms)`,
			scoreRow{Seq: i, Score: sc}); err != nil {
			return s.wrap("insert score "+sc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return s.wrap("commit", err)
	}
	return nil
}

func (s *SQLiteStore) wrap(op string, err error) error {
	if err == sql.ErrConnDone || strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("sqlite %s: %w", op, ErrClosed)
	}
	return fmt.Errorf("sqlite %s: %w", op, err)
}

// Close implements GameStore.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
