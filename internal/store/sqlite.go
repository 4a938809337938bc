package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"wishlist-cli/internal/model"

	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is
	// locked" flakiness when a CLI command runs while the TUI is open.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`INSERT OR IGNORE INTO meta(k, v) VALUES('version', '1');`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			price REAL NOT NULL,
			desired_date TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_title ON items(title);`,
		`CREATE INDEX IF NOT EXISTS idx_items_price ON items(price);`,
		`CREATE INDEX IF NOT EXISTS idx_items_date ON items(desired_date);`,
		`CREATE INDEX IF NOT EXISTS idx_items_status ON items(status);`,
		`CREATE INDEX IF NOT EXISTS idx_items_created ON items(created_at);`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			ts TEXT NOT NULL,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, created_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Patch is a partial item update. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Price       *float64
	URL         *string
	Image       *string
	Description *string
	DesiredDate *string
	Status      *model.Status
	UpdatedAt   *string
}

func (p Patch) apply(it *model.WishlistItem) {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.URL != nil {
		it.URL = *p.URL
	}
	if p.Image != nil {
		it.Image = *p.Image
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.DesiredDate != nil {
		it.DesiredDate = *p.DesiredDate
	}
	if p.Status != nil {
		it.Status = *p.Status
	}
	if p.UpdatedAt != nil {
		it.UpdatedAt = *p.UpdatedAt
	}
}

// ListAll returns every stored item. Order is unspecified; callers impose
// order through the view engine.
func (s Store) ListAll(ctx context.Context) ([]model.WishlistItem, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT json FROM items`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.WishlistItem{}
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var it model.WishlistItem
		if err := json.Unmarshal([]byte(js), &it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Get returns a single item by id.
func (s Store) Get(ctx context.Context, id string) (model.WishlistItem, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.WishlistItem{}, err
	}
	defer db.Close()
	return getItem(ctx, db, id)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getItem(ctx context.Context, q querier, id string) (model.WishlistItem, error) {
	var js string
	err := q.QueryRowContext(ctx, `SELECT json FROM items WHERE id = ?`, strings.TrimSpace(id)).Scan(&js)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WishlistItem{}, NotFoundError{ID: id}
	}
	if err != nil {
		return model.WishlistItem{}, err
	}
	var it model.WishlistItem
	if err := json.Unmarshal([]byte(js), &it); err != nil {
		return model.WishlistItem{}, err
	}
	return it, nil
}

// Insert stores a new item. Fails with ConflictError if the id is taken.
func (s Store) Insert(ctx context.Context, it model.WishlistItem) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM items WHERE id = ?`, it.ID).Scan(&one)
	if err == nil {
		return ConflictError{ID: it.ID}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if err := writeItem(ctx, tx, it, true); err != nil {
		return err
	}
	return tx.Commit()
}

// Update merges patch into the stored record. Fails with NotFoundError if the
// id is absent. Returns the updated item.
func (s Store) Update(ctx context.Context, id string, patch Patch) (model.WishlistItem, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.WishlistItem{}, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return model.WishlistItem{}, err
	}
	defer func() { _ = tx.Rollback() }()

	it, err := getItem(ctx, tx, id)
	if err != nil {
		return model.WishlistItem{}, err
	}
	patch.apply(&it)
	if err := writeItem(ctx, tx, it, false); err != nil {
		return model.WishlistItem{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.WishlistItem{}, err
	}
	return it, nil
}

// Remove deletes an item by id. Fails with NotFoundError if the id is absent.
func (s Store) Remove(ctx context.Context, id string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return NotFoundError{ID: id}
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func writeItem(ctx context.Context, e execer, it model.WishlistItem, insert bool) error {
	raw, err := json.Marshal(it)
	if err != nil {
		return err
	}
	nowMs := time.Now().UTC().UnixMilli()
	q := `INSERT OR REPLACE INTO items(id, title, price, desired_date, status, created_at, json, updated_at_unixms)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`
	if insert {
		q = `INSERT INTO items(id, title, price, desired_date, status, created_at, json, updated_at_unixms)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`
	}
	_, err = e.ExecContext(ctx, q,
		it.ID, it.Title, it.Price, it.DesiredDate, string(it.Status), it.CreatedAt,
		string(raw), nowMs,
	)
	return err
}
