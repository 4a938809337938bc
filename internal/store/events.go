package store

import (
	"context"
	"encoding/json"
	"time"

	"wishlist-cli/internal/model"

	"github.com/google/uuid"
)

// AppendEvent records one entry in the audit log. Callers treat this as
// best-effort: a failed append never rolls back the mutation it describes.
func (s Store) AppendEvent(ctx context.Context, typ, entityID string, payload any) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.ExecContext(ctx,
		`INSERT INTO events(event_id, ts, type, entity_id, payload_json, created_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), now.Format(time.RFC3339Nano), typ, entityID, string(raw), now.UnixMilli(),
	)
	return err
}

// ReadEventsTail returns the last `limit` events in chronological order.
// limit <= 0 returns all events.
func (s Store) ReadEventsTail(ctx context.Context, limit int) ([]model.Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	// rowid reflects insertion order; created_at_unixms alone can tie when
	// events land within the same millisecond.
	q := `SELECT event_id, ts, type, entity_id, payload_json FROM events ORDER BY rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var ev model.Event
		var payload string
		if err := rows.Scan(&ev.ID, &ev.TS, &ev.Type, &ev.EntityID, &payload); err != nil {
			return nil, err
		}
		var v any
		if err := json.Unmarshal([]byte(payload), &v); err == nil {
			ev.Payload = v
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows come newest-first for the LIMIT; flip to oldest-first for callers.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
