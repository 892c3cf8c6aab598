package sqlite

import (
	"database/sql"
	"time"

	"github.com/plaisir-app/plaisir/internal/domain"
)

// ─── Gamification Key-Value ─────────────────────────────────────────────────

// SetEngagement stores a gamification key-value pair (xp, level, metric
// counters).
func (d *DB) SetEngagement(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO engagement (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetEngagement retrieves a gamification value by key.
// Returns "" if key not found.
func (d *DB) GetEngagement(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM engagement WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ─── Nudges ─────────────────────────────────────────────────────────────────

// InsertNudge creates a coaching nudge.
func (d *DB) InsertNudge(n domain.Nudge) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO nudges (type, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, ?)`,
		string(n.Type), n.Title, n.Body, n.CreatedAt.Unix(), n.Shown,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// NudgeCountSince returns how many nudges were created at or after the
// given time.
func (d *DB) NudgeCountSince(since time.Time) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM nudges WHERE created_at >= ?`, since.Unix(),
	).Scan(&count)
	return count, err
}

// ListPendingNudges returns unshown nudges, newest first.
func (d *DB) ListPendingNudges(limit int) ([]domain.Nudge, error) {
	rows, err := d.db.Query(
		`SELECT id, type, title, body, created_at, shown
		 FROM nudges WHERE shown = 0 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nudges []domain.Nudge
	for rows.Next() {
		var n domain.Nudge
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Body, &createdAt, &n.Shown); err != nil {
			return nil, err
		}
		n.CreatedAt = time.Unix(createdAt, 0)
		nudges = append(nudges, n)
	}
	return nudges, rows.Err()
}

// MarkNudgeShown marks a nudge as shown.
func (d *DB) MarkNudgeShown(id int64) error {
	result, err := d.db.Exec(`UPDATE nudges SET shown = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrNudgeNotFound
	}
	return nil
}
