package repository

import (
	"context"
	"database/sql"
)

// TimingRecordRepo handles accepted bus timing records.
type TimingRecordRepo struct{ db *sql.DB }

func NewTimingRecordRepo(db *sql.DB) *TimingRecordRepo { return &TimingRecordRepo{db: db} }

const timingCols = `id, from_location_id, to_location_id, departure_minute, timing_type, source, verified, contribution_id, created_at, updated_at`

// Insert adds a new record. The unique index on (from, to, type, minute)
// makes concurrent inserts of the same timing fail with a UNIQUE violation;
// callers treat that as an exact duplicate, not an error.
func (r *TimingRecordRepo) Insert(ctx context.Context, t TimingRecord) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO bus_timing_records(
	 id, from_location_id, to_location_id, departure_minute, timing_type,
	 source, verified, contribution_id, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`, t.ID, t.FromLocationID, t.ToLocationID, t.DepartureMinute, t.TimingType,
		t.Source, t.Verified, t.ContributionID)
	return err
}

// Get fetches a record by id. Returns (nil, nil) when no row matches.
func (r *TimingRecordRepo) Get(ctx context.Context, id string) (*TimingRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+timingCols+` FROM bus_timing_records WHERE id = ?`, id)
	t, err := scanTiming(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByRoute returns all records for a route and timing type, earliest
// departure first.
func (r *TimingRecordRepo) FindByRoute(ctx context.Context, fromID, toID string, tt TimingType) ([]TimingRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+timingCols+` FROM bus_timing_records
	WHERE from_location_id = ? AND to_location_id = ? AND timing_type = ?
	ORDER BY departure_minute ASC
	`, fromID, toID, tt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTimings(rows)
}

// FindInWindow returns records for a route and timing type whose departure
// falls within [minute-window, minute+window].
func (r *TimingRecordRepo) FindInWindow(ctx context.Context, fromID, toID string, tt TimingType, minute, window int) ([]TimingRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+timingCols+` FROM bus_timing_records
	WHERE from_location_id = ? AND to_location_id = ? AND timing_type = ?
	  AND departure_minute BETWEEN ? AND ?
	ORDER BY departure_minute ASC
	`, fromID, toID, tt, minute-window, minute+window)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTimings(rows)
}

// MarkVerified flips the verified flag on a record.
func (r *TimingRecordRepo) MarkVerified(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE bus_timing_records SET verified = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, id)
	return err
}

// UpdateSource upgrades the source attribution of a record. Used when a
// higher-priority submission corroborates an existing timing.
func (r *TimingRecordRepo) UpdateSource(ctx context.Context, id string, source TimingSource) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE bus_timing_records SET source = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, source, id)
	return err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanTiming(row rowScanner) (TimingRecord, error) {
	var t TimingRecord
	err := row.Scan(&t.ID, &t.FromLocationID, &t.ToLocationID, &t.DepartureMinute,
		&t.TimingType, &t.Source, &t.Verified, &t.ContributionID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func collectTimings(rows *sql.Rows) ([]TimingRecord, error) {
	var out []TimingRecord
	for rows.Next() {
		t, err := scanTiming(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
