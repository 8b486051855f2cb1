package repository

import (
	"context"
	"database/sql"
)

// SkippedTimingRepo handles skip audit rows. Rows are append-only.
type SkippedTimingRepo struct{ db *sql.DB }

func NewSkippedTimingRepo(db *sql.DB) *SkippedTimingRepo { return &SkippedTimingRepo{db: db} }

func (r *SkippedTimingRepo) Add(ctx context.Context, s SkippedTiming) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO skipped_timing_records(
	 id, contribution_id, from_location_id, from_location_name, to_location_id,
	 to_location_name, departure_minute, timing_type, skip_reason,
	 existing_record_id, existing_record_source, notes, skipped_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, s.ID, s.ContributionID, s.FromLocationID, s.FromLocationName, s.ToLocationID,
		s.ToLocationName, s.DepartureMinute, s.TimingType, s.SkipReason,
		s.ExistingRecordID, s.ExistingRecordSource, s.Notes)
	return err
}

// ListByContribution returns the skip rows recorded for one contribution,
// oldest first.
func (r *SkippedTimingRepo) ListByContribution(ctx context.Context, contributionID string) ([]SkippedTiming, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, contribution_id, from_location_id, from_location_name, to_location_id,
	 to_location_name, departure_minute, timing_type, skip_reason,
	 existing_record_id, existing_record_source, notes, skipped_at
	FROM skipped_timing_records WHERE contribution_id = ? ORDER BY skipped_at ASC, id ASC
	`, contributionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SkippedTiming
	for rows.Next() {
		var s SkippedTiming
		if err := rows.Scan(&s.ID, &s.ContributionID, &s.FromLocationID, &s.FromLocationName,
			&s.ToLocationID, &s.ToLocationName, &s.DepartureMinute, &s.TimingType,
			&s.SkipReason, &s.ExistingRecordID, &s.ExistingRecordSource, &s.Notes,
			&s.SkippedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
