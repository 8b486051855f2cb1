package repository

import (
	"context"
	"database/sql"
	"strings"
)

// LocationRepo handles gazetteer entries.
type LocationRepo struct{ db *sql.DB }

func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{db: db} }

// Upsert inserts a location or leaves an existing row with the same name
// untouched.
func (r *LocationRepo) Upsert(ctx context.Context, l Location) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO locations(id, name, latitude, longitude, created_at)
	VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(name) DO NOTHING
	`, l.ID, strings.ToUpper(strings.TrimSpace(l.Name)), l.Latitude, l.Longitude)
	return err
}

// GetByExactName looks up a location by its canonical uppercase name.
// Returns (nil, nil) when no row matches.
func (r *LocationRepo) GetByExactName(ctx context.Context, name string) (*Location, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, latitude, longitude, created_at FROM locations WHERE name = ?
	`, strings.ToUpper(strings.TrimSpace(name)))
	var l Location
	if err := row.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// Get fetches a location by id. Returns (nil, nil) when no row matches.
func (r *LocationRepo) Get(ctx context.Context, id string) (*Location, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, latitude, longitude, created_at FROM locations WHERE id = ?
	`, id)
	var l Location
	if err := row.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// Names returns every canonical location name, for fuzzy-match candidate
// lists.
func (r *LocationRepo) Names(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM locations ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
