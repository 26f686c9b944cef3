package sqlcat

import (
	"fmt"
	"time"

	"github.com/banshee-data/sofind/internal/catalog"
)

// InsertRun writes every catalogue row produced by a single pipeline
// run, tagged with runID, in one transaction.
func (s *Store) InsertRun(runID string, rows []catalog.Row) error {
	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("sqlcat: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO objects (
			run_id, label, n_pix,
			x_min, x_max, y_min, y_max, z_min, z_max,
			f_min, f_max, f_sum,
			x_centroid, y_centroid, z_centroid,
			rel, flags, created_unix
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("sqlcat: failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, r := range rows {
		_, err := stmt.Exec(
			runID, r.ID, r.NPix,
			r.XMin, r.XMax, r.YMin, r.YMax, r.ZMin, r.ZMax,
			r.FMin, r.FMax, r.FSum,
			r.XCentroid, r.YCentroid, r.ZCentroid,
			r.Rel, r.Flags, now,
		)
		if err != nil {
			return fmt.Errorf("sqlcat: failed to insert object %d: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// SelectRun returns every catalogue row previously stored under runID,
// ordered by label.
func (s *Store) SelectRun(runID string) ([]catalog.Row, error) {
	rows, err := s.Query(`
		SELECT label, n_pix,
			x_min, x_max, y_min, y_max, z_min, z_max,
			f_min, f_max, f_sum,
			x_centroid, y_centroid, z_centroid,
			rel, flags
		FROM objects WHERE run_id = ? ORDER BY label
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("sqlcat: failed to query run %q: %w", runID, err)
	}
	defer rows.Close()

	var out []catalog.Row
	for rows.Next() {
		var r catalog.Row
		if err := rows.Scan(
			&r.ID, &r.NPix,
			&r.XMin, &r.XMax, &r.YMin, &r.YMax, &r.ZMin, &r.ZMax,
			&r.FMin, &r.FMax, &r.FSum,
			&r.XCentroid, &r.YCentroid, &r.ZCentroid,
			&r.Rel, &r.Flags,
		); err != nil {
			return nil, fmt.Errorf("sqlcat: failed to scan object row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
