package store

import (
	"context"
	"fmt"
)

// RecordedReading is a fingerprint pinned for one day.
type RecordedReading struct {
	Day         string // YYYY-MM-DD
	Code        string
	Score       int
	Fingerprint string
	Seq         int64
}

// RecordReading stores r unless a reading for r.Day already exists.
// inserted reports whether a new row was written.
func (s *Store) RecordReading(ctx context.Context, r RecordedReading) (inserted bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("record reading: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	seq, err := nextSeq(ctx, tx, "readings")
	if err != nil {
		return false, fmt.Errorf("record reading: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO readings (day, code, score, fingerprint, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(day) DO NOTHING
	`, r.Day, r.Code, r.Score, r.Fingerprint, seq)
	if err != nil {
		return false, fmt.Errorf("record reading: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record reading: rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("record reading: commit: %w", err)
	}
	return n > 0, nil
}

// ReadReadings returns recorded readings with from <= day <= to, ordered by
// day. Empty bounds are open. Returns an empty slice (not nil) when nothing
// matches.
func (s *Store) ReadReadings(ctx context.Context, from, to string) ([]RecordedReading, error) {
	query := `SELECT day, code, score, fingerprint, seq FROM readings WHERE 1 = 1`
	var args []any
	if from != "" {
		query += ` AND day >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND day <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY day ASC, seq ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	readings := []RecordedReading{}
	for rows.Next() {
		var r RecordedReading
		if err := rows.Scan(&r.Day, &r.Code, &r.Score, &r.Fingerprint, &r.Seq); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}
	return readings, nil
}
