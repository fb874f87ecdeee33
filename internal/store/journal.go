package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/tianshu/internal/canon"
)

// JournalEntry is one caller-owned journal record. Body is opaque.
type JournalEntry struct {
	ID       string
	Day      string // YYYY-MM-DD
	Kind     string
	Body     []byte
	BodyHash string
	Seq      int64
}

// JournalFilter narrows ListJournal. Zero values mean "no restriction".
type JournalFilter struct {
	Day   string
	Limit int
}

// AddJournal stores a new entry and returns it with ID, BodyHash and Seq
// filled in. Day and Kind are required.
func (s *Store) AddJournal(ctx context.Context, e JournalEntry) (JournalEntry, error) {
	if e.Day == "" || e.Kind == "" {
		return JournalEntry{}, errors.New("add journal: day and kind are required")
	}
	if e.Body == nil {
		e.Body = []byte{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JournalEntry{}, fmt.Errorf("add journal: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	seq, err := nextSeq(ctx, tx, "journal_entries")
	if err != nil {
		return JournalEntry{}, fmt.Errorf("add journal: %w", err)
	}

	e.ID = s.ids.NewID()
	e.BodyHash = canon.HashWithDomain(canon.DomainJournal, e.Body)
	e.Seq = seq

	_, err = tx.ExecContext(ctx, `
		INSERT INTO journal_entries (id, day, kind, body, body_hash, seq)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.Day, e.Kind, e.Body, e.BodyHash, e.Seq)
	if err != nil {
		return JournalEntry{}, fmt.Errorf("add journal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return JournalEntry{}, fmt.Errorf("add journal: commit: %w", err)
	}
	return e, nil
}

// ListJournal returns entries newest first: ORDER BY seq DESC, id DESC.
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListJournal(ctx context.Context, f JournalFilter) ([]JournalEntry, error) {
	query := `SELECT id, day, kind, body, body_hash, seq FROM journal_entries`
	var args []any
	if f.Day != "" {
		query += ` WHERE day = ?`
		args = append(args, f.Day)
	}
	query += ` ORDER BY seq DESC, id COLLATE BINARY DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	entries := []JournalEntry{}
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.Day, &e.Kind, &e.Body, &e.BodyHash, &e.Seq); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

// GetJournal returns the entry with the given id. found is false when no
// such entry exists.
func (s *Store) GetJournal(ctx context.Context, id string) (e JournalEntry, found bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT id, day, kind, body, body_hash, seq FROM journal_entries WHERE id = ?
	`, id).Scan(&e.ID, &e.Day, &e.Kind, &e.Body, &e.BodyHash, &e.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return JournalEntry{}, false, nil
	}
	if err != nil {
		return JournalEntry{}, false, fmt.Errorf("get journal %s: %w", id, err)
	}
	return e, true, nil
}
