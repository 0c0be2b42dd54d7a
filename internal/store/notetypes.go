package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"assetman/internal/logging"
)

// AddNotetype registers a note type under id and name.
func (s *Store) AddNotetype(ctx context.Context, id int64, name string) (*Notetype, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("note type name must not be empty")
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM notetypes WHERE id = ? OR name = ?", id, name).Scan(&count); err != nil {
		return nil, fmt.Errorf("check note type: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: id %d or name %q", ErrDuplicate, id, name)
	}

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO notetypes (id, name, created_at) VALUES (?, ?, ?)",
		id, name, timestamp(),
	); err != nil {
		return nil, fmt.Errorf("insert note type: %w", err)
	}
	s.logger.Info("note type added", logging.Int64(logging.FieldModelID, id), logging.String("name", name))
	return s.NotetypeByID(ctx, id)
}

// Notetypes lists all note types ordered by id.
func (s *Store) Notetypes(ctx context.Context) ([]Notetype, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at FROM notetypes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list note types: %w", err)
	}
	defer rows.Close()

	var out []Notetype
	for rows.Next() {
		nt, err := scanNotetype(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *nt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate note types: %w", err)
	}
	return out, nil
}

// NotetypeIDs returns every note type id in ascending order.
func (s *Store) NotetypeIDs(ctx context.Context) ([]int64, error) {
	list, err := s.Notetypes(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(list))
	for i, nt := range list {
		ids[i] = nt.ID
	}
	return ids, nil
}

// NotetypeByID fetches a note type, returning ErrNotFound when absent.
func (s *Store) NotetypeByID(ctx context.Context, id int64) (*Notetype, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, created_at FROM notetypes WHERE id = ?", id)
	nt, err := scanNotetype(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nt, err
}

// NotetypeByName fetches a note type by its unique name.
func (s *Store) NotetypeByName(ctx context.Context, name string) (*Notetype, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, created_at FROM notetypes WHERE name = ?", strings.TrimSpace(name))
	nt, err := scanNotetype(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: name %q", ErrNotFound, name)
	}
	return nt, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotetype(row rowScanner) (*Notetype, error) {
	var (
		nt      Notetype
		created string
	)
	if err := row.Scan(&nt.ID, &nt.Name, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan note type: %w", err)
	}
	nt.CreatedAt = parseTimestamp(created)
	return &nt, nil
}
