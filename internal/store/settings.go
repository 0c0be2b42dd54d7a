package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"assetman/internal/logging"
)

// Get returns the raw setting of kind for modelID. A note type without a
// stored setting yields an empty map so defaults apply on decode.
func (s *Store) Get(ctx context.Context, modelID int64, kind Kind) (map[string]any, error) {
	if _, err := s.NotetypeByID(ctx, modelID); err != nil {
		return nil, err
	}

	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT value_json FROM settings WHERE model_id = ? AND kind = ?",
		modelID, string(kind),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s setting: %w", kind, err)
	}

	value := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("decode %s setting for model %d: %w", kind, modelID, err)
	}
	return value, nil
}

// Put replaces the raw setting of kind for modelID.
func (s *Store) Put(ctx context.Context, modelID int64, kind Kind, value map[string]any) error {
	return s.PutAll(ctx, modelID, map[Kind]map[string]any{kind: value})
}

// PutAll replaces several settings of modelID in one transaction.
func (s *Store) PutAll(ctx context.Context, modelID int64, values map[Kind]map[string]any) error {
	if _, err := s.NotetypeByID(ctx, modelID); err != nil {
		return err
	}

	encoded := make(map[Kind]string, len(values))
	for kind, value := range values {
		if _, err := ParseKind(string(kind)); err != nil {
			return err
		}
		if value == nil {
			value = map[string]any{}
		}
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s setting: %w", kind, err)
		}
		encoded[kind] = string(data)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := timestamp()
	for kind, data := range encoded {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settings (model_id, kind, value_json, updated_at) VALUES (?, ?, ?, ?)
             ON CONFLICT (model_id, kind) DO UPDATE SET value_json = excluded.value_json, updated_at = excluded.updated_at`,
			modelID, string(kind), data, now,
		); err != nil {
			return fmt.Errorf("put %s setting: %w", kind, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings: %w", err)
	}

	for kind := range encoded {
		s.logger.Debug("setting stored",
			logging.Int64(logging.FieldModelID, modelID),
			logging.String(logging.FieldSettingKind, string(kind)),
		)
	}
	return nil
}

// DeleteSetting removes the stored setting of kind, reverting it to defaults.
func (s *Store) DeleteSetting(ctx context.Context, modelID int64, kind Kind) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM settings WHERE model_id = ? AND kind = ?",
		modelID, string(kind),
	); err != nil {
		return fmt.Errorf("delete %s setting: %w", kind, err)
	}
	return nil
}
