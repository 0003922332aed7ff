package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// InsertSummon appends an executed summon to the history log.
func (s *Store) InsertSummon(ctx context.Context, player, mobType string, gpsLat, gpsLon *float64, at time.Time) (string, error) {
	id := NewID()
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO summons (id, player, mob_type, gps_lat, gps_lon, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, id, player, mobType, gpsLat, gpsLon, at)
	if err != nil {
		return "", fmt.Errorf("insert summon: %w", err)
	}
	return id, nil
}

// LatestSummonFor returns the most recent summon record matching the
// player and mob type, both case-insensitively. Physical devices vary
// capitalization, so the match must not be exact. Returns ErrNotFound
// when the player has never summoned that mob.
func (s *Store) LatestSummonFor(ctx context.Context, player, mobType string) (*SummonRecord, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, player, mob_type, gps_lat, gps_lon, created_at
		FROM summons
		WHERE LOWER(player) = LOWER($1) AND LOWER(mob_type) = LOWER($2)
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, player, mobType)
	var r SummonRecord
	if err := row.Scan(&r.ID, &r.Player, &r.MobType, &r.GPSLat, &r.GPSLon, &r.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("latest summon: %w", err)
	}
	return &r, nil
}

// ListSummons returns history entries most recent first, optionally
// filtered by player (case-insensitive).
func (s *Store) ListSummons(ctx context.Context, player string, limit int) ([]SummonRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows pgx.Rows
	var err error
	if player == "" {
		rows, err = s.Pool.Query(ctx, `
			SELECT id, player, mob_type, gps_lat, gps_lon, created_at
			FROM summons ORDER BY created_at DESC, id DESC LIMIT $1
		`, limit)
	} else {
		rows, err = s.Pool.Query(ctx, `
			SELECT id, player, mob_type, gps_lat, gps_lon, created_at
			FROM summons WHERE LOWER(player) = LOWER($1)
			ORDER BY created_at DESC, id DESC LIMIT $2
		`, player, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list summons: %w", err)
	}
	defer rows.Close()
	out := []SummonRecord{}
	for rows.Next() {
		var r SummonRecord
		if err := rows.Scan(&r.ID, &r.Player, &r.MobType, &r.GPSLat, &r.GPSLon, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list summons: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list summons: %w", err)
	}
	return out, nil
}

// GetSummon returns a single history entry by id.
func (s *Store) GetSummon(ctx context.Context, id string) (*SummonRecord, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, player, mob_type, gps_lat, gps_lon, created_at
		FROM summons WHERE id = $1
	`, id)
	var r SummonRecord
	if err := row.Scan(&r.ID, &r.Player, &r.MobType, &r.GPSLat, &r.GPSLon, &r.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get summon: %w", err)
	}
	return &r, nil
}

// InsertSummonBatch writes a set of history entries in one transaction.
// Either every record lands or none do.
func (s *Store) InsertSummonBatch(ctx context.Context, records []SummonRecord) ([]string, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin summon batch: %w", err)
	}
	defer tx.Rollback(ctx)

	ids := make([]string, 0, len(records))
	for _, r := range records {
		id := NewID()
		at := r.CreatedAt
		if at.IsZero() {
			at = time.Now().UTC()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO summons (id, player, mob_type, gps_lat, gps_lon, created_at)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, id, r.Player, r.MobType, r.GPSLat, r.GPSLon, at); err != nil {
			return nil, fmt.Errorf("insert summon batch: %w", err)
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit summon batch: %w", err)
	}
	return ids, nil
}

// PurgeSummons deletes the whole history table. Administrative use only;
// normal operation never mutates or deletes history rows.
func (s *Store) PurgeSummons(ctx context.Context) (int64, error) {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM summons`)
	if err != nil {
		return 0, fmt.Errorf("purge summons: %w", err)
	}
	return tag.RowsAffected(), nil
}
