package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInconsistentAction reports a token whose populated identifier
	// field does not match its action kind.
	ErrInconsistentAction = errors.New("action kind and identifier fields are inconsistent")
	// ErrInvalidPosition reports coordinates outside the valid
	// latitude/longitude ranges, or a half-supplied pair.
	ErrInvalidPosition = errors.New("invalid position")
)

// haversineSQL computes great-circle meters between ($1,$2) and a token
// row on a 6,371,000 m sphere. least() guards asin against float noise
// pushing its argument past 1.
const haversineSQL = `2 * 6371000 * asin(least(1, sqrt(
		pow(sin(radians(t.gps_lat - $1) / 2), 2) +
		cos(radians($1)) * cos(radians(t.gps_lat)) *
		pow(sin(radians(t.gps_lon - $2) / 2), 2))))`

// InsertToken persists a write-once token and returns its id. The token
// is checked for kind/identifier consistency and coordinate sanity even
// though callers validate first; a bad record must never reach the table.
func (s *Store) InsertToken(ctx context.Context, tok NewToken) (string, error) {
	if !tok.ActionType.Valid() {
		return "", fmt.Errorf("%w: unknown action kind %q", ErrInconsistentAction, tok.ActionType)
	}
	switch tok.ActionType {
	case ActionSummonEntity:
		if tok.Entity == nil || *tok.Entity == "" || tok.Item != nil {
			return "", fmt.Errorf("%w: summon_entity requires entity only", ErrInconsistentAction)
		}
	case ActionGiveItem:
		if tok.Item == nil || *tok.Item == "" || tok.Entity != nil {
			return "", fmt.Errorf("%w: give_item requires item only", ErrInconsistentAction)
		}
	case ActionSetTime:
		if tok.Entity != nil || tok.Item != nil {
			return "", fmt.Errorf("%w: set_time carries no identifier", ErrInconsistentAction)
		}
	}
	if (tok.GPSLat == nil) != (tok.GPSLon == nil) {
		return "", fmt.Errorf("%w: latitude and longitude must be supplied together", ErrInvalidPosition)
	}
	if tok.GPSLat != nil {
		if *tok.GPSLat < -90 || *tok.GPSLat > 90 {
			return "", fmt.Errorf("%w: latitude %f out of range", ErrInvalidPosition, *tok.GPSLat)
		}
		if *tok.GPSLon < -180 || *tok.GPSLon > 180 {
			return "", fmt.Errorf("%w: longitude %f out of range", ErrInvalidPosition, *tok.GPSLon)
		}
	}

	id := NewID()
	writtenAt := tok.WrittenAt
	if writtenAt.IsZero() {
		writtenAt = time.Now().UTC()
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO tokens (id, action_type, entity, item, gps_lat, gps_lon, written_by, device_id, tag_uid, written_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, id, string(tok.ActionType), tok.Entity, tok.Item, tok.GPSLat, tok.GPSLon, tok.WrittenBy, tok.DeviceID, tok.TagUID, writtenAt)
	if err != nil {
		return "", fmt.Errorf("insert token: %w", err)
	}
	return id, nil
}

// ListNearbyTokens returns the tokens nearest to the filter origin,
// ordered by ascending distance with written_at descending as the
// tie-break. Only tokens with a position participate, and the radius is
// a strict cutoff. Each row carries catalog display metadata when the
// entity/item has a catalog entry.
func (s *Store) ListNearbyTokens(ctx context.Context, f NearbyFilter) ([]NearbyToken, error) {
	if f.Limit <= 0 {
		f.Limit = 10
	}
	args := []any{f.Lat, f.Lon, f.RadiusKM * 1000}
	where := "WHERE c.distance_m <= $3"
	if f.ActionType != "" {
		args = append(args, string(f.ActionType))
		where += fmt.Sprintf(" AND c.action_type = $%d", len(args))
	}
	if f.Temperament != "" {
		args = append(args, f.Temperament)
		where += fmt.Sprintf(" AND (c.action_type <> 'summon_entity' OR c.temperament = $%d)", len(args))
	}
	args = append(args, f.Limit)
	q := `
		SELECT c.id, c.action_type, c.entity, c.item, c.gps_lat, c.gps_lon,
		       c.written_by, c.device_id, c.tag_uid, c.written_at, c.distance_m,
		       c.display_name, c.temperament, c.rarity, c.image_url
		FROM (
			SELECT t.id, t.action_type, t.entity, t.item, t.gps_lat, t.gps_lon,
			       t.written_by, t.device_id, t.tag_uid, t.written_at,
			       ` + haversineSQL + ` AS distance_m,
			       g.display_name, g.temperament, g.rarity, g.image_url
			FROM tokens t
			LEFT JOIN game_objects g ON g.object_id = COALESCE(t.entity, t.item)
			WHERE t.gps_lat IS NOT NULL AND t.gps_lon IS NOT NULL
		) c
		` + where + `
		ORDER BY c.distance_m ASC, c.written_at DESC
		LIMIT $` + fmt.Sprintf("%d", len(args))
	rows, err := s.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("nearby tokens: %w", err)
	}
	defer rows.Close()
	out := []NearbyToken{}
	for rows.Next() {
		var n NearbyToken
		if err := rows.Scan(
			&n.ID, &n.ActionType, &n.Entity, &n.Item, &n.GPSLat, &n.GPSLon,
			&n.WrittenBy, &n.DeviceID, &n.TagUID, &n.WrittenAt, &n.DistanceM,
			&n.DisplayName, &n.Temperament, &n.Rarity, &n.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("nearby tokens: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("nearby tokens: %w", err)
	}
	return out, nil
}

// ListTokens returns tokens most-recently-written first, for the
// diagnostic listing endpoint.
func (s *Store) ListTokens(ctx context.Context, limit int) ([]Token, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, action_type, entity, item, gps_lat, gps_lon, written_by, device_id, tag_uid, written_at
		FROM tokens ORDER BY written_at DESC, id DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	defer rows.Close()
	out := []Token{}
	for rows.Next() {
		var t Token
		if err := rows.Scan(&t.ID, &t.ActionType, &t.Entity, &t.Item, &t.GPSLat, &t.GPSLon, &t.WrittenBy, &t.DeviceID, &t.TagUID, &t.WrittenAt); err != nil {
			return nil, fmt.Errorf("list tokens: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	return out, nil
}
