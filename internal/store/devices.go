package store

import (
	"context"
	"fmt"
	"time"
)

// InsertDeviceLocation records a GPS fix reported by a scanning device.
func (s *Store) InsertDeviceLocation(ctx context.Context, loc DeviceLocation) (string, error) {
	id := NewID()
	at := loc.RecordedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO device_locations (id, device_id, player, gps_lat, gps_lon, gps_alt, gps_speed, satellites, hdop, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, id, loc.DeviceID, loc.Player, loc.GPSLat, loc.GPSLon, loc.GPSAlt, loc.GPSSpeed, loc.Satellites, loc.HDOP, at)
	if err != nil {
		return "", fmt.Errorf("insert device location: %w", err)
	}
	return id, nil
}

// ListDeviceLocations returns the most recent fixes, newest first.
func (s *Store) ListDeviceLocations(ctx context.Context, deviceID string, limit int) ([]DeviceLocation, error) {
	if limit <= 0 {
		limit = 100
	}
	q := `
		SELECT id, device_id, player, gps_lat, gps_lon, gps_alt, gps_speed, satellites, hdop, recorded_at
		FROM device_locations`
	args := []any{}
	if deviceID != "" {
		args = append(args, deviceID)
		q += " WHERE device_id = $1"
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY recorded_at DESC, id DESC LIMIT $%d", len(args))
	rows, err := s.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list device locations: %w", err)
	}
	defer rows.Close()
	out := []DeviceLocation{}
	for rows.Next() {
		var l DeviceLocation
		if err := rows.Scan(&l.ID, &l.DeviceID, &l.Player, &l.GPSLat, &l.GPSLon, &l.GPSAlt, &l.GPSSpeed, &l.Satellites, &l.HDOP, &l.RecordedAt); err != nil {
			return nil, fmt.Errorf("list device locations: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list device locations: %w", err)
	}
	return out, nil
}
