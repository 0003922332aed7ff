package devices

import (
	"context"
	"fmt"
	"strings"
	"time"

	"summonlink/internal/app/tokens"
	"summonlink/internal/store"

	"github.com/rs/zerolog/log"
)

// Service records GPS fixes reported by scanning devices so operators
// can see where the hardware is.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// LocationRequest is a device's periodic GPS report. Quality fields
// (altitude, speed, satellites, hdop) are optional; cheap receivers
// don't report them.
type LocationRequest struct {
	DeviceID   string   `json:"device_id"`
	Player     string   `json:"player,omitempty"`
	GPSLat     *float64 `json:"gps_lat"`
	GPSLon     *float64 `json:"gps_lon"`
	GPSAlt     *float64 `json:"gps_alt,omitempty"`
	GPSSpeed   *float64 `json:"gps_speed,omitempty"`
	Satellites *int     `json:"satellites,omitempty"`
	HDOP       *float64 `json:"hdop,omitempty"`
	Timestamp  string   `json:"timestamp,omitempty"`
}

type LocationResponse struct {
	Status     string `json:"status"`
	LocationID string `json:"location_id"`
}

// Report validates and persists one GPS fix.
func (s *Service) Report(ctx context.Context, req LocationRequest) (*LocationResponse, error) {
	if strings.TrimSpace(req.DeviceID) == "" {
		return nil, &tokens.FieldError{Field: "device_id", Message: "device_id is required"}
	}
	if req.GPSLat == nil || req.GPSLon == nil {
		missing := "gps_lat"
		if req.GPSLat != nil {
			missing = "gps_lon"
		}
		return nil, &tokens.FieldError{Field: missing, Message: missing + " is required"}
	}
	if *req.GPSLat < -90 || *req.GPSLat > 90 {
		return nil, &tokens.FieldError{Field: "gps_lat", Message: "gps_lat must be between -90 and 90"}
	}
	if *req.GPSLon < -180 || *req.GPSLon > 180 {
		return nil, &tokens.FieldError{Field: "gps_lon", Message: "gps_lon must be between -180 and 180"}
	}
	var recordedAt time.Time
	if req.Timestamp != "" {
		var err error
		recordedAt, err = time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return nil, &tokens.FieldError{Field: "timestamp", Message: "timestamp must be RFC3339"}
		}
	}

	loc := store.DeviceLocation{
		DeviceID:   req.DeviceID,
		GPSLat:     *req.GPSLat,
		GPSLon:     *req.GPSLon,
		GPSAlt:     req.GPSAlt,
		GPSSpeed:   req.GPSSpeed,
		Satellites: req.Satellites,
		HDOP:       req.HDOP,
		RecordedAt: recordedAt,
	}
	if req.Player != "" {
		loc.Player = &req.Player
	}
	id, err := s.store.InsertDeviceLocation(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tokens.ErrStorage, err)
	}
	log.Debug().Str("device_id", req.DeviceID).Str("location_id", id).Msg("device location recorded")
	return &LocationResponse{Status: "ok", LocationID: id}, nil
}

// Locations lists recent fixes, optionally for one device.
func (s *Service) Locations(ctx context.Context, deviceID string, limit int) ([]store.DeviceLocation, error) {
	if limit <= 0 {
		limit = 100
	}
	locs, err := s.store.ListDeviceLocations(ctx, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tokens.ErrStorage, err)
	}
	return locs, nil
}
