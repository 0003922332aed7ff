package tokens

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"summonlink/internal/geo"
	"summonlink/internal/store"

	"github.com/rs/zerolog/log"
)

const (
	DefaultNearbyLimit = 10
	MaxNearbyLimit     = 50
	DefaultRadiusKM    = 5.0
	MinRadiusKM        = 0.1
	MaxRadiusKM        = 50.0
	maxListLimit       = 1000
)

// Service orchestrates token registration and GPS discovery on top of
// the token store.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Register validates and persists a written token. Field-level
// validation errors come back as *FieldError; storage failures wrap
// ErrStorage and fail the whole request.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	req.WrittenBy = strings.TrimSpace(req.WrittenBy)
	if req.WrittenBy == "" {
		return nil, &FieldError{Field: "written_by", Message: "written_by is required"}
	}
	action, err := ParseAction(req.Action)
	if err != nil {
		return nil, err
	}
	if err := validatePosition(req.GPSLat, req.GPSLon); err != nil {
		return nil, err
	}
	var writtenAt time.Time
	if req.Timestamp != "" {
		writtenAt, err = time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return nil, &FieldError{Field: "timestamp", Message: "timestamp must be RFC3339"}
		}
	}

	tok := store.NewToken{
		ActionType: action.Kind,
		GPSLat:     req.GPSLat,
		GPSLon:     req.GPSLon,
		WrittenBy:  req.WrittenBy,
		WrittenAt:  writtenAt,
	}
	if action.Entity != "" {
		tok.Entity = &action.Entity
	}
	if action.Item != "" {
		tok.Item = &action.Item
	}
	if req.DeviceID != "" {
		tok.DeviceID = &req.DeviceID
	}
	if req.TagUID != "" {
		tok.TagUID = &req.TagUID
	}

	id, err := s.store.InsertToken(ctx, tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	log.Info().
		Str("token_id", id).
		Str("action_type", string(action.Kind)).
		Str("written_by", req.WrittenBy).
		Bool("has_position", req.GPSLat != nil).
		Msg("token registered")

	resp := &RegisterResponse{
		Status:     "ok",
		TokenID:    id,
		ActionType: action.Kind,
		Entity:     action.Entity,
		Item:       action.Item,
	}
	if req.GPSLat != nil && req.GPSLon != nil {
		resp.GPS = &GPSPoint{Lat: *req.GPSLat, Lon: *req.GPSLon}
	} else {
		resp.Message = "Token registered without GPS coordinates"
	}
	return resp, nil
}

// Nearby returns the tokens nearest to the request origin within the
// search radius, each annotated with distance and compass bearing for
// navigation.
func (s *Service) Nearby(ctx context.Context, req NearbyRequest) (*NearbyResponse, error) {
	if req.Lat < -90 || req.Lat > 90 {
		return nil, &FieldError{Field: "lat", Message: "lat must be between -90 and 90"}
	}
	if req.Lon < -180 || req.Lon > 180 {
		return nil, &FieldError{Field: "lon", Message: "lon must be between -180 and 180"}
	}
	limit := req.Limit
	if limit == 0 {
		limit = DefaultNearbyLimit
	}
	if limit < 1 || limit > MaxNearbyLimit {
		return nil, &FieldError{Field: "limit", Message: fmt.Sprintf("limit must be between 1 and %d", MaxNearbyLimit)}
	}
	radius := req.RadiusKM
	if radius == 0 {
		radius = DefaultRadiusKM
	}
	if radius < MinRadiusKM || radius > MaxRadiusKM {
		return nil, &FieldError{Field: "radius_km", Message: fmt.Sprintf("radius_km must be between %.1f and %.1f", MinRadiusKM, MaxRadiusKM)}
	}
	actionType, err := parseActionFilter(req.ActionType)
	if err != nil {
		return nil, err
	}
	if req.Temperament != "" && !isAllowedTemperament(req.Temperament) {
		return nil, &FieldError{Field: "mob_type", Message: "mob_type must be hostile, neutral, or passive"}
	}

	results, err := s.store.ListNearbyTokens(ctx, store.NearbyFilter{
		Lat:         req.Lat,
		Lon:         req.Lon,
		RadiusKM:    radius,
		Limit:       limit,
		ActionType:  actionType,
		Temperament: req.Temperament,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	items := make([]NearbyTokenItem, 0, len(results))
	for _, r := range results {
		if r.GPSLat == nil || r.GPSLon == nil {
			continue
		}
		item := NearbyTokenItem{
			TokenID:    r.ID,
			ActionType: r.ActionType,
			Position:   GPSPoint{Lat: *r.GPSLat, Lon: *r.GPSLon},
			DistanceM:  round1(r.DistanceM),
			Bearing:    round1(geo.Bearing(req.Lat, req.Lon, *r.GPSLat, *r.GPSLon)),
			WrittenBy:  r.WrittenBy,
			WrittenAt:  r.WrittenAt.UTC().Format(time.RFC3339),
		}
		switch r.ActionType {
		case store.ActionSummonEntity:
			if r.Entity != nil {
				item.Entity = *r.Entity
				item.Name = *r.Entity
				item.MobType = r.Temperament
				item.Rarity = r.Rarity
				item.ImageURL = r.ImageURL
				if r.DisplayName != nil {
					item.Name = *r.DisplayName
				}
			}
		case store.ActionGiveItem:
			if r.Item != nil {
				item.Item = *r.Item
				item.Name = *r.Item
				item.Rarity = r.Rarity
				item.ImageURL = r.ImageURL
				if r.DisplayName != nil {
					item.Name = *r.DisplayName
				}
			}
		case store.ActionSetTime:
			item.Name = "Time Change"
		}
		items = append(items, item)
	}

	return &NearbyResponse{
		Status:          "ok",
		CurrentPosition: GPSPoint{Lat: req.Lat, Lon: req.Lon},
		SearchRadiusKM:  radius,
		Count:           len(items),
		Tokens:          items,
	}, nil
}

// All lists tokens most-recently-written first, for diagnostics.
func (s *Service) All(ctx context.Context, limit int) (*ListResponse, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	items, err := s.store.ListTokens(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &ListResponse{Status: "ok", Count: len(items), Tokens: items}, nil
}

func validatePosition(lat, lon *float64) error {
	if (lat == nil) != (lon == nil) {
		missing := "gps_lat"
		if lat != nil {
			missing = "gps_lon"
		}
		return &FieldError{Field: missing, Message: "gps_lat and gps_lon must be supplied together"}
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 {
		return &FieldError{Field: "gps_lat", Message: "gps_lat must be between -90 and 90"}
	}
	if *lon < -180 || *lon > 180 {
		return &FieldError{Field: "gps_lon", Message: "gps_lon must be between -180 and 180"}
	}
	return nil
}

func parseActionFilter(v string) (store.ActionKind, error) {
	if v == "" {
		return "", nil
	}
	kind := store.ActionKind(v)
	if !kind.Valid() {
		return "", &FieldError{Field: "action_type", Message: "action_type must be summon_entity, give_item, or set_time"}
	}
	return kind, nil
}

func isAllowedTemperament(v string) bool {
	switch v {
	case "hostile", "neutral", "passive":
		return true
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
