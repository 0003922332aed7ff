package tokens

import "summonlink/internal/store"

type GPSPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RegisterRequest carries a token write from a programming device. The
// position is optional, but lat and lon must be supplied together.
type RegisterRequest struct {
	Action    string   `json:"action"`
	WrittenBy string   `json:"written_by"`
	GPSLat    *float64 `json:"gps_lat,omitempty"`
	GPSLon    *float64 `json:"gps_lon,omitempty"`
	DeviceID  string   `json:"device_id,omitempty"`
	TagUID    string   `json:"tag_uid,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
}

type RegisterResponse struct {
	Status     string           `json:"status"`
	TokenID    string           `json:"token_id"`
	ActionType store.ActionKind `json:"action_type"`
	Entity     string           `json:"entity,omitempty"`
	Item       string           `json:"item,omitempty"`
	GPS        *GPSPoint        `json:"gps,omitempty"`
	Message    string           `json:"message,omitempty"`
}

// NearbyRequest bounds a discovery query. Zero Limit and RadiusKM take
// the documented defaults (10 results, 5 km).
type NearbyRequest struct {
	Lat         float64
	Lon         float64
	Limit       int
	RadiusKM    float64
	ActionType  string
	Temperament string
}

type NearbyTokenItem struct {
	TokenID    string           `json:"token_id"`
	ActionType store.ActionKind `json:"action_type"`
	Position   GPSPoint         `json:"position"`
	DistanceM  float64          `json:"distance_m"`
	Bearing    float64          `json:"bearing"`
	WrittenBy  string           `json:"written_by"`
	WrittenAt  string           `json:"written_at,omitempty"`

	// Kind-specific display fields joined from the catalog.
	Entity   string  `json:"entity,omitempty"`
	Item     string  `json:"item,omitempty"`
	MobType  *string `json:"mob_type,omitempty"`
	Name     string  `json:"name,omitempty"`
	Rarity   *string `json:"rarity,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

type NearbyResponse struct {
	Status          string            `json:"status"`
	CurrentPosition GPSPoint          `json:"current_position"`
	SearchRadiusKM  float64           `json:"search_radius_km"`
	Count           int               `json:"count"`
	Tokens          []NearbyTokenItem `json:"tokens"`
}

type ListResponse struct {
	Status string        `json:"status"`
	Count  int           `json:"count"`
	Tokens []store.Token `json:"tokens"`
}
