package store

import "time"

// ActionKind tags what a written NFC token does when scanned. Exactly one
// of the entity/item fields is populated per kind; SetTime carries neither.
type ActionKind string

const (
	ActionSummonEntity ActionKind = "summon_entity"
	ActionGiveItem     ActionKind = "give_item"
	ActionSetTime      ActionKind = "set_time"
)

func (k ActionKind) Valid() bool {
	switch k {
	case ActionSummonEntity, ActionGiveItem, ActionSetTime:
		return true
	}
	return false
}

// Token is an immutable record of a written NFC action at a point in
// space and time. Tokens without a position never appear in nearby
// queries. Tokens are write-once; there is no update path.
type Token struct {
	ID         string     `json:"token_id"`
	ActionType ActionKind `json:"action_type"`
	Entity     *string    `json:"entity,omitempty"`
	Item       *string    `json:"item,omitempty"`
	GPSLat     *float64   `json:"gps_lat,omitempty"`
	GPSLon     *float64   `json:"gps_lon,omitempty"`
	WrittenBy  string     `json:"written_by"`
	DeviceID   *string    `json:"device_id,omitempty"`
	TagUID     *string    `json:"tag_uid,omitempty"`
	WrittenAt  time.Time  `json:"written_at"`
}

// NewToken carries the caller-supplied fields for a token insert.
// WrittenAt defaults to the insertion time when zero.
type NewToken struct {
	ActionType ActionKind
	Entity     *string
	Item       *string
	GPSLat     *float64
	GPSLon     *float64
	WrittenBy  string
	DeviceID   *string
	TagUID     *string
	WrittenAt  time.Time
}

// NearbyToken is a token joined with its computed distance and the
// read-only catalog metadata for display. Catalog fields are nil when
// the entity/item has no catalog entry.
type NearbyToken struct {
	Token
	DistanceM   float64
	DisplayName *string
	Temperament *string
	Rarity      *string
	ImageURL    *string
}

// NearbyFilter bounds a nearest-token query. RadiusKM is a strict
// cutoff: tokens farther than the radius never appear in results.
// Temperament only restricts summon_entity rows; other kinds pass
// through unfiltered.
type NearbyFilter struct {
	Lat         float64
	Lon         float64
	RadiusKM    float64
	Limit       int
	ActionType  ActionKind
	Temperament string
}

// SummonRecord is an append-only log entry of an executed summon,
// consumed by the debounce policy as history.
type SummonRecord struct {
	ID        string    `json:"id"`
	Player    string    `json:"player"`
	MobType   string    `json:"mob_type"`
	GPSLat    *float64  `json:"gps_lat,omitempty"`
	GPSLon    *float64  `json:"gps_lon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// GameObject is a read-only catalog row keyed by the entity or item
// identifier string.
type GameObject struct {
	ObjectID    string  `json:"object_id"`
	Kind        string  `json:"kind"`
	DisplayName string  `json:"display_name"`
	Temperament *string `json:"temperament,omitempty"`
	Rarity      *string `json:"rarity,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// DeviceLocation is a GPS fix reported by a scanning device.
type DeviceLocation struct {
	ID         string    `json:"id"`
	DeviceID   string    `json:"device_id"`
	Player     *string   `json:"player,omitempty"`
	GPSLat     float64   `json:"gps_lat"`
	GPSLon     float64   `json:"gps_lon"`
	GPSAlt     *float64  `json:"gps_alt,omitempty"`
	GPSSpeed   *float64  `json:"gps_speed,omitempty"`
	Satellites *int      `json:"satellites,omitempty"`
	HDOP       *float64  `json:"hdop,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}
