package summon

import "summonlink/internal/store"

// EventRequest is a live NFC scan: the tag's action text plus the
// scanning player, with an optional GPS fix from the device.
type EventRequest struct {
	Action   string   `json:"action"`
	Player   string   `json:"player"`
	GPSLat   *float64 `json:"gps_lat,omitempty"`
	GPSLon   *float64 `json:"gps_lon,omitempty"`
	DeviceID string   `json:"device_id,omitempty"`
	TagUID   string   `json:"tag_uid,omitempty"`
}

// EventResponse reports both halves of event handling independently:
// whether the command reached the game server (Dispatched) and whether
// the token write landed (Stored).
type EventResponse struct {
	Status     string           `json:"status"`
	ActionType store.ActionKind `json:"action_type,omitempty"`
	Entity     string           `json:"entity,omitempty"`
	Item       string           `json:"item,omitempty"`
	Player     string           `json:"player,omitempty"`
	TokenID    string           `json:"token_id,omitempty"`
	SummonID   string           `json:"summon_id,omitempty"`
	Dispatched bool             `json:"dispatched"`
	Stored     bool             `json:"stored"`
	Message    string           `json:"message,omitempty"`

	// Set only on a strict debounce rejection.
	Reason            string `json:"reason,omitempty"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty"`
}

// TimeRequest sets the world time to a named moment or a tick count.
type TimeRequest struct {
	Value  string `json:"value"`
	Player string `json:"player,omitempty"`
}

type TimeResponse struct {
	Status     string `json:"status"`
	Value      string `json:"value"`
	TokenID    string `json:"token_id,omitempty"`
	Dispatched bool   `json:"dispatched"`
}

// SayRequest broadcasts a server message to every player.
type SayRequest struct {
	Message string `json:"message"`
}

// ChatRequest broadcasts a message attributed to a sender, mimicking
// player chat.
type ChatRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// ConsoleResponse echoes the console command a broadcast produced.
type ConsoleResponse struct {
	Status   string `json:"status"`
	Executed string `json:"executed"`
}

// SyncRecord is a summon executed offline on a device, replayed into
// history after the fact. Validation tags drive the collected-violation
// reporting on the sync endpoints.
type SyncRecord struct {
	Player    string   `json:"player" validate:"required"`
	MobType   string   `json:"mob_type" validate:"required"`
	GPSLat    *float64 `json:"gps_lat" validate:"omitempty,gte=-90,lte=90"`
	GPSLon    *float64 `json:"gps_lon" validate:"omitempty,gte=-180,lte=180"`
	Timestamp string   `json:"timestamp" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type SyncResponse struct {
	Status   string `json:"status"`
	SummonID string `json:"summon_id"`
}

// BatchRequest replays several offline summons at once. The batch is
// all-or-nothing: one invalid record rejects every record.
type BatchRequest struct {
	Records []SyncRecord `json:"records" validate:"required,min=1,dive"`
}

type BatchResponse struct {
	Status    string   `json:"status"`
	Count     int      `json:"count"`
	SummonIDs []string `json:"summon_ids"`
}
