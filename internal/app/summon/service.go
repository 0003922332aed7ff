package summon

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"summonlink/internal/app/tokens"
	"summonlink/internal/config"
	"summonlink/internal/dispatch"
	"summonlink/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// EventStore is the slice of the token store the event service needs.
type EventStore interface {
	InsertToken(ctx context.Context, tok store.NewToken) (string, error)
	InsertSummon(ctx context.Context, player, mobType string, gpsLat, gpsLon *float64, at time.Time) (string, error)
	InsertSummonBatch(ctx context.Context, records []store.SummonRecord) ([]string, error)
	LatestSummonFor(ctx context.Context, player, mobType string) (*store.SummonRecord, error)
}

// Service handles live NFC scan events and offline history sync. The
// debounce policy gates summon actions; give and time actions are never
// debounced.
type Service struct {
	store    EventStore
	disp     dispatch.Dispatcher
	policy   Policy
	strict   bool
	validate *validator.Validate
	now      func() time.Time
}

func NewService(st EventStore, d dispatch.Dispatcher, cfg config.DebounceConfig) *Service {
	return &Service{
		store:    st,
		disp:     d,
		policy:   NewPolicy(cfg),
		strict:   cfg.Strict,
		validate: newValidator(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// HandleEvent processes a scan end to end: parse the action, apply the
// debounce policy for summons, dispatch the game command, and record
// the token and (for summons) the history entry.
func (s *Service) HandleEvent(ctx context.Context, req EventRequest) (*EventResponse, error) {
	req.Player = strings.TrimSpace(req.Player)
	if req.Player == "" {
		return nil, &tokens.FieldError{Field: "player", Message: "player is required"}
	}
	action, err := tokens.ParseAction(req.Action)
	if err != nil {
		return nil, err
	}
	if err := validateOptionalPosition(req.GPSLat, req.GPSLon); err != nil {
		return nil, err
	}
	now := s.now()

	if action.Kind == store.ActionSummonEntity {
		prev, err := s.store.LatestSummonFor(ctx, req.Player, action.Entity)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			// History lookup failure must not block gameplay: allow.
			log.Warn().Err(err).
				Str("player", req.Player).
				Str("entity", action.Entity).
				Msg("debounce history lookup failed, allowing summon")
			prev = nil
		}
		if d := s.policy.Evaluate(action.Entity, prev, now); d.Blocked {
			return s.blockedResponse(req, action, d), nil
		}
	}

	return s.execute(ctx, req, action, now)
}

// blockedResponse shapes a debounce block. Strict mode tells the caller
// the truth; silent mode reports success while nothing is dispatched or
// written, so a tampering scanner learns nothing from the response.
func (s *Service) blockedResponse(req EventRequest, action tokens.Action, d Decision) *EventResponse {
	log.Info().
		Str("player", req.Player).
		Str("entity", action.Entity).
		Bool("strict", s.strict).
		Msg("summon blocked by debounce policy")
	if s.strict {
		return &EventResponse{
			Status:            "blocked",
			ActionType:        action.Kind,
			Entity:            action.Entity,
			Player:            req.Player,
			Reason:            d.Reason,
			Message:           d.Message,
			RetryAfterSeconds: d.RetryAfterSeconds,
		}
	}
	return &EventResponse{
		Status:     "success",
		ActionType: action.Kind,
		Entity:     action.Entity,
		Player:     req.Player,
		Dispatched: true,
		Stored:     true,
		Message:    fmt.Sprintf("Summoned %s for %s", action.Entity, req.Player),
	}
}

func (s *Service) execute(ctx context.Context, req EventRequest, action tokens.Action, now time.Time) (*EventResponse, error) {
	var command string
	switch action.Kind {
	case store.ActionSummonEntity:
		command = dispatch.SummonCommand(action.Entity, req.Player)
	case store.ActionGiveItem:
		command = dispatch.GiveCommand(req.Player, action.Item, 1)
	}

	dispatched := true
	if err := s.disp.Send(ctx, command); err != nil {
		dispatched = false
		log.Error().Err(err).Str("command", command).Msg("command dispatch failed")
	}

	resp := &EventResponse{
		Status:     "success",
		ActionType: action.Kind,
		Entity:     action.Entity,
		Item:       action.Item,
		Player:     req.Player,
		Dispatched: dispatched,
	}
	switch action.Kind {
	case store.ActionSummonEntity:
		resp.Message = fmt.Sprintf("Summoned %s for %s", action.Entity, req.Player)
	case store.ActionGiveItem:
		resp.Message = fmt.Sprintf("Gave %s to %s", action.Item, req.Player)
	}

	if action.Kind == store.ActionSummonEntity {
		summonID, err := s.store.InsertSummon(ctx, req.Player, action.Entity, req.GPSLat, req.GPSLon, now)
		if err != nil {
			log.Error().Err(err).Str("player", req.Player).Msg("summon history write failed")
		} else {
			resp.SummonID = summonID
		}
	}

	tok := store.NewToken{
		ActionType: action.Kind,
		GPSLat:     req.GPSLat,
		GPSLon:     req.GPSLon,
		WrittenBy:  req.Player,
		WrittenAt:  now,
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
	tokenID, err := s.store.InsertToken(ctx, tok)
	if err != nil {
		// A positioned token is the point of the write; losing it fails
		// the whole request. Positionless writes just report Stored=false.
		if req.GPSLat != nil {
			return nil, fmt.Errorf("%w: %v", tokens.ErrStorage, err)
		}
		log.Error().Err(err).Str("player", req.Player).Msg("token write failed")
	} else {
		resp.TokenID = tokenID
		resp.Stored = true
	}
	return resp, nil
}

var namedTimes = map[string]bool{
	"day": true, "night": true, "noon": true, "midnight": true,
}

// Time sets the world time and records the change as a set_time token.
func (s *Service) Time(ctx context.Context, req TimeRequest) (*TimeResponse, error) {
	value := strings.ToLower(strings.TrimSpace(req.Value))
	if value == "" {
		return nil, &tokens.FieldError{Field: "value", Message: "value is required"}
	}
	if !namedTimes[value] {
		ticks, err := strconv.Atoi(value)
		if err != nil || ticks < 0 || ticks > 24000 {
			return nil, &tokens.FieldError{Field: "value", Message: "value must be day, night, noon, midnight, or ticks 0-24000"}
		}
	}

	dispatched := true
	if err := s.disp.Send(ctx, dispatch.TimeCommand(value)); err != nil {
		dispatched = false
		log.Error().Err(err).Str("value", value).Msg("time command dispatch failed")
	}

	writtenBy := req.Player
	if writtenBy == "" {
		writtenBy = "server"
	}
	tokenID, err := s.store.InsertToken(ctx, store.NewToken{
		ActionType: store.ActionSetTime,
		WrittenBy:  writtenBy,
		WrittenAt:  s.now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("set_time token write failed")
	}
	return &TimeResponse{Status: "success", Value: value, TokenID: tokenID, Dispatched: dispatched}, nil
}

// Say broadcasts a server message to every player.
func (s *Service) Say(ctx context.Context, req SayRequest) (*ConsoleResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, &tokens.FieldError{Field: "message", Message: "message is required"}
	}
	return s.broadcast(ctx, dispatch.SayCommand(message))
}

// Chat broadcasts a message attributed to a sender.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (*ConsoleResponse, error) {
	sender := strings.TrimSpace(req.Sender)
	if sender == "" {
		return nil, &tokens.FieldError{Field: "sender", Message: "sender is required"}
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, &tokens.FieldError{Field: "message", Message: "message is required"}
	}
	return s.broadcast(ctx, dispatch.ChatCommand(sender, message))
}

func (s *Service) broadcast(ctx context.Context, command string) (*ConsoleResponse, error) {
	if err := s.disp.Send(ctx, command); err != nil {
		log.Error().Err(err).Str("command", command).Msg("broadcast dispatch failed")
		return nil, fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	return &ConsoleResponse{Status: "ok", Executed: command}, nil
}

// Sync replays one offline summon into history.
func (s *Service) Sync(ctx context.Context, rec SyncRecord) (*SyncResponse, error) {
	if fields := s.recordViolations(rec, ""); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	at, _ := parseSyncTime(rec.Timestamp)
	id, err := s.store.InsertSummon(ctx, rec.Player, rec.MobType, rec.GPSLat, rec.GPSLon, at)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tokens.ErrStorage, err)
	}
	return &SyncResponse{Status: "ok", SummonID: id}, nil
}

// SyncBatch replays several offline summons atomically. Every record is
// validated first and all violations come back together; nothing is
// written unless the whole batch is clean.
func (s *Service) SyncBatch(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	if len(req.Records) == 0 {
		return nil, &ValidationError{Fields: []tokens.FieldError{
			{Field: "records", Message: "records must contain at least one entry"},
		}}
	}
	var fields []tokens.FieldError
	for i, rec := range req.Records {
		fields = append(fields, s.recordViolations(rec, fmt.Sprintf("records[%d].", i))...)
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	records := make([]store.SummonRecord, len(req.Records))
	for i, rec := range req.Records {
		at, _ := parseSyncTime(rec.Timestamp)
		records[i] = store.SummonRecord{
			Player:    rec.Player,
			MobType:   rec.MobType,
			GPSLat:    rec.GPSLat,
			GPSLon:    rec.GPSLon,
			CreatedAt: at,
		}
	}
	ids, err := s.store.InsertSummonBatch(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tokens.ErrStorage, err)
	}
	log.Info().Int("count", len(ids)).Msg("summon batch synced")
	return &BatchResponse{Status: "ok", Count: len(ids), SummonIDs: ids}, nil
}

func (s *Service) recordViolations(rec SyncRecord, prefix string) []tokens.FieldError {
	err := s.validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []tokens.FieldError{{Field: prefix + "record", Message: err.Error()}}
	}
	out := make([]tokens.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, tokens.FieldError{
			Field:   prefix + fe.Field(),
			Message: violationMessage(fe),
		})
	}
	return out
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	case "datetime":
		return fe.Field() + " must be RFC3339"
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

func parseSyncTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}

func validateOptionalPosition(lat, lon *float64) error {
	if (lat == nil) != (lon == nil) {
		missing := "gps_lat"
		if lat != nil {
			missing = "gps_lon"
		}
		return &tokens.FieldError{Field: missing, Message: "gps_lat and gps_lon must be supplied together"}
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 {
		return &tokens.FieldError{Field: "gps_lat", Message: "gps_lat must be between -90 and 90"}
	}
	if *lon < -180 || *lon > 180 {
		return &tokens.FieldError{Field: "gps_lon", Message: "gps_lon must be between -180 and 180"}
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
