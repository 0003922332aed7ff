package tokens

import (
	"strings"

	"summonlink/internal/store"
)

const givePrefix = "give_"

// Action is the typed result of parsing a free-text action field from a
// scanned tag. Exactly one of Entity/Item is set, matching Kind.
type Action struct {
	Kind   store.ActionKind
	Entity string
	Item   string
}

// ParseAction splits a raw action string into its kind and identifier.
// "give_diamond_sword" gives the item diamond_sword; anything else
// summons the named entity.
func ParseAction(raw string) (Action, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Action{}, &FieldError{Field: "action", Message: "action cannot be empty"}
	}
	if strings.HasPrefix(raw, givePrefix) {
		item := raw[len(givePrefix):]
		if item == "" {
			return Action{}, &FieldError{Field: "action", Message: "item name missing after give_ prefix"}
		}
		return Action{Kind: store.ActionGiveItem, Item: item}, nil
	}
	return Action{Kind: store.ActionSummonEntity, Entity: raw}, nil
}
