package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetGameObject looks up catalog metadata for an entity or item
// identifier. Returns ErrNotFound for unknown identifiers.
func (s *Store) GetGameObject(ctx context.Context, objectID string) (*GameObject, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT object_id, kind, display_name, temperament, rarity, image_url
		FROM game_objects WHERE object_id = $1
	`, objectID)
	var g GameObject
	if err := row.Scan(&g.ObjectID, &g.Kind, &g.DisplayName, &g.Temperament, &g.Rarity, &g.ImageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get game object: %w", err)
	}
	return &g, nil
}

// EnsureDefaultGameObjects seeds a minimal catalog so fresh databases
// return display metadata for the common mobs and items. Existing rows
// are left untouched.
func (s *Store) EnsureDefaultGameObjects(ctx context.Context) error {
	defaults := []GameObject{
		{ObjectID: "creeper", Kind: "mob", DisplayName: "Creeper", Temperament: ptr("hostile"), Rarity: ptr("common"), ImageURL: ptr("/mob/creeper.png")},
		{ObjectID: "zombie", Kind: "mob", DisplayName: "Zombie", Temperament: ptr("hostile"), Rarity: ptr("common"), ImageURL: ptr("/mob/zombie.png")},
		{ObjectID: "skeleton", Kind: "mob", DisplayName: "Skeleton", Temperament: ptr("hostile"), Rarity: ptr("common"), ImageURL: ptr("/mob/skeleton.png")},
		{ObjectID: "piglin", Kind: "mob", DisplayName: "Piglin", Temperament: ptr("neutral"), Rarity: ptr("uncommon"), ImageURL: ptr("/mob/piglin.png")},
		{ObjectID: "sniffer", Kind: "mob", DisplayName: "Sniffer", Temperament: ptr("passive"), Rarity: ptr("rare"), ImageURL: ptr("/mob/sniffer.gif")},
		{ObjectID: "diamond_sword", Kind: "item", DisplayName: "Diamond Sword", Rarity: ptr("rare"), ImageURL: ptr("/items/diamond_sword.png")},
		{ObjectID: "golden_apple", Kind: "item", DisplayName: "Golden Apple", Rarity: ptr("rare"), ImageURL: ptr("/items/golden_apple.png")},
	}
	for _, g := range defaults {
		_, err := s.Pool.Exec(ctx, `
			INSERT INTO game_objects (object_id, kind, display_name, temperament, rarity, image_url)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (object_id) DO NOTHING
		`, g.ObjectID, g.Kind, g.DisplayName, g.Temperament, g.Rarity, g.ImageURL)
		if err != nil {
			return fmt.Errorf("seed game objects: %w", err)
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
