package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"summonlink/internal/store"
	"summonlink/internal/testutil"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func insertPositioned(t *testing.T, st *store.Store, entity string, lat, lon float64, writtenAt time.Time) string {
	t.Helper()
	id, err := st.InsertToken(context.Background(), store.NewToken{
		ActionType: store.ActionSummonEntity,
		Entity:     sptr(entity),
		GPSLat:     fptr(lat),
		GPSLon:     fptr(lon),
		WrittenBy:  "steve",
		WrittenAt:  writtenAt,
	})
	if err != nil {
		t.Fatalf("insert token: %v", err)
	}
	return id
}

func TestInsertTokenConsistencyChecks(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	cases := []struct {
		name    string
		tok     store.NewToken
		wantErr error
	}{
		{
			name:    "summon without entity",
			tok:     store.NewToken{ActionType: store.ActionSummonEntity, WrittenBy: "steve"},
			wantErr: store.ErrInconsistentAction,
		},
		{
			name:    "give with entity",
			tok:     store.NewToken{ActionType: store.ActionGiveItem, Entity: sptr("creeper"), Item: sptr("apple"), WrittenBy: "steve"},
			wantErr: store.ErrInconsistentAction,
		},
		{
			name:    "set_time with item",
			tok:     store.NewToken{ActionType: store.ActionSetTime, Item: sptr("apple"), WrittenBy: "steve"},
			wantErr: store.ErrInconsistentAction,
		},
		{
			name:    "unknown kind",
			tok:     store.NewToken{ActionType: "teleport", WrittenBy: "steve"},
			wantErr: store.ErrInconsistentAction,
		},
		{
			name: "latitude out of range",
			tok: store.NewToken{
				ActionType: store.ActionSummonEntity, Entity: sptr("creeper"),
				GPSLat: fptr(91), GPSLon: fptr(0), WrittenBy: "steve",
			},
			wantErr: store.ErrInvalidPosition,
		},
		{
			name: "half-supplied position",
			tok: store.NewToken{
				ActionType: store.ActionSummonEntity, Entity: sptr("creeper"),
				GPSLat: fptr(45), WrittenBy: "steve",
			},
			wantErr: store.ErrInvalidPosition,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := st.InsertToken(ctx, tc.tok)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestListTokensOrdering(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	old := insertPositioned(t, st, "zombie", 40, -105, base.Add(-time.Hour))
	newest := insertPositioned(t, st, "creeper", 40, -105, base)

	got, err := st.ListTokens(ctx, 10)
	if err != nil {
		t.Fatalf("list tokens: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != newest || got[1].ID != old {
		t.Fatalf("order = [%s %s], want newest first", got[0].ID, got[1].ID)
	}
}

func TestListNearbyTokens(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()
	if err := st.EnsureDefaultGameObjects(ctx); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	// Center at (40, -105); 0.001 deg of latitude is ~111 m.
	const lat, lon = 40.0, -105.0
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	near := insertPositioned(t, st, "creeper", lat+0.001, lon, now)       // ~111 m
	mid := insertPositioned(t, st, "sniffer", lat+0.01, lon, now)         // ~1.1 km
	far := insertPositioned(t, st, "zombie", lat+0.03, lon, now)          // ~3.3 km
	insertPositioned(t, st, "skeleton", lat+0.2, lon, now)                // ~22 km, outside radius

	// Positionless token must never appear in results.
	if _, err := st.InsertToken(ctx, store.NewToken{
		ActionType: store.ActionSummonEntity, Entity: sptr("piglin"), WrittenBy: "steve",
	}); err != nil {
		t.Fatalf("insert positionless: %v", err)
	}

	t.Run("orders by distance within radius", func(t *testing.T) {
		got, err := st.ListNearbyTokens(ctx, store.NearbyFilter{Lat: lat, Lon: lon, RadiusKM: 5, Limit: 10})
		if err != nil {
			t.Fatalf("nearby: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3 (radius cutoff + positionless excluded)", len(got))
		}
		wantOrder := []string{near, mid, far}
		for i, id := range wantOrder {
			if got[i].ID != id {
				t.Fatalf("result[%d] = %s, want %s", i, got[i].ID, id)
			}
		}
		if got[0].DistanceM < 100 || got[0].DistanceM > 125 {
			t.Errorf("nearest distance = %.1f m, want ~111 m", got[0].DistanceM)
		}
	})

	t.Run("limit truncates", func(t *testing.T) {
		got, err := st.ListNearbyTokens(ctx, store.NearbyFilter{Lat: lat, Lon: lon, RadiusKM: 5, Limit: 1})
		if err != nil {
			t.Fatalf("nearby: %v", err)
		}
		if len(got) != 1 || got[0].ID != near {
			t.Fatalf("got %d results, want only the nearest", len(got))
		}
	})

	t.Run("joins catalog metadata", func(t *testing.T) {
		got, err := st.ListNearbyTokens(ctx, store.NearbyFilter{Lat: lat, Lon: lon, RadiusKM: 5, Limit: 1})
		if err != nil {
			t.Fatalf("nearby: %v", err)
		}
		if got[0].DisplayName == nil || got[0].Temperament == nil {
			t.Fatalf("catalog fields missing: %+v", got[0])
		}
		if *got[0].Temperament != "hostile" {
			t.Errorf("creeper temperament = %q, want hostile", *got[0].Temperament)
		}
	})

	t.Run("temperament filter restricts summons only", func(t *testing.T) {
		got, err := st.ListNearbyTokens(ctx, store.NearbyFilter{
			Lat: lat, Lon: lon, RadiusKM: 5, Limit: 10, Temperament: "hostile",
		})
		if err != nil {
			t.Fatalf("nearby: %v", err)
		}
		for _, n := range got {
			if n.ID == mid {
				t.Fatalf("passive sniffer returned under hostile filter")
			}
		}

		// A give_item token passes through a temperament filter untouched.
		itemID, err := st.InsertToken(ctx, store.NewToken{
			ActionType: store.ActionGiveItem, Item: sptr("golden_apple"),
			GPSLat: fptr(lat + 0.002), GPSLon: fptr(lon), WrittenBy: "steve",
		})
		if err != nil {
			t.Fatalf("insert item token: %v", err)
		}
		got, err = st.ListNearbyTokens(ctx, store.NearbyFilter{
			Lat: lat, Lon: lon, RadiusKM: 5, Limit: 10, Temperament: "hostile",
		})
		if err != nil {
			t.Fatalf("nearby: %v", err)
		}
		found := false
		for _, n := range got {
			if n.ID == itemID {
				found = true
			}
		}
		if !found {
			t.Fatal("give_item token filtered out by temperament filter")
		}
	})

	t.Run("action type filter", func(t *testing.T) {
		got, err := st.ListNearbyTokens(ctx, store.NearbyFilter{
			Lat: lat, Lon: lon, RadiusKM: 5, Limit: 10, ActionType: store.ActionGiveItem,
		})
		if err != nil {
			t.Fatalf("nearby: %v", err)
		}
		for _, n := range got {
			if n.ActionType != store.ActionGiveItem {
				t.Fatalf("filter leaked %s token %s", n.ActionType, n.ID)
			}
		}
	})

	t.Run("tie-break prefers newer token", func(t *testing.T) {
		older := insertPositioned(t, st, "creeper", lat-0.001, lon, now.Add(-time.Hour))
		newer := insertPositioned(t, st, "zombie", lat-0.001, lon, now)

		got, err := st.ListNearbyTokens(ctx, store.NearbyFilter{Lat: lat, Lon: lon, RadiusKM: 5, Limit: 10})
		if err != nil {
			t.Fatalf("nearby: %v", err)
		}
		newerIdx, olderIdx := -1, -1
		for i, n := range got {
			switch n.ID {
			case newer:
				newerIdx = i
			case older:
				olderIdx = i
			}
		}
		if newerIdx == -1 || olderIdx == -1 {
			t.Fatalf("tie-break tokens missing from results")
		}
		if newerIdx > olderIdx {
			t.Fatalf("newer token ranked %d after older %d at equal distance", newerIdx, olderIdx)
		}
	})
}
