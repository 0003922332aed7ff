package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"summonlink/internal/store"
	"summonlink/internal/testutil"
)

func TestLatestSummonForCaseInsensitive(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	if _, err := st.InsertSummon(ctx, "Steve", "Creeper", nil, nil, at); err != nil {
		t.Fatalf("insert summon: %v", err)
	}

	rec, err := st.LatestSummonFor(ctx, "steve", "CREEPER")
	if err != nil {
		t.Fatalf("case-insensitive lookup failed: %v", err)
	}
	if rec.Player != "Steve" || rec.MobType != "Creeper" {
		t.Fatalf("rec = %+v, want original casing preserved", rec)
	}
	if !rec.CreatedAt.Equal(at) {
		t.Errorf("created_at = %v, want %v", rec.CreatedAt, at)
	}
}

func TestLatestSummonForPicksMostRecent(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	if _, err := st.InsertSummon(ctx, "steve", "creeper", nil, nil, base.Add(-time.Hour)); err != nil {
		t.Fatalf("insert summon: %v", err)
	}
	latest, err := st.InsertSummon(ctx, "steve", "creeper", nil, nil, base)
	if err != nil {
		t.Fatalf("insert summon: %v", err)
	}
	// Other player and other mob must not shadow the lookup.
	if _, err := st.InsertSummon(ctx, "alex", "creeper", nil, nil, base.Add(time.Hour)); err != nil {
		t.Fatalf("insert summon: %v", err)
	}
	if _, err := st.InsertSummon(ctx, "steve", "zombie", nil, nil, base.Add(time.Hour)); err != nil {
		t.Fatalf("insert summon: %v", err)
	}

	rec, err := st.LatestSummonFor(ctx, "steve", "creeper")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.ID != latest {
		t.Fatalf("latest = %s, want %s", rec.ID, latest)
	}
}

func TestLatestSummonForNotFound(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()

	_, err := st.LatestSummonFor(context.Background(), "steve", "creeper")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListSummonsPlayerFilter(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	for _, p := range []string{"steve", "steve", "alex"} {
		if _, err := st.InsertSummon(ctx, p, "creeper", nil, nil, at); err != nil {
			t.Fatalf("insert summon: %v", err)
		}
		at = at.Add(time.Minute)
	}

	all, err := st.ListSummons(ctx, "", 10)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Player != "alex" {
		t.Errorf("first = %q, want most recent (alex)", all[0].Player)
	}

	filtered, err := st.ListSummons(ctx, "STEVE", 10)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("filtered len = %d, want 2", len(filtered))
	}
}

func TestInsertSummonBatch(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	ids, err := st.InsertSummonBatch(ctx, []store.SummonRecord{
		{Player: "steve", MobType: "creeper", CreatedAt: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)},
		{Player: "alex", MobType: "zombie"},
	})
	if err != nil {
		t.Fatalf("batch insert: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2", ids)
	}

	all, err := st.ListSummons(ctx, "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
}

func TestPurgeSummons(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := st.InsertSummon(ctx, "steve", "creeper", nil, nil, time.Time{}); err != nil {
			t.Fatalf("insert summon: %v", err)
		}
	}
	deleted, err := st.PurgeSummons(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("deleted = %d, want 3", deleted)
	}
	if _, err := st.LatestSummonFor(ctx, "steve", "creeper"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("history survived purge: %v", err)
	}
}
