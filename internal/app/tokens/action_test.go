package tokens

import (
	"testing"

	"summonlink/internal/store"
)

func TestParseAction(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		wantKind   store.ActionKind
		wantEntity string
		wantItem   string
		wantField  string
	}{
		{name: "give prefix yields item", raw: "give_diamond_sword", wantKind: store.ActionGiveItem, wantItem: "diamond_sword"},
		{name: "bare name summons entity", raw: "creeper", wantKind: store.ActionSummonEntity, wantEntity: "creeper"},
		{name: "entity containing give", raw: "giver_golem", wantKind: store.ActionSummonEntity, wantEntity: "giver_golem"},
		{name: "whitespace trimmed", raw: "  zombie \n", wantKind: store.ActionSummonEntity, wantEntity: "zombie"},
		{name: "empty rejected", raw: "", wantField: "action"},
		{name: "whitespace only rejected", raw: "   ", wantField: "action"},
		{name: "bare give prefix rejected", raw: "give_", wantField: "action"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAction(tc.raw)
			if tc.wantField != "" {
				fe, ok := AsFieldError(err)
				if !ok {
					t.Fatalf("ParseAction(%q) err = %v, want FieldError", tc.raw, err)
				}
				if fe.Field != tc.wantField {
					t.Fatalf("field = %q, want %q", fe.Field, tc.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAction(%q) err = %v", tc.raw, err)
			}
			if got.Kind != tc.wantKind {
				t.Errorf("kind = %q, want %q", got.Kind, tc.wantKind)
			}
			if got.Entity != tc.wantEntity {
				t.Errorf("entity = %q, want %q", got.Entity, tc.wantEntity)
			}
			if got.Item != tc.wantItem {
				t.Errorf("item = %q, want %q", got.Item, tc.wantItem)
			}
		})
	}
}
