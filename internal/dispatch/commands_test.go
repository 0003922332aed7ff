package dispatch

import "testing"

func TestSummonCommand(t *testing.T) {
	got := SummonCommand("creeper", "steve")
	want := "execute at steve run summon creeper"
	if got != want {
		t.Fatalf("SummonCommand() = %q, want %q", got, want)
	}
}

func TestGiveCommand(t *testing.T) {
	cases := []struct {
		name  string
		item  string
		count int
		want  string
	}{
		{name: "explicit count", item: "diamond_sword", count: 3, want: "give steve diamond_sword 3"},
		{name: "zero count clamps to one", item: "golden_apple", count: 0, want: "give steve golden_apple 1"},
		{name: "negative count clamps to one", item: "golden_apple", count: -5, want: "give steve golden_apple 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GiveCommand("steve", tc.item, tc.count); got != tc.want {
				t.Fatalf("GiveCommand() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSayCommand(t *testing.T) {
	if got, want := SayCommand("server restarting soon"), "say server restarting soon"; got != want {
		t.Fatalf("SayCommand() = %q, want %q", got, want)
	}
}

func TestChatCommand(t *testing.T) {
	got := ChatCommand("steve", "anyone near the village?")
	want := "say <steve> anyone near the village?"
	if got != want {
		t.Fatalf("ChatCommand() = %q, want %q", got, want)
	}
}

func TestTimeCommand(t *testing.T) {
	if got, want := TimeCommand("night"), "time set night"; got != want {
		t.Fatalf("TimeCommand() = %q, want %q", got, want)
	}
	if got, want := TimeCommand("13000"), "time set 13000"; got != want {
		t.Fatalf("TimeCommand() = %q, want %q", got, want)
	}
}
