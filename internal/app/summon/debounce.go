package summon

import (
	"fmt"
	"time"

	"summonlink/internal/config"
	"summonlink/internal/store"
)

// ReasonDuplicate is the machine-readable reason attached to every
// debounce block, regardless of mode.
const ReasonDuplicate = "duplicate_summon"

// Decision is the transient outcome of a policy evaluation. It is never
// persisted.
type Decision struct {
	Blocked           bool
	Reason            string
	Message           string
	RetryAfterSeconds int
}

// Policy decides whether a summon repeats too soon. It is a pure
// function over caller-supplied history: the policy itself performs no
// I/O and holds no state, so concurrent evaluations never contend.
//
// Evaluation is read-then-decide with no lock. Two concurrent summons
// for the same player and mob within the same instant may both be
// allowed; that race is accepted rather than serialized.
type Policy struct {
	Mode   string
	Window time.Duration
}

func NewPolicy(cfg config.DebounceConfig) Policy {
	return Policy{
		Mode:   cfg.Mode,
		Window: time.Duration(cfg.WindowSeconds) * time.Second,
	}
}

// Evaluate checks the most recent matching history record (nil when the
// player has never summoned this mob) against the configured mode.
func (p Policy) Evaluate(mob string, prev *store.SummonRecord, now time.Time) Decision {
	if prev == nil || p.Mode == config.DebounceNever {
		return Decision{}
	}
	switch p.Mode {
	case config.DebounceOnce:
		return Decision{
			Blocked: true,
			Reason:  ReasonDuplicate,
			Message: fmt.Sprintf("%s was already summoned on %s", mob, prev.CreatedAt.UTC().Format(time.RFC3339)),
		}
	case config.DebounceTimeWindow:
		elapsed := now.Sub(prev.CreatedAt)
		if elapsed >= p.Window {
			return Decision{}
		}
		remaining := int((p.Window - elapsed).Seconds())
		return Decision{
			Blocked:           true,
			Reason:            ReasonDuplicate,
			Message:           fmt.Sprintf("%s was summoned %ds ago, wait %ds", mob, int(elapsed.Seconds()), remaining),
			RetryAfterSeconds: remaining,
		}
	}
	return Decision{}
}
