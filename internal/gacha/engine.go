package gacha

import (
	"fmt"
	"time"
)

// Rules are the draw constants and the always-up policy per pool kind.
type Rules struct {
	MaxPity5  int     // hard pity for tier 5
	MaxPity4  int     // hard pity for tier 4
	BaseProb5 float64 // per-draw tier-5 probability below hard pity
	BaseProb4 float64 // per-draw tier-4 probability below hard pity

	CharacterAlwaysUp bool // character pools never go off-banner at tier 5
	ItemAlwaysUp      bool // item pools never go off-banner at tier 5
}

// DefaultRules returns the stock rules: 80/10 hard pity, 0.8% and 6% base
// rates, 50/50 on character pools, guaranteed up on item pools.
func DefaultRules() Rules {
	return Rules{
		MaxPity5:          80,
		MaxPity4:          10,
		BaseProb5:         0.008,
		BaseProb4:         0.06,
		CharacterAlwaysUp: false,
		ItemAlwaysUp:      true,
	}
}

// alwaysUp5 derives the tier-5 no-off-banner flag for a pool kind.
func (r Rules) alwaysUp5(k Kind) bool {
	if k == KindCharacter {
		return r.CharacterAlwaysUp
	}
	return r.ItemAlwaysUp
}

// PityState is everything a session needs to resume where it stopped.
type PityState struct {
	Pity5    int  `json:"pity5" yaml:"pity5"`
	Pity4    int  `json:"pity4" yaml:"pity4"`
	ForceUp5 bool `json:"force_up5" yaml:"force_up5"`
	ForceUp4 bool `json:"force_up4" yaml:"force_up4"`
}

// Engine resolves draws against one reward table.
// It owns mutable pity state and is not safe for concurrent use; callers
// serialize access per session.
type Engine struct {
	table RewardTable
	rules Rules
	rng   RandomSource

	pity5 hardPity
	pity4 hardPity
	up5   upGuarantee
	up4   upGuarantee

	now func() time.Time
}

// NewEngine validates table and rules and returns an engine seeded with the
// inherited state. rng == nil uses the crypto-backed default source.
func NewEngine(table RewardTable, rules Rules, state PityState, rng RandomSource) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if ok, reason := ValidateTable(table); !ok {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidPool, table.Name, reason)
	}
	alwaysUp := rules.alwaysUp5(table.Kind)
	if !alwaysUp && len(table.Tier5.Normal) == 0 {
		return nil, fmt.Errorf("%w: %s: off-banner tier-5 results enabled but tier5.normal is empty", ErrInvalidPool, table.Name)
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Engine{
		table: table,
		rules: rules,
		rng:   rng,
		pity5: hardPity{Max: rules.MaxPity5, Count: clampCount(state.Pity5, rules.MaxPity5)},
		pity4: hardPity{Max: rules.MaxPity4, Count: clampCount(state.Pity4, rules.MaxPity4)},
		up5:   upGuarantee{Forced: state.ForceUp5, Always: alwaysUp},
		up4:   upGuarantee{Forced: state.ForceUp4},
		now:   time.Now,
	}, nil
}

// Draw performs n draws. n == 0 returns an empty result and leaves the state
// untouched; n < 0 is rejected.
func (e *Engine) Draw(n int) (Result, error) {
	if n < 0 {
		return Result{}, fmt.Errorf("%w: draw count must be >= 0, got %d", ErrInvalidArgument, n)
	}
	out := make([]Outcome, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, e.step())
	}
	return NewResult(e.table.Name, out, e.now()), nil
}

// step resolves one draw unit. A single roll feeds both the tier-5 and the
// tier-4 probability checks.
func (e *Engine) step() Outcome {
	r := e.rng.Float64()

	if e.pity5.step(r, e.rules.BaseProb5) {
		if e.up5.resolve(e.rng) {
			return Outcome{Item: e.table.Tier5.Up, Tier: Tier5}
		}
		return Outcome{Item: pick(e.table.Tier5.Normal, e.rng), Tier: Tier5}
	}

	if e.pity4.step(r, e.rules.BaseProb4) {
		if e.up4.resolve(e.rng) {
			return Outcome{Item: pick(e.table.Tier4.Up, e.rng), Tier: Tier4}
		}
		return Outcome{Item: pick(e.table.Tier4.Normal, e.rng), Tier: Tier4}
	}

	return Outcome{Item: pick(e.table.Tier3, e.rng), Tier: Tier3}
}

// State snapshots the pity state for continuation.
func (e *Engine) State() PityState {
	return PityState{
		Pity5:    e.pity5.Count,
		Pity4:    e.pity4.Count,
		ForceUp5: e.up5.Forced,
		ForceUp4: e.up4.Forced,
	}
}

func (e *Engine) Table() RewardTable { return e.table }
func (e *Engine) Rules() Rules       { return e.rules }

// NoUpFallback5 reports whether tier-5 hits always award the up-item.
func (e *Engine) NoUpFallback5() bool { return e.up5.Always }
