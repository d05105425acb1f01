package gacha

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Tier is a reward rarity.
type Tier int

const (
	Tier3 Tier = 3
	Tier4 Tier = 4
	Tier5 Tier = 5
)

// Tiers lists every tier, lowest first.
var Tiers = []Tier{Tier3, Tier4, Tier5}

// Outcome is one resolved draw.
type Outcome struct {
	Item string `json:"item"`
	Tier Tier   `json:"tier"`
}

// Histogram maps each tier to its count. Every tier is always present.
type Histogram map[Tier]int

// Total is the number of outcomes counted.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Result is an ordered, read-only sequence of outcomes with a cached tier
// histogram. Operations return new results and never touch the receiver.
type Result struct {
	pool     string
	drawnAt  time.Time
	outcomes []Outcome
	counts   [3]int // indexed by tier-3
}

// NewResult wraps outcomes, which the result takes ownership of.
func NewResult(pool string, outcomes []Outcome, drawnAt time.Time) Result {
	r := Result{pool: pool, drawnAt: drawnAt, outcomes: outcomes}
	for _, o := range outcomes {
		if o.Tier >= Tier3 && o.Tier <= Tier5 {
			r.counts[o.Tier-Tier3]++
		}
	}
	return r
}

func (r Result) Pool() string       { return r.pool }
func (r Result) DrawnAt() time.Time { return r.drawnAt }
func (r Result) Len() int           { return len(r.outcomes) }

// Rewards returns the outcomes in draw order.
func (r Result) Rewards() []Outcome {
	return slices.Clone(r.outcomes)
}

// Count returns the per-tier histogram.
func (r Result) Count() Histogram {
	return Histogram{
		Tier3: r.counts[0],
		Tier4: r.counts[1],
		Tier5: r.counts[2],
	}
}

// FilterByTier returns the items of tier t in draw order.
func (r Result) FilterByTier(t Tier) []string {
	var items []string
	for _, o := range r.outcomes {
		if o.Tier == t {
			items = append(items, o.Item)
		}
	}
	return items
}

// Concat returns r followed by other. Results from different pools may be
// combined; the pool name then lists each pool once.
func (r Result) Concat(other Result) Result {
	drawnAt := r.drawnAt
	if drawnAt.IsZero() {
		drawnAt = other.drawnAt
	}
	out := Result{
		pool:     joinPools(r.pool, other.pool),
		drawnAt:  drawnAt,
		outcomes: slices.Concat(r.outcomes, other.outcomes),
	}
	for i := range out.counts {
		out.counts[i] = r.counts[i] + other.counts[i]
	}
	return out
}

// joinPools names a combined result. Each pool appears once, in the order
// it was first drawn from.
func joinPools(a, b string) string {
	if b == "" || a == b {
		return a
	}
	if a == "" {
		return b
	}
	parts := strings.Split(a, "+")
	for _, p := range strings.Split(b, "+") {
		if !slices.Contains(parts, p) {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "+")
}

// SortByTier orders outcomes by tier only, keeping draw order within a tier.
func (r Result) SortByTier(descending bool) Result {
	out := r
	out.outcomes = slices.Clone(r.outcomes)
	slices.SortStableFunc(out.outcomes, func(a, b Outcome) int {
		if descending {
			return int(b.Tier - a.Tier)
		}
		return int(a.Tier - b.Tier)
	})
	return out
}

// Chunk splits r into consecutive results of size outcomes; the last one may
// be shorter. It does not reorder anything.
func (r Result) Chunk(size int) ([]Result, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be > 0, got %d", ErrInvalidArgument, size)
	}
	n := len(r.outcomes) / size
	if len(r.outcomes)%size != 0 {
		n++
	}
	chunks := make([]Result, 0, n)
	for part := range slices.Chunk(r.outcomes, size) {
		chunks = append(chunks, NewResult(r.pool, slices.Clone(part), r.drawnAt))
	}
	return chunks, nil
}
