package gacha

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// TrialGoal selects what the simulation measures per trial.
type TrialGoal string

const (
	// Draws until the first tier-5 hit, up-item or not.
	GoalFirstHit TrialGoal = "first_hit"
	// Draws until the first tier-5 up-item (respects the 50/50 guarantee).
	GoalFirstUP TrialGoal = "first_up"
	// Given a fixed budget N, count tier-5 up-items obtained.
	GoalFixedBudget TrialGoal = "fixed_budget"
)

// cancelCheckEvery is how many trials run between context checks.
const cancelCheckEvery = 256

// SimBudget controls the number of draws used in GoalFixedBudget.
type SimBudget struct {
	NumDraws int // number of draws in one trial
}

// Stats summarizes simulation results.
type Stats struct {
	Trials int
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// Optional: raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Trials:  n,
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// simulateOne runs one fresh session from state and returns the goal metric.
func simulateOne(table RewardTable, rules Rules, state PityState, goal TrialGoal, budget *SimBudget, rng RandomSource) (int, error) {
	e, err := NewEngine(table, rules, state, rng)
	if err != nil {
		return 0, err
	}

	switch goal {
	case GoalFirstHit, GoalFirstUP:
		// Hard pity bounds the loop: at most two tier-5 hits reach the up-item.
		for draws := 1; ; draws++ {
			o := e.step()
			if o.Tier != Tier5 {
				continue
			}
			if goal == GoalFirstHit || o.Item == table.Tier5.Up {
				return draws, nil
			}
		}

	case GoalFixedBudget:
		if budget == nil || budget.NumDraws <= 0 {
			return 0, nil
		}
		count := 0
		for i := 0; i < budget.NumDraws; i++ {
			o := e.step()
			if o.Tier == Tier5 && o.Item == table.Tier5.Up {
				count++
			}
		}
		return count, nil
	}

	return 0, fmt.Errorf("%w: unknown trial goal %q", ErrInvalidArgument, goal)
}

// RunMonteCarlo repeats trials, each a fresh engine started from state, and
// returns summary stats. All trials share rng, so a seeded source makes the
// whole run reproducible. Cancelling ctx stops the run with ctx's error.
func RunMonteCarlo(ctx context.Context, table RewardTable, rules Rules, state PityState, goal TrialGoal, trials int, budget *SimBudget, rng RandomSource) (Stats, error) {
	if trials <= 0 {
		return Stats{}, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Stats{}, err
			}
		}
		v, err := simulateOne(table, rules, state, goal, budget, rng)
		if err != nil {
			return Stats{}, err
		}
		samples[i] = v
	}
	return calcStats(samples), nil
}
