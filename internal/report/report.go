package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/token"
)

const timeLayout = "2006-01-02 15:04:05"

// Namer maps item ids to display names.
type Namer interface {
	DisplayName(id string) string
}

// Line is one outcome ready for display.
type Line struct {
	Item string     `json:"item"`
	Name string     `json:"name"`
	Tier gacha.Tier `json:"tier"`
}

// Summary is a result prepared for output.
type Summary struct {
	Pool    string           `json:"pool"`
	DrawnAt time.Time        `json:"drawn_at"`
	Draws   int              `json:"draws"`
	Counts  map[string]int   `json:"counts"`
	Cost    int              `json:"cost"`
	Token   string           `json:"token,omitempty"`
	Rewards []Line           `json:"rewards"`
	State   *gacha.PityState `json:"state,omitempty"`
}

// Summarize prepares res for output. state may be nil.
func Summarize(res gacha.Result, names Namer, cost token.Token, state *gacha.PityState) Summary {
	c := res.Count()
	s := Summary{
		Pool:    res.Pool(),
		DrawnAt: res.DrawnAt(),
		Draws:   res.Len(),
		Counts:  make(map[string]int, len(gacha.Tiers)),
		Cost:    cost.TokensForDraws(res.Len()),
		Token:   cost.Name,
		State:   state,
	}
	for _, t := range gacha.Tiers {
		s.Counts[tierKey(t)] = c[t]
	}
	for _, o := range res.Rewards() {
		s.Rewards = append(s.Rewards, Line{Item: o.Item, Name: displayName(names, o.Item), Tier: o.Tier})
	}
	return s
}

func tierKey(t gacha.Tier) string { return fmt.Sprintf("%d", int(t)) }

func displayName(names Namer, id string) string {
	if names == nil {
		return id
	}
	return names.DisplayName(id)
}

// errWriter keeps the first write error and skips every write after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err == nil {
		_, e.err = fmt.Fprintf(e.w, format, args...)
	}
}

// WriteText prints the pool, one line per outcome, then the tier totals.
func WriteText(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	ew := &errWriter{w: tw}
	ew.printf("%s\n", s.Pool)
	stamp := ""
	if !s.DrawnAt.IsZero() {
		stamp = s.DrawnAt.Format(timeLayout)
	}
	for _, l := range s.Rewards {
		ew.printf("%s\t%s\t%s\n", l.Name, stars(l.Tier), stamp)
	}
	if ew.err != nil {
		return ew.err
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return WriteTotals(w, s)
}

// WriteTotals prints the tier counts, cost, tier-5 names and pity state.
func WriteTotals(w io.Writer, s Summary) error {
	var top []string
	for _, l := range s.Rewards {
		if l.Tier == gacha.Tier5 {
			top = append(top, l.Name)
		}
	}
	ew := &errWriter{w: w}
	ew.printf("\ndraws: %d  5-star: %d  4-star: %d  3-star: %d\n",
		s.Draws, s.Counts["5"], s.Counts["4"], s.Counts["3"])
	if s.Token != "" {
		ew.printf("cost: %d %s\n", s.Cost, s.Token)
	}
	if len(top) > 0 {
		ew.printf("5-star: %s\n", strings.Join(top, ", "))
	}
	if s.State != nil {
		ew.printf("pity: 5-star %d, 4-star %d, guaranteed up 5-star %t, 4-star %t\n",
			s.State.Pity5, s.State.Pity4, s.State.ForceUp5, s.State.ForceUp4)
	}
	return ew.err
}

func stars(t gacha.Tier) string { return strings.Repeat("★", int(t)) }

// WriteJSON prints s as indented JSON.
func WriteJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteStats prints Monte Carlo statistics for goal.
func WriteStats(w io.Writer, pool string, goal gacha.TrialGoal, st gacha.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "pool\t%s\n", pool)
	fmt.Fprintf(tw, "goal\t%s\n", goal)
	fmt.Fprintf(tw, "trials\t%d\n", st.Trials)
	fmt.Fprintf(tw, "mean\t%.2f\n", st.Mean)
	fmt.Fprintf(tw, "stddev\t%.2f\n", st.StdDev)
	fmt.Fprintf(tw, "p50\t%.0f\n", st.P50)
	fmt.Fprintf(tw, "p90\t%.0f\n", st.P90)
	fmt.Fprintf(tw, "p99\t%.0f\n", st.P99)
	return tw.Flush()
}
