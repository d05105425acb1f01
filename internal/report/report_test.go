package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/token"
)

type names map[string]string

func (n names) DisplayName(id string) string {
	if v, ok := n[id]; ok {
		return v
	}
	return strings.ToLower(id)
}

var at = time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

func fixture() gacha.Result {
	return gacha.NewResult("elegy", []gacha.Outcome{
		{Item: "SWORD", Tier: gacha.Tier3},
		{Item: "HERO", Tier: gacha.Tier5},
		{Item: "LUMI", Tier: gacha.Tier4},
		{Item: "SWORD", Tier: gacha.Tier3},
	}, at)
}

func TestSummarize(t *testing.T) {
	st := gacha.PityState{Pity5: 0, Pity4: 2, ForceUp4: true}
	s := Summarize(fixture(), names{"HERO": "英雄"}, token.Token{Name: "Astrite", PerDraw: 160}, &st)

	assert.Equal(t, "elegy", s.Pool)
	assert.Equal(t, 4, s.Draws)
	assert.Equal(t, map[string]int{"3": 2, "4": 1, "5": 1}, s.Counts)
	assert.Equal(t, 640, s.Cost)
	assert.Equal(t, Line{Item: "HERO", Name: "英雄", Tier: gacha.Tier5}, s.Rewards[1])
	assert.Equal(t, "sword", s.Rewards[0].Name)
}

func TestSummarizeWithoutNames(t *testing.T) {
	s := Summarize(fixture(), nil, token.Token{}, nil)
	assert.Equal(t, "HERO", s.Rewards[1].Name)
	assert.Zero(t, s.Cost)
}

func TestWriteText(t *testing.T) {
	st := gacha.PityState{Pity4: 2, ForceUp5: true}
	s := Summarize(fixture(), names{"HERO": "Hero"}, token.Token{Name: "Astrite", PerDraw: 160}, &st)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, s))
	out := buf.String()

	lines := strings.Split(out, "\n")
	assert.Equal(t, "elegy", lines[0])
	assert.Contains(t, lines[2], "Hero")
	assert.Contains(t, lines[2], "★★★★★")
	assert.Contains(t, lines[2], "2025-06-01 12:30:00")
	assert.Contains(t, out, "draws: 4  5-star: 1  4-star: 1  3-star: 2")
	assert.Contains(t, out, "cost: 640 Astrite")
	assert.Contains(t, out, "5-star: Hero\n")
	assert.Contains(t, out, "guaranteed up 5-star true, 4-star false")
}

func TestWriteJSON(t *testing.T) {
	s := Summarize(fixture(), nil, token.Token{Name: "Astrite", PerDraw: 160, PerTenDraw: 1600}, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, s))

	var got Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, s.Pool, got.Pool)
	assert.Equal(t, s.Counts, got.Counts)
	assert.Equal(t, s.Rewards, got.Rewards)
	assert.True(t, at.Equal(got.DrawnAt))
	assert.Nil(t, got.State)
	assert.NotContains(t, buf.String(), `"state"`)
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStats(&buf, "elegy", gacha.GoalFirstUP, gacha.Stats{Trials: 10, Mean: 93.456, P50: 90, P90: 140, P99: 158}))
	out := buf.String()
	assert.Contains(t, out, "first_up")
	assert.Contains(t, out, "93.46")
	assert.Contains(t, out, "158")
}

func TestGrid(t *testing.T) {
	outcomes := make([]gacha.Outcome, 0, 13)
	for i := 0; i < 13; i++ {
		tier := gacha.Tier3
		switch i {
		case 3, 11:
			tier = gacha.Tier5
		case 5, 12:
			tier = gacha.Tier4
		}
		outcomes = append(outcomes, gacha.Outcome{Item: string(rune('a' + i)), Tier: tier})
	}
	res := gacha.NewResult("p", outcomes, at)

	rows, err := Grid(res, DefaultPerRow)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 10)
	assert.Equal(t, gacha.Outcome{Item: "d", Tier: gacha.Tier5}, rows[0][0])
	assert.Equal(t, gacha.Outcome{Item: "f", Tier: gacha.Tier4}, rows[0][1])
	assert.Equal(t, gacha.Outcome{Item: "a", Tier: gacha.Tier3}, rows[0][2])
	assert.Equal(t, []gacha.Outcome{
		{Item: "l", Tier: gacha.Tier5},
		{Item: "m", Tier: gacha.Tier4},
		{Item: "k", Tier: gacha.Tier3},
	}, rows[1])

	_, err = Grid(res, 0)
	assert.ErrorIs(t, err, gacha.ErrInvalidArgument)
}

var errShortWrite = errors.New("disk full")

// failAfter accepts n bytes, then fails every write.
type failAfter struct{ n int }

func (f *failAfter) Write(p []byte) (int, error) {
	if len(p) > f.n {
		k := f.n
		f.n = 0
		return k, errShortWrite
	}
	f.n -= len(p)
	return len(p), nil
}

func TestWriteTextReportsTotalsError(t *testing.T) {
	s := Summarize(fixture(), nil, token.Token{Name: "Astrite", PerDraw: 160}, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, s))
	listed := strings.Index(buf.String(), "\ndraws:")
	require.Positive(t, listed)

	for _, n := range []int{0, listed, listed + 5, buf.Len() - 1} {
		err := WriteText(&failAfter{n: n}, s)
		assert.ErrorIs(t, err, errShortWrite, "fail after %d bytes", n)
	}
	assert.NoError(t, WriteText(&failAfter{n: buf.Len()}, s))
}

func TestWriteGrid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGrid(&buf, fixture(), names{"HERO": "Hero"}, 2))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "elegy", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Hero ★★★★★"), lines[1])
	assert.Contains(t, lines[1], "sword ★★★")

	assert.ErrorIs(t, WriteGrid(&buf, fixture(), nil, 0), gacha.ErrInvalidArgument)
	assert.ErrorIs(t, WriteGrid(&failAfter{n: 3}, fixture(), nil, DefaultPerRow), errShortWrite)
}
