package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/gacha-sim/internal/catalog"
	"github.com/xtding233/gacha-sim/internal/report"
)

const shippedCatalog = "../../configs/catalog"

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"-catalog", shippedCatalog}, args...)
	err := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), err
}

func decodeSummary(t *testing.T, out string) report.Summary {
	t.Helper()
	var s report.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	return s
}

func TestRunList(t *testing.T) {
	out, err := runCLI(t, "", "-list")
	require.NoError(t, err)
	assert.Contains(t, out, "1.0\n")
	assert.Contains(t, out, "2.4\n")
	assert.Contains(t, out, "  elegy-never-ends (default)\n")
	assert.Contains(t, out, "  absolute-pulsation\n")
	assert.Less(t, strings.Index(out, "1.0"), strings.Index(out, "2.4"))
}

func TestRunDrawJSON(t *testing.T) {
	out, err := runCLI(t, "", "-seed", "7", "-n", "20", "-json")
	require.NoError(t, err)

	s := decodeSummary(t, out)
	assert.Equal(t, "elegy-never-ends", s.Pool)
	assert.Equal(t, 20, s.Draws)
	assert.Len(t, s.Rewards, 20)
	assert.Equal(t, 20, s.Counts["3"]+s.Counts["4"]+s.Counts["5"])
	require.NotNil(t, s.State)
	// ten-pull pricing covers the first ten, then ten more
	assert.Equal(t, 3200, s.Cost)
}

func TestRunSeedIsReproducible(t *testing.T) {
	a, err := runCLI(t, "", "-seed", "42", "-n", "50", "-json")
	require.NoError(t, err)
	b, err := runCLI(t, "", "-seed", "42", "-n", "50", "-json")
	require.NoError(t, err)

	sa, sb := decodeSummary(t, a), decodeSummary(t, b)
	assert.Equal(t, sa.Rewards, sb.Rewards)
	assert.Equal(t, sa.State, sb.State)
}

func TestRunInheritedPity(t *testing.T) {
	out, err := runCLI(t, "", "-seed", "1", "-n", "1", "-pity5", "79", "-up5", "-json")
	require.NoError(t, err)

	s := decodeSummary(t, out)
	require.Len(t, s.Rewards, 1)
	assert.Equal(t, 5, int(s.Rewards[0].Tier))
	assert.Equal(t, "CARTETHYIA", s.Rewards[0].Item)
	assert.Equal(t, 0, s.State.Pity5)
	assert.False(t, s.State.ForceUp5)
}

func TestRunText(t *testing.T) {
	out, err := runCLI(t, "", "-seed", "3", "-n", "10")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "elegy-never-ends\n"))
	assert.Contains(t, out, "draws: 10")
	assert.Contains(t, out, "pity: 5-star")
}

func TestRunMonteCarlo(t *testing.T) {
	out, err := runCLI(t, "", "-seed", "3", "-trials", "200", "-goal", "first_hit", "-pool", "defier-of-waves")
	require.NoError(t, err)
	assert.Contains(t, out, "defier-of-waves")
	assert.Contains(t, out, "first_hit")
	assert.Contains(t, out, "trials  200")
}

func TestRunErrors(t *testing.T) {
	_, err := runCLI(t, "", "-pool", "no-such-pool")
	require.ErrorIs(t, err, catalog.ErrUnknownPool)

	_, err = runCLI(t, "", "-n", "-1")
	require.Error(t, err)

	_, err = runCLI(t, "", "stray")
	require.ErrorContains(t, err, "unexpected arguments")

	_, err = runCLI(t, "", "-trials", "10", "-goal", "nope")
	require.Error(t, err)
}

func TestRunInteractive(t *testing.T) {
	script := strings.Join([]string{
		"state",
		"draw 5",
		"pool absolute-pulsation",
		"pool missing",
		"draw x",
		"bogus",
		"history",
		"tokens 1600",
		"tokens",
		"grid",
		"quit",
		"draw 1",
	}, "\n")
	out, err := runCLI(t, script, "-i", "-seed", "9")
	require.NoError(t, err)

	assert.Contains(t, out, "on elegy-never-ends")
	assert.Contains(t, out, "pool elegy-never-ends: 5-star pity 0, 4-star pity 0")
	assert.Contains(t, out, "draws: 5")
	assert.Contains(t, out, "now drawing from absolute-pulsation")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "draw count:")
	assert.Contains(t, out, "1600 Astrite pays for 10 draws, 0 left")
	assert.Contains(t, out, "usage: tokens N")
	// nothing after quit runs, so only the first five draws exist
	assert.Equal(t, 3, strings.Count(out, "draws: 5"))
	assert.NotContains(t, out, "draws: 1\n")
}

func TestRunInteractiveEOF(t *testing.T) {
	out, err := runCLI(t, "draw 2\n", "-i", "-seed", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "draws: 2")
}

func TestRunGrid(t *testing.T) {
	out, err := runCLI(t, "", "-seed", "3", "-n", "12", "-grid")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "elegy-never-ends", lines[0])
	assert.Equal(t, 9, strings.Count(lines[1], "★ "), lines[1])
	assert.Equal(t, 1, strings.Count(lines[2], "★ "), lines[2])
	assert.Empty(t, lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "draws: 12"), lines[4])
}

func TestRunTokens(t *testing.T) {
	out, err := runCLI(t, "", "-seed", "1", "-tokens", "3300")
	require.NoError(t, err)
	assert.Contains(t, out, "draws: 20")
	assert.Contains(t, out, "cost: 3200 Astrite")
	assert.Contains(t, out, "left: 100 Astrite\n")

	out, err = runCLI(t, "", "-seed", "1", "-tokens", "3300", "-json")
	require.NoError(t, err)
	assert.Equal(t, 20, decodeSummary(t, out).Draws)
}

func TestRunInteractiveCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out, errOut bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, []string{"-catalog", shippedCatalog, "-i", "-seed", "1"}, pr, &out, &errOut)
	}()

	// stdin never sends a line; cancelling must still end the session
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("interactive session ignored cancellation")
	}
}

func TestRunMonteCarloCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errOut bytes.Buffer
	err := run(ctx, []string{"-catalog", shippedCatalog, "-trials", "1000000"}, strings.NewReader(""), &out, &errOut)
	require.ErrorIs(t, err, context.Canceled)
}
