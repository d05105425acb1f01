package report

import (
	"io"
	"strings"
	"text/tabwriter"

	"github.com/xtding233/gacha-sim/internal/gacha"
)

// DefaultPerRow is the width of a result poster.
const DefaultPerRow = 10

// Grid orders res for a poster perRow cells wide: a single row is sorted
// highest tier first; longer results are cut into rows in draw order and
// each row is sorted on its own.
func Grid(res gacha.Result, perRow int) ([][]gacha.Outcome, error) {
	rows, err := res.Chunk(perRow)
	if err != nil {
		return nil, err
	}
	out := make([][]gacha.Outcome, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.SortByTier(true).Rewards())
	}
	return out, nil
}

// WriteGrid prints res in poster order, one row per line with the columns
// aligned. names may be nil.
func WriteGrid(w io.Writer, res gacha.Result, names Namer, perRow int) error {
	rows, err := Grid(res, perRow)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	ew := &errWriter{w: tw}
	ew.printf("%s\n", res.Pool())
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, o := range row {
			cells[i] = displayName(names, o.Item) + " " + stars(o.Tier)
		}
		ew.printf("%s\n", strings.Join(cells, "\t"))
	}
	if ew.err != nil {
		return ew.err
	}
	return tw.Flush()
}
