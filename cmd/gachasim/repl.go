package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xtding233/gacha-sim/internal/catalog"
	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/report"
	"github.com/xtding233/gacha-sim/internal/session"
	"github.com/xtding233/gacha-sim/internal/token"
)

const replHelp = `commands:
  draw [N]     draw N times (default 10)
  pool ID      switch pool, keeping pity
  pools        list pools
  state        show pity state
  history      show every draw of this session
  grid         show the history as a poster grid
  tokens N     how many draws N tokens pay for
  help         this text
  quit         leave`

type repl struct {
	s    *session.Session
	cat  *catalog.Catalog
	cost token.Token
	json bool
	out  io.Writer
}

func newREPL(s *session.Session, cat *catalog.Catalog, cost token.Token, asJSON bool, out io.Writer) *repl {
	return &repl{s: s, cat: cat, cost: cost, json: asJSON, out: out}
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, errc := readLines(ctx, in)
	fmt.Fprintf(r.out, "session %s on %s; type help for commands\n", r.s.ID(), r.s.Pool())
	for {
		fmt.Fprint(r.out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out)
				if ctx.Err() != nil {
					return nil
				}
				return <-errc
			}
			line = l
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		quit, err := r.exec(ctx, fields[0], fields[1:])
		if err != nil {
			// command errors are reported and the session continues
			fmt.Fprintln(r.out, "error:", err)
		}
		if quit {
			return nil
		}
	}
}

// readLines scans in on its own goroutine so a blocked read never holds up
// cancellation. errc receives the scan error before lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

func (r *repl) exec(ctx context.Context, cmd string, args []string) (quit bool, err error) {
	switch cmd {
	case "draw", "d":
		n := 10
		if len(args) > 0 {
			if n, err = strconv.Atoi(args[0]); err != nil {
				return false, fmt.Errorf("draw count: %w", err)
			}
		}
		res, err := r.s.Draw(ctx, n)
		if err != nil {
			return false, err
		}
		st := r.s.State()
		return false, r.write(res, report.Summarize(res, r.cat, r.cost, &st), false)
	case "pool":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: pool ID")
		}
		if err := r.s.SwitchPool(ctx, args[0]); err != nil {
			return false, err
		}
		fmt.Fprintf(r.out, "now drawing from %s\n", r.s.Pool())
	case "pools":
		return false, listPools(r.cat, r.out)
	case "state":
		st := r.s.State()
		fmt.Fprintf(r.out, "pool %s: 5-star pity %d, 4-star pity %d, guaranteed up 5-star %t, 4-star %t\n",
			r.s.Pool(), st.Pity5, st.Pity4, st.ForceUp5, st.ForceUp4)
	case "history", "grid":
		h := r.s.History()
		return false, r.write(h, report.Summarize(h, r.cat, r.cost, nil), cmd == "grid")
	case "tokens":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: tokens N")
		}
		balance, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("token balance: %w", err)
		}
		draws, left := r.cost.DrawsForTokens(balance)
		fmt.Fprintf(r.out, "%d %s pays for %d draws, %d left\n", balance, r.cost.Name, draws, left)
	case "help", "?":
		fmt.Fprintln(r.out, replHelp)
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, type help", cmd)
	}
	return false, nil
}

func (r *repl) write(res gacha.Result, s report.Summary, grid bool) error {
	if r.json {
		return report.WriteJSON(r.out, s)
	}
	return writeSummary(r.out, res, r.cat, s, grid)
}
