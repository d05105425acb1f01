package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/logger"
)

// Resolver turns a pool id into a reward table.
type Resolver interface {
	Resolve(poolID string) (gacha.RewardTable, error)
}

// Session is one player's run of draws. It owns an engine and serializes
// access to it, and keeps every result drawn so far.
type Session struct {
	id       string
	resolver Resolver
	rules    gacha.Rules
	rng      gacha.RandomSource

	mu      sync.Mutex
	engine  *gacha.Engine
	history gacha.Result
}

// New resolves poolID and starts a session from the inherited state.
// rng is shared by every engine the session creates.
func New(ctx context.Context, r Resolver, poolID string, rules gacha.Rules, state gacha.PityState, rng gacha.RandomSource) (*Session, error) {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	s := &Session{
		id:       logger.GenerateSessionID(),
		resolver: r,
		rules:    rules,
		rng:      rng,
	}
	e, err := s.newEngine(poolID, state)
	if err != nil {
		return nil, err
	}
	s.engine = e
	s.history = gacha.NewResult(poolID, nil, time.Time{})

	st := e.State()
	logger.FromContext(s.Context(ctx)).Info("session started",
		"pool", poolID, "pity5", st.Pity5, "pity4", st.Pity4,
		"force_up5", st.ForceUp5, "force_up4", st.ForceUp4,
		"no_up_fallback5", e.NoUpFallback5())
	return s, nil
}

func (s *Session) newEngine(poolID string, state gacha.PityState) (*gacha.Engine, error) {
	table, err := s.resolver.Resolve(poolID)
	if err != nil {
		return nil, fmt.Errorf("resolve pool: %w", err)
	}
	e, err := gacha.NewEngine(table, s.rules, state, s.rng)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return e, nil
}

// ID is the session's unique id.
func (s *Session) ID() string { return s.id }

// Context returns ctx tagged with the session id for logging.
func (s *Session) Context(ctx context.Context) context.Context {
	return logger.WithSessionID(ctx, s.id)
}

// Pool returns the id of the pool currently drawn from.
func (s *Session) Pool() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Table().Name
}

// Draw performs n draws on the current pool and appends them to the history.
func (s *Session) Draw(ctx context.Context, n int) (gacha.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(s.Context(ctx))
	res, err := s.engine.Draw(n)
	if err != nil {
		log.Warn("draw rejected", "n", n, "error", err)
		return gacha.Result{}, err
	}
	s.history = s.history.Concat(res)

	c := res.Count()
	st := s.engine.State()
	log.Debug("drew", "pool", res.Pool(), "n", n,
		"tier3", c[gacha.Tier3], "tier4", c[gacha.Tier4], "tier5", c[gacha.Tier5],
		"pity5", st.Pity5, "pity4", st.Pity4)
	for _, item := range res.FilterByTier(gacha.Tier5) {
		log.Info("tier-5 reward", "pool", res.Pool(), "item", item,
			"up", item == s.engine.Table().Tier5.Up)
	}
	return res, nil
}

// SwitchPool moves the session to another pool, carrying the current pity
// state over. On error the session stays on its current pool.
func (s *Session) SwitchPool(ctx context.Context, poolID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.engine.Table().Name
	e, err := s.newEngine(poolID, s.engine.State())
	if err != nil {
		return err
	}
	s.engine = e
	logger.FromContext(s.Context(ctx)).Info("pool switched", "from", from, "to", poolID)
	return nil
}

// State snapshots the pity state so a later session can resume it.
func (s *Session) State() gacha.PityState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// History returns every outcome drawn in this session, across pools.
func (s *Session) History() gacha.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}
