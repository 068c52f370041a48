// Package query provides the registry's read side. Reads go straight to the
// ledger records; leaderboard tops are served through a read-through cache
// that is invalidated when the processor emits a score event. The rent
// oracle is deliberately not behind this cache: balance requirements are
// always read live.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/arcadia/internal/cachemanager"
	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/log"
	"github.com/zjrosen/arcadia/internal/pubsub"
	"github.com/zjrosen/arcadia/internal/registry/domain"
	"github.com/zjrosen/arcadia/internal/registry/processor"
)

// DefaultTopTTL bounds staleness for cached leaderboard tops when no score
// event arrives to invalidate them.
const DefaultTopTTL = 30 * time.Second

// Service answers read queries against ledger records.
type Service struct {
	ledger  ledger.Ledger
	manager *cachemanager.InMemoryCacheManager[string, []domain.TopEntry]
	top     *cachemanager.ReadThroughCache[string, []domain.TopEntry, ledger.Address]
}

// Option configures the Service.
type Option func(*serviceConfig)

type serviceConfig struct {
	skipCache bool
}

// WithoutCache disables the leaderboard top cache; every read loads from
// the ledger.
func WithoutCache() Option {
	return func(c *serviceConfig) {
		c.skipCache = true
	}
}

// NewService creates a query service over the given ledger.
func NewService(l ledger.Ledger, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Service{ledger: l}
	s.manager = cachemanager.NewInMemoryCacheManager[string, []domain.TopEntry](
		"leaderboard-top", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	s.top = cachemanager.NewReadThroughCache[string, []domain.TopEntry, ledger.Address](
		s.manager, s.loadTop, cfg.skipCache)
	return s
}

// Flush drops every cached leaderboard top. Used when the ledger file is
// modified by another process and the cache can no longer be trusted.
func (s *Service) Flush(ctx context.Context) error {
	return s.manager.Flush(ctx)
}

func topKey(addr ledger.Address) string {
	return "top:" + string(addr)
}

func (s *Service) loadTop(_ context.Context, addr ledger.Address) ([]domain.TopEntry, error) {
	lb, err := s.Leaderboard(addr)
	if err != nil {
		return nil, err
	}
	return lb.Top(), nil
}

// TopScores returns a leaderboard's retained best scores, served through
// the read-through cache.
func (s *Service) TopScores(ctx context.Context, addr ledger.Address) ([]domain.TopEntry, error) {
	return s.top.Get(ctx, topKey(addr), addr, DefaultTopTTL)
}

// Game reads and decodes a game record.
func (s *Service) Game(addr ledger.Address) (*domain.Game, error) {
	acct, err := s.ledger.Account(addr)
	if err != nil {
		return nil, fmt.Errorf("query game %s: %w", addr, err)
	}
	g, err := domain.DecodeGame(acct.Data())
	if err != nil {
		return nil, fmt.Errorf("query game %s: %w", addr, err)
	}
	return g, nil
}

// Player reads and decodes a player record.
func (s *Service) Player(addr ledger.Address) (*domain.Player, error) {
	acct, err := s.ledger.Account(addr)
	if err != nil {
		return nil, fmt.Errorf("query player %s: %w", addr, err)
	}
	p, err := domain.DecodePlayer(acct.Data())
	if err != nil {
		return nil, fmt.Errorf("query player %s: %w", addr, err)
	}
	return p, nil
}

// Leaderboard reads and decodes a leaderboard record.
func (s *Service) Leaderboard(addr ledger.Address) (*domain.Leaderboard, error) {
	acct, err := s.ledger.Account(addr)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard %s: %w", addr, err)
	}
	lb, err := domain.DecodeLeaderboard(acct.Data())
	if err != nil {
		return nil, fmt.Errorf("query leaderboard %s: %w", addr, err)
	}
	return lb, nil
}

// Achievement reads and decodes an achievement record.
func (s *Service) Achievement(addr ledger.Address) (*domain.Achievement, error) {
	acct, err := s.ledger.Account(addr)
	if err != nil {
		return nil, fmt.Errorf("query achievement %s: %w", addr, err)
	}
	a, err := domain.DecodeAchievement(acct.Data())
	if err != nil {
		return nil, fmt.Errorf("query achievement %s: %w", addr, err)
	}
	return a, nil
}

// ScoreBook reads and decodes a score book record.
func (s *Service) ScoreBook(addr ledger.Address) (*domain.ScoreBook, error) {
	acct, err := s.ledger.Account(addr)
	if err != nil {
		return nil, fmt.Errorf("query score book %s: %w", addr, err)
	}
	sb, err := domain.DecodeScoreBook(acct.Data())
	if err != nil {
		return nil, fmt.Errorf("query score book %s: %w", addr, err)
	}
	return sb, nil
}

// StartInvalidation subscribes to the event bus and drops cached leaderboard
// tops when a score lands on the board. Runs until the context is cancelled.
func (s *Service) StartInvalidation(ctx context.Context, bus *pubsub.Broker[any]) {
	events := bus.Subscribe(ctx)
	go func() {
		for ev := range events {
			scored, ok := ev.Payload.(processor.ScoreSubmittedEvent)
			if !ok || !scored.MadeTop {
				continue
			}
			if err := s.top.Invalidate(ctx, topKey(scored.Leaderboard)); err != nil {
				log.ErrorErr(log.CatCache, "top cache invalidation failed", err,
					"leaderboard", scored.Leaderboard)
				continue
			}
			log.Debug(log.CatCache, "top cache invalidated", "leaderboard", scored.Leaderboard)
		}
	}()
}
