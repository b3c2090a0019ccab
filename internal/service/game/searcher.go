package game

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Reply is the machine's answer to a position.
type Reply struct {
	Column int
	Board  domain.Board
	Depth  int // deepest completed search depth
	Cached bool
}

// Searcher picks the machine's move for a position.
type Searcher interface {
	Reply(ctx context.Context, board domain.Board, depth int) (Reply, error)
}

// EngineSearcher asks the engine directly. With a positive budget the search
// deepens iteratively until the budget runs out.
type EngineSearcher struct {
	engine *bot.Engine[domain.Board]
	budget time.Duration
}

func NewEngineSearcher(engine *bot.Engine[domain.Board], budget time.Duration) *EngineSearcher {
	return &EngineSearcher{engine: engine, budget: budget}
}

// Fingerprint names the engine's evaluator configuration.
func (s *EngineSearcher) Fingerprint() string {
	return s.engine.Fingerprint()
}

func (s *EngineSearcher) Reply(ctx context.Context, board domain.Board, depth int) (Reply, error) {
	var (
		res bot.Result[domain.Board]
		err error
	)
	if s.budget > 0 {
		ctx, cancel := context.WithTimeout(ctx, s.budget)
		defer cancel()
		res, err = s.engine.SearchWithin(ctx, board, depth)
	} else {
		res, err = s.engine.Analyze(board, depth)
	}
	if err != nil {
		return Reply{Column: -1, Board: board}, err
	}
	return Reply{Column: res.Column, Board: res.Board, Depth: res.Depth}, nil
}

// CacheRepository is the key/value store behind CachedSearcher. Get returns
// domain.ErrCacheMiss for an absent key.
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

const cachePrefix = "connect4:reply:v1"

// unnamedNamespace keys replies of a Searcher without a fingerprint.
const unnamedNamespace = "unnamed"

// CachedSearcher remembers the column chosen for a position and depth. Only
// searches that reached the requested depth are stored, so a hit returns the
// same move the engine would pick. Keys carry the fingerprint of the next
// Searcher, so engines scoring positions differently never share entries.
// Cache failures are logged and the search falls through to the next
// Searcher.
type CachedSearcher struct {
	next      Searcher
	cache     CacheRepository
	namespace string
	ttl       time.Duration
	logger    zerolog.Logger
}

func NewCachedSearcher(next Searcher, cache CacheRepository, ttl time.Duration, logger zerolog.Logger) *CachedSearcher {
	namespace := unnamedNamespace
	if f, ok := next.(bot.Fingerprinter); ok {
		namespace = f.Fingerprint()
	}
	return &CachedSearcher{
		next:      next,
		cache:     cache,
		namespace: namespace,
		ttl:       ttl,
		logger:    logger.With().Str("component", "reply_cache").Str("namespace", namespace).Logger(),
	}
}

func cacheKey(namespace string, board domain.Board, depth int) string {
	return fmt.Sprintf("%s:%s:%d:%s", cachePrefix, namespace, depth, board.Key())
}

func (c *CachedSearcher) Reply(ctx context.Context, board domain.Board, depth int) (Reply, error) {
	key := cacheKey(c.namespace, board, depth)

	if reply, ok := c.lookup(ctx, key, board, depth); ok {
		return reply, nil
	}

	reply, err := c.next.Reply(ctx, board, depth)
	if err != nil {
		return reply, err
	}
	if reply.Depth == depth {
		if err := c.cache.Set(ctx, key, reply.Column, c.ttl); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("could not store reply")
		}
	}
	return reply, nil
}

func (c *CachedSearcher) lookup(ctx context.Context, key string, board domain.Board, depth int) (Reply, bool) {
	value, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
		}
		return Reply{}, false
	}

	column, err := strconv.Atoi(value)
	if err == nil {
		var next domain.Board
		next, err = board.ApplyMove(column, board.ToMove())
		if err == nil {
			c.logger.Debug().Str("key", key).Int("column", column).Msg("cache hit")
			return Reply{Column: column, Board: next, Depth: depth, Cached: true}, true
		}
	}

	c.logger.Warn().Err(err).Str("key", key).Str("value", value).Msg("dropping unusable cache entry")
	if err := c.cache.Del(ctx, key); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("could not drop cache entry")
	}
	return Reply{}, false
}
