package bot

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Engine picks moves with depth-limited minimax and alpha-beta pruning. It
// keeps no state between calls, so one Engine can serve any number of games
// concurrently.
type Engine[S State[S]] struct {
	evaluator   Evaluator[S]
	workers     int
	centerFirst bool
	logger      zerolog.Logger
}

type options struct {
	workers     int
	centerFirst bool
	logger      zerolog.Logger
}

type Option func(*options)

// WithWorkers bounds how many root moves are searched in parallel. Values
// below 1 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithCenterFirst toggles center-outward move ordering below the root.
func WithCenterFirst(enabled bool) Option {
	return func(o *options) {
		o.centerFirst = enabled
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func NewEngine[S State[S]](evaluator Evaluator[S], opts ...Option) *Engine[S] {
	o := options{
		centerFirst: true,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return &Engine[S]{
		evaluator:   evaluator,
		workers:     o.workers,
		centerFirst: o.centerFirst,
		logger:      o.logger.With().Str("component", "engine").Logger(),
	}
}

// NewBoardEngine is the engine for domain.Board with the default evaluator.
func NewBoardEngine(opts ...Option) *Engine[domain.Board] {
	return NewEngine[domain.Board](NewWindowEvaluator[domain.Board](), opts...)
}

// Fingerprinter is implemented by evaluators whose scores depend on
// configuration.
type Fingerprinter interface {
	Fingerprint() string
}

// Fingerprint identifies the evaluator behind the engine. Engines with the
// same fingerprint pick the same move at a given depth; workers and move
// ordering do not change the result.
func (e *Engine[S]) Fingerprint() string {
	if f, ok := any(e.evaluator).(Fingerprinter); ok {
		return f.Fingerprint()
	}
	return fmt.Sprintf("%T", e.evaluator)
}

// MoveValue is the exact minimax value of one root move.
type MoveValue struct {
	Column int
	Score  int
}

// Result describes a finished search.
type Result[S any] struct {
	Column  int
	Board   S
	Score   int
	Depth   int
	Values  []MoveValue // one per legal root move, ascending column
	Nodes   int64
	Elapsed time.Duration
}

// Search returns the board reached by the best move for the side to move.
// On error the input board is returned unchanged.
func (e *Engine[S]) Search(board S, depth int) (S, error) {
	res, err := e.Analyze(board, depth)
	if err != nil {
		return board, err
	}
	return res.Board, nil
}

// Analyze runs the same search as Search and reports the details.
func (e *Engine[S]) Analyze(board S, depth int) (Result[S], error) {
	return e.analyze(context.Background(), board, depth)
}

// analyze searches every root move with a full window so that each recorded
// value is exact, then keeps the best one, ties going to the lowest column.
// The search polls ctx only when it can be cancelled.
func (e *Engine[S]) analyze(ctx context.Context, board S, depth int) (Result[S], error) {
	if depth < 1 {
		return Result[S]{Board: board}, &domain.InvalidDepthError{Depth: depth}
	}
	if board.IsTerminal() {
		return Result[S]{Board: board}, domain.ErrNoLegalMove
	}
	moves := board.LegalMoves()
	if len(moves) == 0 {
		return Result[S]{Board: board}, domain.ErrNoLegalMove
	}

	start := time.Now()
	player := board.ToMove()
	s := &search[S]{
		evaluator:   e.evaluator,
		ctx:         ctx,
		centerFirst: e.centerFirst,
	}

	children := make([]S, len(moves))
	values := make([]int, len(moves))

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, col := range moves {
		g.Go(func() error {
			child, err := board.ApplyMove(col, player)
			if err != nil {
				return errors.Wrapf(err, "apply root move %d", col)
			}
			value, err := s.alphaBeta(child, depth-1, minScore, maxScore)
			if err != nil {
				return err
			}
			children[i] = child
			values[i] = value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result[S]{Board: board}, err
	}

	best := 0
	for i := 1; i < len(moves); i++ {
		if (player == domain.Maximizing && values[i] > values[best]) ||
			(player != domain.Maximizing && values[i] < values[best]) {
			best = i
		}
	}

	res := Result[S]{
		Column:  moves[best],
		Board:   children[best],
		Score:   values[best],
		Depth:   depth,
		Values:  make([]MoveValue, len(moves)),
		Nodes:   s.nodes.Load(),
		Elapsed: time.Since(start),
	}
	for i, col := range moves {
		res.Values[i] = MoveValue{Column: col, Score: values[i]}
	}

	e.logger.Debug().
		Str("player", player.String()).
		Int("depth", depth).
		Int("column", res.Column).
		Int("score", res.Score).
		Int64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("search complete")
	return res, nil
}
