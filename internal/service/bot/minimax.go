package bot

import (
	"context"
	"math"
	"slices"
	"sync/atomic"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

const (
	minScore = math.MinInt32
	maxScore = math.MaxInt32

	// cancellation is checked once every pollInterval nodes
	pollInterval = 1 << 10
)

// errAborted unwinds a search whose context was cancelled. Callers never see
// it: the iterative deepening loop drops the unfinished depth.
var errAborted = domain.Error("search aborted")

type search[S State[S]] struct {
	evaluator   Evaluator[S]
	ctx         context.Context
	centerFirst bool
	nodes       atomic.Int64
}

// alphaBeta returns the minimax value of state searched depth plies deep.
func (s *search[S]) alphaBeta(state S, depth, alpha, beta int) (int, error) {
	n := s.nodes.Add(1)
	if n%pollInterval == 0 && s.ctx.Done() != nil && s.ctx.Err() != nil {
		return 0, errAborted
	}

	// exact scores take precedence over the heuristic
	if state.IsTerminal() {
		return terminalScore(state, depth), nil
	}
	if depth == 0 {
		return s.evaluator.Evaluate(state, domain.Maximizing), nil
	}

	player := state.ToMove()
	moves := state.LegalMoves()
	if s.centerFirst {
		orderCenterFirst(moves)
	}

	if player == domain.Maximizing {
		best := minScore
		for _, col := range moves {
			child, err := state.ApplyMove(col, player)
			if err != nil {
				return 0, err
			}
			value, err := s.alphaBeta(child, depth-1, alpha, beta)
			if err != nil {
				return 0, err
			}
			best = max(best, value)
			alpha = max(alpha, best)
			if alpha >= beta {
				break // beta cutoff
			}
		}
		return best, nil
	}

	best := maxScore
	for _, col := range moves {
		child, err := state.ApplyMove(col, player)
		if err != nil {
			return 0, err
		}
		value, err := s.alphaBeta(child, depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		best = min(best, value)
		beta = min(beta, best)
		if alpha >= beta {
			break // alpha cutoff
		}
	}
	return best, nil
}

// terminalScore scores a finished game. The remaining depth is added to the
// win so that quicker wins and slower losses are preferred.
func terminalScore[S State[S]](state S, depth int) int {
	switch {
	case state.IsWinningFor(domain.Maximizing):
		return WinScore + depth
	case state.IsWinningFor(domain.Minimizing):
		return -(WinScore + depth)
	default:
		return 0
	}
}

// orderCenterFirst sorts ascending columns by distance to the center. The
// sort is stable, so equally distant columns keep the lower one first.
func orderCenterFirst(moves []int) {
	center := (domain.Columns - 1) / 2
	slices.SortStableFunc(moves, func(a, b int) int {
		return distance(a, center) - distance(b, center)
	})
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
