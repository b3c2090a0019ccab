package bot

import (
	"fmt"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/pkg/errors"
)

// WinScore is the value of a won position for Maximizing. No heuristic value
// comes close to it, so a proven win always beats a good-looking position.
const WinScore = 1000000

// Evaluator statically scores a position. Higher is better for Maximizing
// regardless of who moves next; perspective Minimizing negates the score.
type Evaluator[S any] interface {
	Evaluate(state S, perspective domain.PlayerType) int
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc[S any] func(state S, perspective domain.PlayerType) int

func (f EvaluatorFunc[S]) Evaluate(state S, perspective domain.PlayerType) int {
	return f(state, perspective)
}

// Weights score a live window (one holding marks of a single player) by how
// many of the four cells that player already owns.
type Weights struct {
	Three  int // three marks and one empty cell
	Two    int // two marks and two empty cells
	One    int // one mark and three empty cells
	Center int // per disc in the center column
}

func DefaultWeights() Weights {
	return Weights{
		Three:  50,
		Two:    10,
		One:    1,
		Center: 3,
	}
}

// Bound is the largest absolute value a non-terminal position can score.
func (w Weights) Bound() int {
	return len(windows)*w.Three + domain.Rows*w.Center
}

func (w Weights) Validate() error {
	if w.One < 0 || w.Two < w.One || w.Three < w.Two || w.Center < 0 {
		return errors.Errorf("weights must satisfy 0 <= one <= two <= three and center >= 0, got %+v", w)
	}
	largest := max(w.Three, w.Center)
	if (domain.Rows*domain.Columns+1)*largest > WinScore || w.Bound() >= WinScore {
		return errors.Errorf("weights %+v are too large for win score %d", w, WinScore)
	}
	return nil
}

// all length-4 windows of the grid
var windows = buildWindows()

func buildWindows() [][domain.ToWin]domain.Coord {
	steps := [][2]int{
		{1, 0},  // horizontal
		{0, 1},  // vertical
		{1, 1},  // diagonal \
		{1, -1}, // diagonal /
	}
	var out [][domain.ToWin]domain.Coord
	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			for _, step := range steps {
				endCol := col + step[0]*(domain.ToWin-1)
				endRow := row + step[1]*(domain.ToWin-1)
				if endCol < 0 || endCol >= domain.Columns || endRow < 0 || endRow >= domain.Rows {
					continue
				}
				var window [domain.ToWin]domain.Coord
				for i := range window {
					window[i] = domain.Coord{Column: col + i*step[0], Row: row + i*step[1]}
				}
				out = append(out, window)
			}
		}
	}
	return out
}

// WindowEvaluator sums a score over every window of the grid plus a small
// bonus for center column discs. Dead windows, holding both players' marks,
// count for nothing.
type WindowEvaluator[S Grid] struct {
	weights Weights
}

// NewWindowEvaluator returns an evaluator with DefaultWeights.
func NewWindowEvaluator[S Grid]() *WindowEvaluator[S] {
	return &WindowEvaluator[S]{weights: DefaultWeights()}
}

func NewWindowEvaluatorWithWeights[S Grid](weights Weights) (*WindowEvaluator[S], error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &WindowEvaluator[S]{weights: weights}, nil
}

func (e *WindowEvaluator[S]) Weights() Weights {
	return e.weights
}

// Fingerprint identifies the scoring configuration, e.g. "window-50-10-1-3".
func (e *WindowEvaluator[S]) Fingerprint() string {
	w := e.weights
	return fmt.Sprintf("window-%d-%d-%d-%d", w.Three, w.Two, w.One, w.Center)
}

func (e *WindowEvaluator[S]) Evaluate(state S, perspective domain.PlayerType) int {
	score := e.score(state)
	if perspective == domain.Minimizing {
		return -score
	}
	return score
}

func (e *WindowEvaluator[S]) score(state S) int {
	switch {
	case state.IsWinningFor(domain.Maximizing):
		return WinScore
	case state.IsWinningFor(domain.Minimizing):
		return -WinScore
	case state.IsTerminal():
		return 0
	}

	score := 0
	for _, window := range windows {
		var maxCount, minCount int
		for _, c := range window {
			switch state.CellAt(c.Column, c.Row) {
			case domain.Maximizing:
				maxCount++
			case domain.Minimizing:
				minCount++
			}
		}
		switch {
		case maxCount > 0 && minCount > 0:
			// dead window
		case maxCount > 0:
			score += e.windowScore(maxCount)
		case minCount > 0:
			score -= e.windowScore(minCount)
		}
	}

	center := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		switch state.CellAt(center, row) {
		case domain.Maximizing:
			score += e.weights.Center
		case domain.Minimizing:
			score -= e.weights.Center
		}
	}
	return score
}

func (e *WindowEvaluator[S]) windowScore(marks int) int {
	switch marks {
	case 3:
		return e.weights.Three
	case 2:
		return e.weights.Two
	case 1:
		return e.weights.One
	default:
		return 0
	}
}
