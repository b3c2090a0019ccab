package bot

import "github.com/iamasit07/connect4-engine/internal/domain"

// State is what the engine needs from a board. ApplyMove must leave the
// receiver untouched and return an independent successor: the engine hands
// the same state to several workers at once.
type State[S any] interface {
	IsTerminal() bool
	IsWinningFor(player domain.PlayerType) bool
	LegalMoves() []int
	ApplyMove(column int, player domain.PlayerType) (S, error)
	ToMove() domain.PlayerType
}

// Grid is the read-only view the window evaluator scores.
type Grid interface {
	CellAt(column, row int) domain.PlayerType
	IsWinningFor(player domain.PlayerType) bool
	IsTerminal() bool
}

var (
	_ State[domain.Board] = domain.Board{}
	_ Grid                = domain.Board{}
)
