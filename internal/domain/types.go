package domain

import "fmt"

// PlayerType tags the two sides of a game. The engine always maximizes
// for Maximizing and minimizes for Minimizing.
type PlayerType int

const (
	Empty      PlayerType = 0
	Maximizing PlayerType = 1
	Minimizing PlayerType = 2
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Opponent returns the other side. Empty has no opponent.
func (p PlayerType) Opponent() PlayerType {
	switch p {
	case Maximizing:
		return Minimizing
	case Minimizing:
		return Maximizing
	default:
		return Empty
	}
}

func (p PlayerType) IsPlayer() bool {
	return p == Maximizing || p == Minimizing
}

func (p PlayerType) String() string {
	switch p {
	case Empty:
		return "empty"
	case Maximizing:
		return "maximizing"
	case Minimizing:
		return "minimizing"
	default:
		return fmt.Sprintf("PlayerType(%d)", int(p))
	}
}

// Coord addresses a single cell. Row 0 is the top row.
type Coord struct {
	Column int
	Row    int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Column, c.Row)
}

func inBounds(column, row int) bool {
	return column >= 0 && column < Columns && row >= 0 && row < Rows
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrIllegalMove  Error = "illegal move"
	ErrColumnFull   Error = "column is full"
	ErrOutOfRange   Error = "column is out of range"
	ErrNotYourTurn  Error = "not this player's turn"
	ErrNotAPlayer   Error = "not a player"
	ErrInvalidDepth Error = "invalid search depth"
	ErrNoLegalMove  Error = "no legal move"
	ErrInvalidBoard Error = "invalid board"
	ErrCacheMiss    Error = "cache miss"
	ErrNoSession    Error = "session not found"
)

// IllegalMoveError is returned by ApplyMove. It matches ErrIllegalMove and
// its Reason through errors.Is.
type IllegalMoveError struct {
	Column int
	Player PlayerType
	Reason Error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move at column %d by %s: %s", e.Column, e.Player, e.Reason)
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove || target == e.Reason
}

// InvalidDepthError reports a search depth below 1.
type InvalidDepthError struct {
	Depth int
}

func (e *InvalidDepthError) Error() string {
	return fmt.Sprintf("search depth must be at least 1, got %d", e.Depth)
}

func (e *InvalidDepthError) Unwrap() error {
	return ErrInvalidDepth
}
