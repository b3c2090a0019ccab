package domain

// Board is a Connect Four position. It is a plain value: ApplyMove never
// touches the receiver and returns a fresh copy, so a Board can be handed to
// the search engine and the caller at the same time.
type Board struct {
	// cells[row][column], row 0 is the top row
	cells   [Rows][Columns]PlayerType
	heights [Columns]int
	plies   int
	first   PlayerType
	won     [3]bool
}

// NewBoard returns an empty board where Maximizing moves first.
func NewBoard() Board {
	return NewBoardStartingWith(Maximizing)
}

// NewBoardStartingWith returns an empty board where first makes the opening move.
func NewBoardStartingWith(first PlayerType) Board {
	if !first.IsPlayer() {
		first = Maximizing
	}
	return Board{first: first}
}

// First returns the player who made (or will make) the opening move. The zero
// Board behaves like NewBoard, so an unset first mover means Maximizing.
func (b Board) First() PlayerType {
	if b.first == Empty {
		return Maximizing
	}
	return b.first
}

// Plies returns the number of discs on the board.
func (b Board) Plies() int {
	return b.plies
}

// ToMove returns the side whose turn it is, derived from the ply count.
func (b Board) ToMove() PlayerType {
	if b.plies%2 == 0 {
		return b.First()
	}
	return b.First().Opponent()
}

// Height returns how many discs are stacked in column.
func (b Board) Height(column int) int {
	if column < 0 || column >= Columns {
		return 0
	}
	return b.heights[column]
}

// CellAt returns the mark at (column, row), Empty when the cell is free or
// the coordinates are off the board.
func (b Board) CellAt(column, row int) PlayerType {
	if !inBounds(column, row) {
		return Empty
	}
	return b.cells[row][column]
}

func (b Board) IsValidMove(column int) bool {
	return column >= 0 && column < Columns && b.heights[column] < Rows
}

// LegalMoves lists the columns that still have room, in ascending order.
func (b Board) LegalMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.heights[col] < Rows {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b Board) IsFull() bool {
	return b.plies == Rows*Columns
}

// ApplyMove drops player's disc into column and returns the resulting board.
// On error the returned board is the unchanged receiver.
func (b Board) ApplyMove(column int, player PlayerType) (Board, error) {
	if !player.IsPlayer() {
		return b, &IllegalMoveError{Column: column, Player: player, Reason: ErrNotAPlayer}
	}
	if column < 0 || column >= Columns {
		return b, &IllegalMoveError{Column: column, Player: player, Reason: ErrOutOfRange}
	}
	if b.heights[column] >= Rows {
		return b, &IllegalMoveError{Column: column, Player: player, Reason: ErrColumnFull}
	}
	if player != b.ToMove() {
		return b, &IllegalMoveError{Column: column, Player: player, Reason: ErrNotYourTurn}
	}

	next := b
	next.first = b.First()
	row := Rows - 1 - next.heights[column]
	next.cells[row][column] = player
	next.heights[column]++
	next.plies++
	if !next.won[player] && next.connectsThrough(row, column, player) {
		next.won[player] = true
	}
	return next, nil
}

// connectsThrough reports whether the disc at (row, column) is part of a run
// of ToWin or more of player's marks. Only lines through the last placed disc
// can become new wins, which keeps ApplyMove cheap for the search.
func (b *Board) connectsThrough(row, column int, player PlayerType) bool {
	for _, dir := range directions {
		count := 1 +
			b.countInDirection(row, column, dir.dRow, dir.dCol, player) +
			b.countInDirection(row, column, -dir.dRow, -dir.dCol, player)
		if count >= ToWin {
			return true
		}
	}
	return false
}

// this counts the number of disks in a specific direction
func (b *Board) countInDirection(row, column, dRow, dCol int, player PlayerType) int {
	count := 0
	r, c := row+dRow, column+dCol
	for inBounds(c, r) && b.cells[r][c] == player {
		count++
		r += dRow
		c += dCol
	}
	return count
}
