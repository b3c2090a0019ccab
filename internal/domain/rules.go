package domain

type direction struct {
	dRow, dCol int
}

// Scan order for runs: horizontal, vertical, diagonal down, diagonal up.
var directions = [4]direction{
	{0, 1},  // →
	{1, 0},  // ↓
	{1, 1},  // ↘
	{-1, 1}, // ↗
}

// IsWinningFor reports whether player owns ToWin or more contiguous cells in
// a row, column or diagonal.
func (b Board) IsWinningFor(player PlayerType) bool {
	if !player.IsPlayer() {
		return false
	}
	return b.won[player]
}

// IsTerminal reports a win for either side or a full board.
func (b Board) IsTerminal() bool {
	return b.won[Maximizing] || b.won[Minimizing] || b.IsFull()
}

func (b Board) IsTie() bool {
	return b.IsTerminal() && !b.won[Maximizing] && !b.won[Minimizing]
}

// Winner returns the winning side or Empty. If both sides somehow own a run
// the owner of the first pattern in scan order wins.
func (b Board) Winner() PlayerType {
	switch {
	case b.won[Maximizing] && b.won[Minimizing]:
		pattern, _ := b.WinningPattern()
		return b.CellAt(pattern[0].Column, pattern[0].Row)
	case b.won[Maximizing]:
		return Maximizing
	case b.won[Minimizing]:
		return Minimizing
	default:
		return Empty
	}
}

func (b Board) Status() GameStatus {
	switch {
	case b.won[Maximizing] || b.won[Minimizing]:
		return StatusWon
	case b.IsFull():
		return StatusDraw
	default:
		return StatusActive
	}
}

// WinningPattern returns the first winning run found scanning cells
// row-major from the top-left corner and, per cell, directions in the order
// horizontal, vertical, diagonal down, diagonal up. ok is false when nobody
// has won.
func (b Board) WinningPattern() (pattern [ToWin]Coord, ok bool) {
	if !b.won[Maximizing] && !b.won[Minimizing] {
		return pattern, false
	}
	return b.findRun(Empty)
}

// findRun scans for the first run owned by player, or by anyone when player
// is Empty.
func (b *Board) findRun(player PlayerType) (pattern [ToWin]Coord, ok bool) {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			mark := b.cells[row][col]
			if mark == Empty || (player != Empty && mark != player) {
				continue
			}
			for _, dir := range directions {
				if b.runFrom(row, col, dir, mark) {
					for i := 0; i < ToWin; i++ {
						pattern[i] = Coord{Column: col + i*dir.dCol, Row: row + i*dir.dRow}
					}
					return pattern, true
				}
			}
		}
	}
	return pattern, false
}

func (b *Board) runFrom(row, col int, dir direction, mark PlayerType) bool {
	endRow, endCol := row+(ToWin-1)*dir.dRow, col+(ToWin-1)*dir.dCol
	if !inBounds(endCol, endRow) {
		return false
	}
	for i := 1; i < ToWin; i++ {
		if b.cells[row+i*dir.dRow][col+i*dir.dCol] != mark {
			return false
		}
	}
	return true
}
