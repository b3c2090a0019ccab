package domain

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Text notation: one string per row, top row first, '.' for an empty cell,
// 'X' for Maximizing and 'O' for Minimizing.
const (
	emptyChar      = '.'
	maximizingChar = 'X'
	minimizingChar = 'O'
)

func (p PlayerType) Symbol() byte {
	switch p {
	case Maximizing:
		return maximizingChar
	case Minimizing:
		return minimizingChar
	default:
		return emptyChar
	}
}

func playerFromSymbol(ch byte) (PlayerType, bool) {
	switch ch {
	case emptyChar:
		return Empty, true
	case maximizingChar, 'x':
		return Maximizing, true
	case minimizingChar, 'o':
		return Minimizing, true
	default:
		return Empty, false
	}
}

// ParseBoard builds a board from its text notation. first is the player who
// opened the game; it decides whose turn it is. Every problem found is
// reported, not only the first one.
func ParseBoard(first PlayerType, rows ...string) (Board, error) {
	if !first.IsPlayer() {
		return Board{}, errors.Wrapf(ErrInvalidBoard, "first mover must be a player, got %s", first)
	}
	if len(rows) != Rows {
		return Board{}, errors.Wrapf(ErrInvalidBoard, "expected %d rows, got %d", Rows, len(rows))
	}

	var result *multierror.Error
	board := NewBoardStartingWith(first)
	var counts [3]int

	for row, line := range rows {
		line = strings.TrimSpace(line)
		if len(line) != Columns {
			result = multierror.Append(result, errors.Wrapf(ErrInvalidBoard, "row %d has %d cells, expected %d", row, len(line), Columns))
			continue
		}
		for col := 0; col < Columns; col++ {
			player, ok := playerFromSymbol(line[col])
			if !ok {
				result = multierror.Append(result, errors.Wrapf(ErrInvalidBoard, "row %d column %d: unknown mark %q", row, col, line[col]))
				continue
			}
			board.cells[row][col] = player
			counts[player]++
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return Board{}, err
	}

	for col := 0; col < Columns; col++ {
		height := 0
		for row := Rows - 1; row >= 0; row-- {
			if board.cells[row][col] == Empty {
				break
			}
			height++
		}
		for row := Rows - 1 - height; row >= 0; row-- {
			if board.cells[row][col] != Empty {
				result = multierror.Append(result, errors.Wrapf(ErrInvalidBoard, "column %d has a floating disc at row %d", col, row))
				break
			}
		}
		board.heights[col] = height
	}

	firstCount, secondCount := counts[first], counts[first.Opponent()]
	if firstCount != secondCount && firstCount != secondCount+1 {
		result = multierror.Append(result, errors.Wrapf(ErrInvalidBoard, "%s has %d discs and %s has %d", first, firstCount, first.Opponent(), secondCount))
	}
	if err := result.ErrorOrNil(); err != nil {
		return Board{}, err
	}

	board.plies = firstCount + secondCount
	for _, player := range []PlayerType{Maximizing, Minimizing} {
		_, board.won[player] = board.findRun(player)
	}
	return board, nil
}

// MustParseBoard is ParseBoard for fixtures known to be valid.
func MustParseBoard(first PlayerType, rows ...string) Board {
	board, err := ParseBoard(first, rows...)
	if err != nil {
		panic(err)
	}
	return board
}

// Lines returns the text notation, top row first.
func (b Board) Lines() []string {
	rows := make([]string, Rows)
	var line [Columns]byte
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			line[col] = b.cells[row][col].Symbol()
		}
		rows[row] = string(line[:])
	}
	return rows
}

func (b Board) String() string {
	return strings.Join(b.Lines(), "\n")
}

// Key is a compact identity for the position: the first mover followed by
// every cell in row-major order.
func (b Board) Key() string {
	var key [1 + Rows*Columns]byte
	key[0] = b.First().Symbol()
	i := 1
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			key[i] = b.cells[row][col].Symbol()
			i++
		}
	}
	return string(key[:])
}
