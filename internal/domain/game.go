package domain

// Game keeps the sequence of boards of one match. Boards are values, so undo
// is dropping the last one.
type Game struct {
	history []Board
	moves   []int
}

func NewGame(first PlayerType) *Game {
	return &Game{
		history: []Board{NewBoardStartingWith(first)},
	}
}

// NewGameFrom starts a game from an existing position.
func NewGameFrom(board Board) *Game {
	return &Game{history: []Board{board}}
}

func (g *Game) Board() Board {
	return g.history[len(g.history)-1]
}

func (g *Game) CurrentPlayer() PlayerType {
	return g.Board().ToMove()
}

func (g *Game) MoveCount() int {
	return len(g.moves)
}

// Moves returns the columns played since the game started.
func (g *Game) Moves() []int {
	out := make([]int, len(g.moves))
	copy(out, g.moves)
	return out
}

func (g *Game) Status() GameStatus {
	return g.Board().Status()
}

func (g *Game) Winner() PlayerType {
	return g.Board().Winner()
}

func (g *Game) IsFinished() bool {
	return g.Board().IsTerminal()
}

// MakeMove plays column for player. A finished game rejects every move.
func (g *Game) MakeMove(player PlayerType, column int) (Board, error) {
	current := g.Board()
	if current.IsTerminal() {
		return current, &IllegalMoveError{Column: column, Player: player, Reason: ErrNoLegalMove}
	}
	next, err := current.ApplyMove(column, player)
	if err != nil {
		return current, err
	}
	g.Adopt(next, column)
	return next, nil
}

// Adopt records a board produced elsewhere, e.g. by the search engine, as
// the next position. column is the move that led to it.
func (g *Game) Adopt(next Board, column int) {
	g.history = append(g.history, next)
	g.moves = append(g.moves, column)
}

// Undo takes back the last ply. It reports false at the start of the game.
func (g *Game) Undo() bool {
	if len(g.history) == 1 {
		return false
	}
	g.history = g.history[:len(g.history)-1]
	g.moves = g.moves[:len(g.moves)-1]
	return true
}
