package bot

import (
	"math/rand"
	"testing"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveMinimax is plain minimax without pruning, used as the oracle.
func naiveMinimax(b domain.Board, depth int, eval Evaluator[domain.Board]) int {
	if b.IsTerminal() {
		return terminalScore(b, depth)
	}
	if depth == 0 {
		return eval.Evaluate(b, domain.Maximizing)
	}
	player := b.ToMove()
	best := maxScore
	if player == domain.Maximizing {
		best = minScore
	}
	for _, col := range b.LegalMoves() {
		child, err := b.ApplyMove(col, player)
		if err != nil {
			panic(err)
		}
		value := naiveMinimax(child, depth-1, eval)
		if player == domain.Maximizing {
			best = max(best, value)
		} else {
			best = min(best, value)
		}
	}
	return best
}

// randomPosition plays random moves and returns the last non-terminal board.
func randomPosition(t *testing.T, rng *rand.Rand, plies int) domain.Board {
	t.Helper()
	b := domain.NewBoardStartingWith(domain.PlayerType(1 + rng.Intn(2)))
	for i := 0; i < plies; i++ {
		moves := b.LegalMoves()
		next, err := b.ApplyMove(moves[rng.Intn(len(moves))], b.ToMove())
		require.NoError(t, err)
		if next.IsTerminal() {
			break
		}
		b = next
	}
	return b
}

func TestSearchRejectsDepthBelowOne(t *testing.T) {
	engine := NewBoardEngine()
	board := domain.NewBoard()

	for _, depth := range []int{0, -1} {
		got, err := engine.Search(board, depth)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidDepth)

		var depthErr *domain.InvalidDepthError
		require.ErrorAs(t, err, &depthErr)
		assert.Equal(t, depth, depthErr.Depth)
		assert.Equal(t, board, got)
	}
}

func TestSearchRejectsTerminalBoard(t *testing.T) {
	engine := NewBoardEngine()

	won := domain.MustParseBoard(domain.Maximizing,
		".......",
		".......",
		".......",
		".......",
		"OOO....",
		"XXXX...",
	)
	tie := domain.MustParseBoard(domain.Maximizing,
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
	)
	for _, b := range []domain.Board{won, tie} {
		got, err := engine.Search(b, 3)
		assert.ErrorIs(t, err, domain.ErrNoLegalMove)
		assert.Equal(t, b, got)
	}
}

func TestSearchFromZeroBoard(t *testing.T) {
	var zero domain.Board
	engine := NewBoardEngine()

	got, err := engine.Analyze(zero, 3)
	require.NoError(t, err)
	want, err := engine.Analyze(domain.NewBoard(), 3)
	require.NoError(t, err)

	assert.Equal(t, want.Column, got.Column)
	assert.Equal(t, want.Board, got.Board)
	assert.Equal(t, want.Values, got.Values)
	assert.Equal(t, domain.Maximizing, got.Board.CellAt(got.Column, domain.Rows-1))
	assert.Equal(t, 1, got.Board.Plies())
}

func TestSearchTakesImmediateWin(t *testing.T) {
	board := domain.MustParseBoard(domain.Maximizing,
		".......",
		".......",
		".......",
		".......",
		".OO....",
		".XXX..O",
	)
	engine := NewBoardEngine()

	for depth := 1; depth <= 5; depth++ {
		res, err := engine.Analyze(board, depth)
		require.NoError(t, err)

		assert.Equal(t, 0, res.Column, "depth %d", depth)
		assert.Equal(t, WinScore+depth-1, res.Score, "depth %d", depth)
		assert.True(t, res.Board.IsWinningFor(domain.Maximizing))

		pattern, ok := res.Board.WinningPattern()
		require.True(t, ok)
		assert.Equal(t, [domain.ToWin]domain.Coord{{Column: 0, Row: 5}, {Column: 1, Row: 5}, {Column: 2, Row: 5}, {Column: 3, Row: 5}}, pattern)
	}
}

func TestSearchForMinimizingAfterOpeningMove(t *testing.T) {
	board, err := domain.NewBoard().ApplyMove(3, domain.Maximizing)
	require.NoError(t, err)

	reply, err := NewBoardEngine().Search(board, 1)
	require.NoError(t, err)
	require.Equal(t, 2, reply.Plies())
	require.Equal(t, domain.Maximizing, reply.ToMove())

	for _, col := range reply.LegalMoves() {
		next, err := reply.ApplyMove(col, domain.Maximizing)
		require.NoError(t, err)
		assert.False(t, next.IsWinningFor(domain.Maximizing))
	}
}

func TestSearchBlocksThree(t *testing.T) {
	board := domain.MustParseBoard(domain.Maximizing,
		".......",
		".......",
		".......",
		".......",
		"......O",
		"XXX...O",
	)
	require.Equal(t, domain.Minimizing, board.ToMove())

	reply, err := NewBoardEngine().Search(board, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.Minimizing, reply.CellAt(3, domain.Rows-1))
}

func TestSearchPrefersBlockingOverHeuristics(t *testing.T) {
	board := domain.MustParseBoard(domain.Maximizing,
		".......",
		".......",
		".......",
		"O......",
		"O......",
		"OXXX...",
	)
	// X to move after O's three; X must finish its own four first
	res, err := NewBoardEngine().Analyze(board, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Column)
	assert.GreaterOrEqual(t, res.Score, WinScore)

	// without its own win available X has to block column 0
	blocked := domain.MustParseBoard(domain.Maximizing,
		".......",
		".......",
		".......",
		"O......",
		"O......",
		"OXX...X",
	)
	res, err = NewBoardEngine().Analyze(blocked, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Column)
}

func TestSearchIsIdempotentAndPure(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	engine := NewBoardEngine()
	for i := 0; i < 20; i++ {
		board := randomPosition(t, rng, 4+rng.Intn(12))
		snapshot := board

		first, err := engine.Search(board, 4)
		require.NoError(t, err)
		second, err := engine.Search(board, 4)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, snapshot, board)
		assert.Equal(t, board.Plies()+1, first.Plies())
	}
}

func TestAlphaBetaMatchesNaiveMinimax(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	eval := NewWindowEvaluator[domain.Board]()
	engine := NewEngine[domain.Board](eval)

	for i := 0; i < 40; i++ {
		board := randomPosition(t, rng, rng.Intn(20))
		for depth := 1; depth <= 4; depth++ {
			res, err := engine.Analyze(board, depth)
			require.NoError(t, err)

			player := board.ToMove()
			bestCol, bestScore := -1, 0
			for j, col := range board.LegalMoves() {
				child, err := board.ApplyMove(col, player)
				require.NoError(t, err)
				want := naiveMinimax(child, depth-1, eval)
				require.Equal(t, col, res.Values[j].Column)
				require.Equalf(t, want, res.Values[j].Score, "column %d depth %d\n%s", col, depth, board)

				better := want > bestScore
				if player == domain.Minimizing {
					better = want < bestScore
				}
				if bestCol == -1 || better {
					bestCol, bestScore = col, want
				}
			}
			require.Equal(t, bestCol, res.Column)
			require.Equal(t, bestScore, res.Score)
		}
	}
}

func TestParallelAndSequentialSearchAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	sequential := NewBoardEngine(WithWorkers(1))
	parallel := NewBoardEngine(WithWorkers(8))
	unordered := NewBoardEngine(WithWorkers(3), WithCenterFirst(false))

	for i := 0; i < 15; i++ {
		board := randomPosition(t, rng, rng.Intn(16))
		want, err := sequential.Analyze(board, 5)
		require.NoError(t, err)

		for _, engine := range []*Engine[domain.Board]{parallel, unordered} {
			got, err := engine.Analyze(board, 5)
			require.NoError(t, err)
			assert.Equal(t, want.Column, got.Column)
			assert.Equal(t, want.Board, got.Board)
			assert.Equal(t, want.Values, got.Values)
		}
	}
}

func TestTiesGoToLowestColumn(t *testing.T) {
	flat := EvaluatorFunc[domain.Board](func(domain.Board, domain.PlayerType) int { return 0 })
	engine := NewEngine[domain.Board](flat)

	res, err := engine.Analyze(domain.NewBoard(), 2)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Column)
	assert.Len(t, res.Values, domain.Columns)
}

func TestPruningVisitsFewerNodes(t *testing.T) {
	board := domain.NewBoard()
	res, err := NewBoardEngine(WithWorkers(1)).Analyze(board, 6)
	require.NoError(t, err)

	full := int64(0)
	var count func(b domain.Board, depth int)
	count = func(b domain.Board, depth int) {
		full++
		if depth == 0 || b.IsTerminal() {
			return
		}
		for _, col := range b.LegalMoves() {
			child, _ := b.ApplyMove(col, b.ToMove())
			count(child, depth-1)
		}
	}
	for _, col := range board.LegalMoves() {
		child, _ := board.ApplyMove(col, board.ToMove())
		count(child, 5)
	}
	assert.Less(t, res.Nodes, full)
}
