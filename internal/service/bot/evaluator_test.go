package bot

import (
	"testing"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowCount(t *testing.T) {
	// 24 horizontal, 21 vertical, 12 per diagonal direction
	assert.Len(t, windows, 69)
}

func TestEvaluateTerminalBoards(t *testing.T) {
	eval := NewWindowEvaluator[domain.Board]()

	tie := domain.MustParseBoard(domain.Maximizing,
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
	)
	assert.Equal(t, 0, eval.Evaluate(tie, domain.Maximizing))
	assert.Equal(t, 0, eval.Evaluate(tie, domain.Minimizing))

	maxWins := domain.MustParseBoard(domain.Maximizing,
		".......",
		".......",
		".......",
		".......",
		"OOO....",
		"XXXX...",
	)
	assert.GreaterOrEqual(t, eval.Evaluate(maxWins, domain.Maximizing), WinScore)
	assert.LessOrEqual(t, eval.Evaluate(maxWins, domain.Minimizing), -WinScore)

	minWins := domain.MustParseBoard(domain.Minimizing,
		".......",
		".......",
		"O......",
		"O......",
		"O......",
		"O..XXX.",
	)
	assert.LessOrEqual(t, eval.Evaluate(minWins, domain.Maximizing), -WinScore)
}

func TestEvaluateEmptyBoardIsZero(t *testing.T) {
	eval := NewWindowEvaluator[domain.Board]()
	assert.Equal(t, 0, eval.Evaluate(domain.NewBoard(), domain.Maximizing))
}

func TestEvaluateIgnoresSideToMove(t *testing.T) {
	eval := NewWindowEvaluator[domain.Board]()
	rows := []string{
		".......",
		".......",
		".......",
		".......",
		"...O...",
		"..XXO..",
	}
	// same discs, different first mover, so a different side to move
	maxToMove := domain.MustParseBoard(domain.Maximizing, rows...)
	minToMove := domain.MustParseBoard(domain.Minimizing, rows...)
	require.NotEqual(t, maxToMove.ToMove(), minToMove.ToMove())

	assert.Equal(t, eval.Evaluate(maxToMove, domain.Maximizing), eval.Evaluate(minToMove, domain.Maximizing))
	assert.Equal(t, -eval.Evaluate(maxToMove, domain.Maximizing), eval.Evaluate(maxToMove, domain.Minimizing))
}

func TestEvaluateIsMonotone(t *testing.T) {
	eval := NewWindowEvaluator[domain.Board]()
	score := func(first domain.PlayerType, rows ...string) int {
		return eval.Evaluate(domain.MustParseBoard(first, rows...), domain.Maximizing)
	}

	// only Maximizing's discs differ
	two := score(domain.Maximizing,
		".......",
		".......",
		".......",
		".......",
		"......O",
		"XX....O",
	)
	three := score(domain.Maximizing,
		".......",
		".......",
		".......",
		".......",
		"......O",
		"XXX...O",
	)
	assert.Greater(t, three, two)

	// only Minimizing's discs differ
	minTwo := score(domain.Minimizing,
		".......",
		".......",
		".......",
		".......",
		"X......",
		"X....OO",
	)
	minThree := score(domain.Minimizing,
		".......",
		".......",
		".......",
		".......",
		"X......",
		"X...OOO",
	)
	assert.Less(t, minThree, minTwo)
}

func TestEvaluateDeadWindowsCountNothing(t *testing.T) {
	eval := NewWindowEvaluator[domain.Board]()
	alone := domain.MustParseBoard(domain.Maximizing,
		".......",
		".......",
		".......",
		".......",
		".......",
		"X.....O",
	)
	assert.Equal(t, 0, eval.Evaluate(alone, domain.Maximizing), "mirrored single discs cancel out")

	blocked := domain.MustParseBoard(domain.Maximizing,
		".......",
		".......",
		".......",
		".......",
		".......",
		"XO.....",
	)
	// every window through both discs is dead; compare against the discs apart
	apart := domain.MustParseBoard(domain.Maximizing,
		".......",
		".......",
		".......",
		".......",
		".......",
		"X.....O",
	)
	assert.NotEqual(t, eval.Evaluate(apart, domain.Maximizing), eval.Evaluate(blocked, domain.Maximizing))
}

func TestWeightsValidate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
	assert.Less(t, DefaultWeights().Bound(), WinScore)

	assert.Error(t, Weights{Three: 1, Two: 5, One: 1}.Validate())
	assert.Error(t, Weights{Three: WinScore, Two: 1, One: 1}.Validate())
	assert.Error(t, Weights{Three: 3, Two: 2, One: -1}.Validate())

	_, err := NewWindowEvaluatorWithWeights[domain.Board](Weights{Three: 1, Two: 2})
	assert.Error(t, err)

	custom := Weights{Three: 100, Two: 20, One: 2, Center: 4}
	eval, err := NewWindowEvaluatorWithWeights[domain.Board](custom)
	require.NoError(t, err)
	assert.Equal(t, custom, eval.Weights())
}

func TestFingerprintTracksWeights(t *testing.T) {
	standard := NewBoardEngine()
	assert.Equal(t, "window-50-10-1-3", standard.Fingerprint())
	assert.Equal(t, standard.Fingerprint(), NewBoardEngine(WithWorkers(1), WithCenterFirst(false)).Fingerprint())

	eval, err := NewWindowEvaluatorWithWeights[domain.Board](Weights{Three: 100, Two: 20, One: 2, Center: 4})
	require.NoError(t, err)
	assert.Equal(t, "window-100-20-2-4", NewEngine[domain.Board](eval).Fingerprint())

	flat := EvaluatorFunc[domain.Board](func(domain.Board, domain.PlayerType) int { return 0 })
	assert.NotEqual(t, standard.Fingerprint(), NewEngine[domain.Board](flat).Fingerprint())
}
