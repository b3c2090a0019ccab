package bot

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchWithinWithoutDeadlineMatchesFullDepth(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	engine := NewBoardEngine()
	for i := 0; i < 10; i++ {
		board := randomPosition(t, rng, rng.Intn(14))

		want, err := engine.Analyze(board, 5)
		require.NoError(t, err)
		got, err := engine.SearchWithin(context.Background(), board, 5)
		require.NoError(t, err)

		assert.Equal(t, 5, got.Depth)
		assert.Equal(t, want.Column, got.Column)
		assert.Equal(t, want.Board, got.Board)
		assert.Equal(t, want.Values, got.Values)
	}
}

func TestSearchWithinExpiredContextStillCompletesDepthOne(t *testing.T) {
	engine := NewBoardEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	board := domain.NewBoard()
	res, err := engine.SearchWithin(ctx, board, 12)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Depth)

	want, err := engine.Analyze(board, 1)
	require.NoError(t, err)
	assert.Equal(t, want.Column, res.Column)
	assert.Equal(t, want.Board, res.Board)
}

func TestSearchWithinReturnsLastCompletedDepth(t *testing.T) {
	engine := NewBoardEngine()
	board := domain.NewBoard()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// depth 42 cannot finish in 50ms from the empty board
	res, err := engine.SearchWithin(ctx, board, 42)
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.Depth, 1)
	require.Less(t, res.Depth, 42)

	want, err := engine.Analyze(board, res.Depth)
	require.NoError(t, err)
	assert.Equal(t, want.Column, res.Column)
	assert.Equal(t, want.Values, res.Values)
}

func TestSearchWithinValidatesInput(t *testing.T) {
	engine := NewBoardEngine()

	_, err := engine.SearchWithin(context.Background(), domain.NewBoard(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidDepth)

	won := domain.MustParseBoard(domain.Maximizing,
		".......",
		".......",
		".......",
		".......",
		"OOO....",
		"XXXX...",
	)
	_, err = engine.SearchWithin(context.Background(), won, 4)
	assert.ErrorIs(t, err, domain.ErrNoLegalMove)
}
