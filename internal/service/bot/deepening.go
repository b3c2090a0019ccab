package bot

import (
	"context"
	"errors"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// SearchWithin deepens the search one ply at a time up to maxDepth and stops
// when ctx is done. The result always comes from the deepest depth that was
// searched to completion; a depth interrupted halfway is thrown away. Depth 1
// is always completed, even with an expired context.
func (e *Engine[S]) SearchWithin(ctx context.Context, board S, maxDepth int) (Result[S], error) {
	if maxDepth < 1 {
		return Result[S]{Board: board}, &domain.InvalidDepthError{Depth: maxDepth}
	}

	res, err := e.analyze(context.Background(), board, 1)
	if err != nil {
		return res, err
	}
	nodes := res.Nodes

	for depth := 2; depth <= maxDepth; depth++ {
		if ctx.Err() != nil {
			break
		}
		next, err := e.analyze(ctx, board, depth)
		if errors.Is(err, errAborted) {
			e.logger.Debug().
				Int("completed_depth", res.Depth).
				Int("aborted_depth", depth).
				Msg("search budget exhausted")
			break
		}
		if err != nil {
			return res, err
		}
		nodes += next.Nodes
		res = next
	}

	res.Nodes = nodes
	return res, nil
}
