package game

import (
	"context"
	"sync"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/pkg/uid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Session is one game between a human and the machine. The human always
// plays Minimizing and the machine Maximizing; HumanFirst only decides who
// opens.
type Session struct {
	GameID     string
	Human      domain.PlayerType
	Machine    domain.PlayerType
	Difficulty bot.BotDifficulty
	BotName    string
	Depth      int
	CreatedAt  time.Time

	finishedAt time.Time
	game       *domain.Game
	searcher   Searcher
	logger     zerolog.Logger
	mu         sync.Mutex
}

// SessionOptions configures a new session. A Depth of zero takes the depth
// of the difficulty.
type SessionOptions struct {
	Difficulty bot.BotDifficulty
	Depth      int
	HumanFirst bool
}

func NewSession(opts SessionOptions, searcher Searcher, logger zerolog.Logger) *Session {
	depth := opts.Depth
	if depth < 1 {
		depth = opts.Difficulty.Depth()
	}
	first := domain.Maximizing
	if opts.HumanFirst {
		first = domain.Minimizing
	}
	gameID := uid.GenerateGameID()
	return &Session{
		GameID:     gameID,
		Human:      domain.Minimizing,
		Machine:    domain.Maximizing,
		Difficulty: opts.Difficulty,
		BotName:    opts.Difficulty.BotName(),
		Depth:      depth,
		CreatedAt:  time.Now(),
		game:       domain.NewGame(first),
		searcher:   searcher,
		logger:     logger.With().Str("component", "session").Str("game_id", gameID).Logger(),
	}
}

func (s *Session) Board() domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Board()
}

// Status reports the game status and, once won, the winner.
func (s *Session) Status() (domain.GameStatus, domain.PlayerType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Status(), s.game.Winner()
}

func (s *Session) Moves() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Moves()
}

func (s *Session) IsFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.IsFinished()
}

// FinishedAt returns when the game ended, or the zero time while it is
// still running.
func (s *Session) FinishedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishedAt
}

// MachineToMove reports whether the next ply belongs to the machine.
func (s *Session) MachineToMove() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.game.IsFinished() && s.game.CurrentPlayer() == s.Machine
}

// HandleMove plays the human's column. On error the board is unchanged.
func (s *Session) HandleMove(column int) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.game.MakeMove(s.Human, column)
	if err != nil {
		return board, errors.Wrapf(err, "game %s: human move", s.GameID)
	}
	s.logger.Info().Int("column", column).Int("ply", board.Plies()).Msg("human moved")
	s.markFinished(board)
	return board, nil
}

// MachineMove searches for the machine's reply and plays it. The session
// lock is released during the search; if the board changed meanwhile the
// reply is discarded.
func (s *Session) MachineMove(ctx context.Context) (Reply, error) {
	s.mu.Lock()
	board := s.game.Board()
	if board.IsTerminal() {
		s.mu.Unlock()
		return Reply{Column: -1, Board: board}, errors.Wrapf(domain.ErrNoLegalMove, "game %s", s.GameID)
	}
	if board.ToMove() != s.Machine {
		s.mu.Unlock()
		return Reply{Column: -1, Board: board}, errors.Wrapf(domain.ErrNotYourTurn, "game %s: machine move", s.GameID)
	}
	s.mu.Unlock()

	reply, err := s.searcher.Reply(ctx, board, s.Depth)
	if err != nil {
		return reply, errors.Wrapf(err, "game %s: search", s.GameID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.Board() != board {
		return Reply{Column: -1, Board: s.game.Board()}, errors.Errorf("game %s: board changed during search", s.GameID)
	}
	s.game.Adopt(reply.Board, reply.Column)
	s.logger.Info().
		Int("column", reply.Column).
		Int("depth", reply.Depth).
		Bool("cached", reply.Cached).
		Msg("machine moved")
	s.markFinished(reply.Board)
	return reply, nil
}

// MoveOutcome is delivered once by RequestMachineMove.
type MoveOutcome struct {
	Reply Reply
	Err   error
}

// RequestMachineMove runs MachineMove in the background. The channel yields
// exactly one outcome and is then closed.
func (s *Session) RequestMachineMove(ctx context.Context) <-chan MoveOutcome {
	out := make(chan MoveOutcome, 1)
	go func() {
		defer close(out)
		reply, err := s.MachineMove(ctx)
		out <- MoveOutcome{Reply: reply, Err: err}
	}()
	return out
}

// Undo takes back plies until it is the human's turn again, normally the
// machine's reply and the human move before it. It reports false when
// there is nothing to take back.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	undone := false
	for s.game.Undo() {
		undone = true
		if s.game.CurrentPlayer() == s.Human {
			break
		}
	}
	if undone {
		s.finishedAt = time.Time{}
		s.logger.Info().Int("ply", s.game.Board().Plies()).Msg("moves taken back")
	}
	return undone
}

func (s *Session) markFinished(board domain.Board) {
	if !board.IsTerminal() {
		return
	}
	s.finishedAt = time.Now()
	s.logger.Info().
		Str("status", string(board.Status())).
		Str("winner", board.Winner().String()).
		Dur("duration", s.finishedAt.Sub(s.CreatedAt)).
		Msg("game finished")
}

func (s *Session) expired(now time.Time, finishedMaxAge, activeMaxAge time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.IsFinished() {
		return now.Sub(s.finishedAt) > finishedMaxAge
	}
	return now.Sub(s.CreatedAt) > activeMaxAge
}
