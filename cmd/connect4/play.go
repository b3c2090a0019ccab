package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

// play drives one session from line-based input until the game ends, the
// input runs out or the player quits.
func play(ctx context.Context, in io.Reader, out io.Writer, session *game.Session) error {
	scanner := bufio.NewScanner(in)
	render(out, session.Board())

	for !session.IsFinished() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if session.MachineToMove() {
			fmt.Fprintf(out, "%s is thinking...\n", session.BotName)
			reply, err := session.MachineMove(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s plays column %d\n", session.BotName, reply.Column)
			render(out, reply.Board)
			continue
		}

		fmt.Fprintf(out, "your move (0-%d, u to undo, q to quit): ", domain.Columns-1)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch line {
		case "":
			continue
		case "q", "quit":
			fmt.Fprintln(out, "bye")
			return nil
		case "u", "undo":
			if !session.Undo() {
				fmt.Fprintln(out, "nothing to undo")
			}
			render(out, session.Board())
			continue
		}

		column, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(out, "not a column: %q\n", line)
			continue
		}
		board, err := session.HandleMove(column)
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}
		render(out, board)
	}

	announce(out, session)
	return nil
}

func render(out io.Writer, board domain.Board) {
	var sb strings.Builder
	for col := 0; col < domain.Columns; col++ {
		sb.WriteString(strconv.Itoa(col))
	}
	fmt.Fprintf(out, "\n%s\n", sb.String())
	for _, line := range board.Lines() {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out)
}

func announce(out io.Writer, session *game.Session) {
	status, winner := session.Status()
	switch {
	case status == domain.StatusDraw:
		fmt.Fprintln(out, "draw: the board is full")
		return
	case winner == session.Human:
		fmt.Fprintln(out, "you win!")
	default:
		fmt.Fprintf(out, "%s wins\n", session.BotName)
	}
	if pattern, ok := session.Board().WinningPattern(); ok {
		fmt.Fprintf(out, "winning line: %v\n", pattern)
	}
}
