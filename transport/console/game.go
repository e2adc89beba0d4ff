package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

var (
	ErrInputClosed = errors.New("input closed before the game ended")
	errBadInput    = errors.New("expected two numbers: row col")
)

type analyzer interface {
	BestAction(ctx context.Context, board entity.Board) (*entity.Action, error)
	Apply(ctx context.Context, board entity.Board, action entity.Action) (entity.Board, error)
}

// Game is an interactive game between a human on in/out and the solver.
type Game struct {
	logger   *slog.Logger
	analyzer analyzer

	human entity.Mark
	in    *bufio.Scanner
	out   io.Writer
}

func New(logger *slog.Logger, analyzer analyzer, humanMark string, in io.Reader, out io.Writer) (*Game, error) {
	human := entity.Mark(humanMark)
	if human != entity.PlayerX && human != entity.PlayerO {
		return nil, fmt.Errorf("%w: human must play X or O, got %q", apperror.ErrInvalidMark, humanMark)
	}

	return &Game{
		logger:   logger.With("component", "console"),
		analyzer: analyzer,
		human:    human,
		in:       bufio.NewScanner(in),
		out:      out,
	}, nil
}

// Run plays one game from the initial state and returns the final board.
func (that *Game) Run(ctx context.Context) (entity.Board, error) {
	board := entity.InitialState()

	that.printf("You play %s. Enter moves as \"row col\", rows and columns are 0-2.\n", that.human)

	for !board.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return board, fmt.Errorf("game interrupted: %w", err)
		}

		that.printf("\n%s", board)

		next, err := that.turn(ctx, board)
		if err != nil {
			return board, err
		}
		board = next
	}

	that.printf("\n%s%s\n", board, resultLine(board))
	that.logger.Info("game finished", "utility", board.Utility())

	return board, nil
}

func (that *Game) turn(ctx context.Context, board entity.Board) (entity.Board, error) {
	if board.PlayerToMove() != that.human {
		action, err := that.analyzer.BestAction(ctx, board)
		if err != nil {
			return board, fmt.Errorf("solver failed to move: %w", err)
		}

		that.printf("Solver plays %s\n", action)

		return that.analyzer.Apply(ctx, board, *action)
	}

	for {
		action, err := that.readAction(board)
		if errors.Is(err, errBadInput) {
			that.printf("%v\n", err)
			continue
		}
		if err != nil {
			return board, err
		}

		next, err := that.analyzer.Apply(ctx, board, action)
		if errors.Is(err, apperror.ErrInvalidAction) {
			that.printf("Cell %s is not available\n", action)
			continue
		}

		return next, err
	}
}

func (that *Game) readAction(board entity.Board) (entity.Action, error) {
	free := lo.Map(board.LegalActions(), func(action entity.Action, _ int) string {
		return action.String()
	})
	that.printf("Your move, free cells %s: ", strings.Join(free, " "))

	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return entity.Action{}, fmt.Errorf("failed to read move: %w", err)
		}
		return entity.Action{}, ErrInputClosed
	}

	fields := strings.Fields(that.in.Text())
	if len(fields) != 2 {
		return entity.Action{}, errBadInput
	}

	row, rowErr := strconv.Atoi(fields[0])
	col, colErr := strconv.Atoi(fields[1])
	if rowErr != nil || colErr != nil {
		return entity.Action{}, errBadInput
	}

	return entity.Action{Row: row, Col: col}, nil
}

func (that *Game) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func resultLine(board entity.Board) string {
	if winner, ok := board.Winner(); ok {
		return fmt.Sprintf("Game over: %s wins", winner)
	}

	return "Game over: tie"
}
