package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
)

// everyCell lists all nine cells so the human always has a free one left to try.
const everyCell = "0 0\n0 1\n0 2\n1 0\n1 1\n1 2\n2 0\n2 1\n2 2\n"

func newGame(t *testing.T, humanMark, input string) (*Game, *bytes.Buffer) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	analyzer := usecase.NewAnalyzer(logger, config.Search{})

	var out bytes.Buffer
	game, err := New(logger, analyzer, humanMark, strings.NewReader(input), &out)
	require.NoError(t, err)

	return game, &out
}

func TestGame_Run(t *testing.T) {
	t.Run("Solver opens and never loses", func(t *testing.T) {
		// Given: the human plays O and starts with garbage input
		game, out := newGame(t, "O", "hello\n5 5\n"+everyCell)

		// When: running the game
		board, err := game.Run(context.Background())

		// Then: the game ends and O did not win
		require.NoError(t, err)
		assert.True(t, board.IsTerminal())
		assert.GreaterOrEqual(t, board.Utility(), 0)
		assert.Contains(t, out.String(), "Solver plays (0, 0)")
		assert.Contains(t, out.String(), "expected two numbers")
		assert.Contains(t, out.String(), "Cell (5, 5) is not available")
		assert.Contains(t, out.String(), "Game over")
	})

	t.Run("Human opens and never wins", func(t *testing.T) {
		// Given: the human plays X
		game, out := newGame(t, "X", everyCell)

		// When: running the game
		board, err := game.Run(context.Background())

		// Then: the game ends and X did not win
		require.NoError(t, err)
		assert.LessOrEqual(t, board.Utility(), 0)
		assert.Contains(t, out.String(), "Game over")
	})

	t.Run("Input ends early", func(t *testing.T) {
		// Given: the human plays X but sends a single move
		game, _ := newGame(t, "X", "1 1\n")

		// When: running the game
		_, err := game.Run(context.Background())

		// Then: ErrInputClosed is returned
		assert.ErrorIs(t, err, ErrInputClosed)
	})

	t.Run("Canceled context", func(t *testing.T) {
		game, _ := newGame(t, "X", everyCell)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := game.Run(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	_, err := New(logger, nil, "Z", strings.NewReader(""), io.Discard)

	assert.ErrorIs(t, err, apperror.ErrInvalidMark)
}
