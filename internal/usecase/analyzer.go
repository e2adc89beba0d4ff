package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

// Analysis is everything the core can tell about a single board.
type Analysis struct {
	PlayerToMove entity.Mark     `json:"player_to_move"`
	LegalActions []entity.Action `json:"legal_actions"`
	Winner       entity.Mark     `json:"winner"`
	Terminal     bool            `json:"terminal"`
	Utility      int             `json:"utility"`
	Value        int             `json:"value"`
	BestAction   *entity.Action  `json:"best_action"`
}

// Playout is a game played best against best until it ends.
type Playout struct {
	Actions []entity.Action
	Final   entity.Board
}

type Analyzer struct {
	logger *slog.Logger

	parallel bool
	workers  int
}

func NewAnalyzer(logger *slog.Logger, conf config.Search) *Analyzer {
	return &Analyzer{
		logger:   logger.With("component", "analyzer"),
		parallel: conf.Parallel,
		workers:  conf.Workers,
	}
}

// Solve searches the board with the configured strategy and logs the search.
func (that *Analyzer) Solve(ctx context.Context, board entity.Board) (tictactoe.Result, error) {
	log := that.logger.With("method", "Solve", "search_id", uuid.NewString())

	start := time.Now()

	var (
		result tictactoe.Result
		err    error
	)

	if that.parallel {
		result, err = tictactoe.SolveParallel(ctx, board, that.workers)
	} else {
		result, err = tictactoe.Solve(board)
	}

	if err != nil {
		log.Error("search failed", "error", err)
		return tictactoe.Result{}, fmt.Errorf("failed to search board: %w", err)
	}

	log.Debug("search finished",
		"player", board.PlayerToMove(),
		"value", result.Value,
		"action", result.Action,
		"nodes", result.Nodes,
		"parallel", that.parallel,
		"elapsed", time.Since(start),
	)

	return result, nil
}

// BestAction returns the optimal action for the player to move, or nil on a terminal board.
func (that *Analyzer) BestAction(ctx context.Context, board entity.Board) (*entity.Action, error) {
	if board.IsTerminal() {
		return nil, nil
	}

	result, err := that.Solve(ctx, board)
	if err != nil {
		return nil, err
	}

	return result.Action, nil
}

func (that *Analyzer) Analyze(ctx context.Context, board entity.Board) (*Analysis, error) {
	result, err := that.Solve(ctx, board)
	if err != nil {
		return nil, err
	}

	winner, _ := board.Winner()

	return &Analysis{
		PlayerToMove: board.PlayerToMove(),
		LegalActions: board.LegalActions(),
		Winner:       winner,
		Terminal:     board.IsTerminal(),
		Utility:      board.Utility(),
		Value:        result.Value,
		BestAction:   result.Action,
	}, nil
}

// Apply plays action for the player to move. Finished games accept no more moves.
func (that *Analyzer) Apply(_ context.Context, board entity.Board, action entity.Action) (entity.Board, error) {
	if board.IsTerminal() {
		return board, apperror.ErrGameFinished
	}

	next, err := board.Apply(action)
	if err != nil {
		return board, fmt.Errorf("failed to apply action: %w", err)
	}

	return next, nil
}

// PlayOut lets both sides play the best action from board until the game ends.
func (that *Analyzer) PlayOut(ctx context.Context, board entity.Board) (*Playout, error) {
	log := that.logger.With("method", "PlayOut")

	playout := &Playout{Final: board}

	for !playout.Final.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("playout interrupted: %w", err)
		}

		action, err := that.BestAction(ctx, playout.Final)
		if err != nil {
			return nil, err
		}

		next, err := that.Apply(ctx, playout.Final, *action)
		if err != nil {
			return nil, err
		}

		log.Debug("move played", "player", playout.Final.PlayerToMove(), "action", action.String())

		playout.Actions = append(playout.Actions, *action)
		playout.Final = next
	}

	log.Info("playout finished", "moves", len(playout.Actions), "utility", playout.Final.Utility())

	return playout, nil
}
