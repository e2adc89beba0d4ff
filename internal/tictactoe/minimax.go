package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const (
	maxUtility = 1
	minUtility = -1
)

// Result is the game-theoretic value of a board and the action that reaches it.
// Action is nil for terminal boards.
type Result struct {
	Value  int            `json:"value"`
	Action *entity.Action `json:"action,omitempty"`
	Nodes  int64          `json:"nodes"`
}

// search carries the per-invocation node counter. Nothing else survives between calls.
type search struct {
	nodes int64
}

// Solve runs an exhaustive minimax search for the player to move.
// X maximizes the utility, O minimizes it.
func Solve(board entity.Board) (Result, error) {
	s := &search{}

	var (
		value  int
		action *entity.Action
		err    error
	)

	if board.PlayerToMove() == entity.PlayerX {
		value, action, err = s.maxValue(board)
	} else {
		value, action, err = s.minValue(board)
	}

	if err != nil {
		return Result{}, err
	}

	return Result{Value: value, Action: action, Nodes: s.nodes}, nil
}

// BestAction returns the optimal action for the player to move, or nil if the game is over.
func BestAction(board entity.Board) (*entity.Action, error) {
	if board.IsTerminal() {
		return nil, nil
	}

	result, err := Solve(board)
	if err != nil {
		return nil, fmt.Errorf("failed to solve board: %w", err)
	}

	return result.Action, nil
}

func (that *search) maxValue(board entity.Board) (int, *entity.Action, error) {
	that.nodes++

	if board.IsTerminal() {
		return board.Utility(), nil, nil
	}

	best := minUtility - 1
	var bestAction *entity.Action

	for _, action := range board.LegalActions() {
		child, err := board.Apply(action)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to expand %s: %w", action, err)
		}

		value, _, err := that.minValue(child)
		if err != nil {
			return 0, nil, err
		}

		if value > best {
			best = value
			chosen := action
			bestAction = &chosen
		}

		// nothing beats a win
		if best == maxUtility {
			break
		}
	}

	return best, bestAction, nil
}

func (that *search) minValue(board entity.Board) (int, *entity.Action, error) {
	that.nodes++

	if board.IsTerminal() {
		return board.Utility(), nil, nil
	}

	best := maxUtility + 1
	var bestAction *entity.Action

	for _, action := range board.LegalActions() {
		child, err := board.Apply(action)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to expand %s: %w", action, err)
		}

		value, _, err := that.maxValue(child)
		if err != nil {
			return 0, nil, err
		}

		if value < best {
			best = value
			chosen := action
			bestAction = &chosen
		}

		if best == minUtility {
			break
		}
	}

	return best, bestAction, nil
}
