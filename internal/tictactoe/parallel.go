package tictactoe

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// SolveParallel evaluates every root action in its own goroutine, at most workers at a time
// (no limit when workers <= 0). Children are folded in legal-action order with the same
// strict-improvement rule as Solve, so both return the same value and action.
func SolveParallel(ctx context.Context, board entity.Board, workers int) (Result, error) {
	if board.IsTerminal() {
		return Result{Value: board.Utility(), Nodes: 1}, nil
	}

	maximizing := board.PlayerToMove() == entity.PlayerX
	actions := board.LegalActions()
	children := make([]Result, len(actions))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, action := range actions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			child, err := board.Apply(action)
			if err != nil {
				return fmt.Errorf("failed to expand %s: %w", action, err)
			}

			s := &search{}

			var value int
			if maximizing {
				value, _, err = s.minValue(child)
			} else {
				value, _, err = s.maxValue(child)
			}

			if err != nil {
				return err
			}

			children[i] = Result{Value: value, Nodes: s.nodes}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("parallel search failed: %w", err)
	}

	result := Result{Nodes: 1}
	for _, child := range children {
		result.Nodes += child.Nodes
	}

	best := maxUtility + 1
	bound := minUtility
	if maximizing {
		best = minUtility - 1
		bound = maxUtility
	}

	for i, child := range children {
		if (maximizing && child.Value > best) || (!maximizing && child.Value < best) {
			best = child.Value
			chosen := actions[i]
			result.Action = &chosen
		}

		if best == bound {
			break
		}
	}

	result.Value = best

	return result, nil
}
