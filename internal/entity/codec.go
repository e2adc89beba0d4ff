package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

// ParseMark converts a wire string into a Mark.
func ParseMark(raw string) (Mark, error) {
	switch mark := Mark(raw); mark {
	case PlayerX, PlayerO, EmptyCell:
		return mark, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, raw)
	}
}

// ParseBoard builds a board from its row representation and checks that it could be
// reached by alternating play starting with X.
func ParseBoard(rows [][]string) (Board, error) {
	var board Board

	if len(rows) != Size {
		return board, fmt.Errorf("%w: expected %d rows, got %d", apperror.ErrInvalidBoard, Size, len(rows))
	}

	for i, row := range rows {
		if len(row) != Size {
			return board, fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidBoard, i, len(row))
		}

		for j, raw := range row {
			mark, err := ParseMark(raw)
			if err != nil {
				return board, fmt.Errorf("%w: cell (%d, %d): %w", apperror.ErrInvalidBoard, i, j, err)
			}
			board[i][j] = mark
		}
	}

	if numX, numO := board.CountMarks(); numX-numO != 0 && numX-numO != 1 {
		return board, fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidBoard, numX, numO)
	}

	return board, nil
}

// Rows converts the board into its wire representation.
func (that Board) Rows() [][]string {
	rows := make([][]string, Size)
	for i := range that {
		rows[i] = make([]string, Size)
		for j, cell := range that[i] {
			rows[i][j] = string(cell)
		}
	}

	return rows
}
