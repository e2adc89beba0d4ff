package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const Size = 3

// Mark is the content of a single cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// WinLines holds every row, column and diagonal of the board.
// The anti-diagonal is scanned before the main diagonal.
var WinLines = [8][3]Action{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
	{{0, 0}, {1, 1}, {2, 2}},
}

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// Action addresses a cell by row and column.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) Valid() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Action) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Board is a 3x3 grid. It is a value type: every transition returns a fresh copy.
type Board [Size][Size]Mark

// InitialState returns a board with all cells empty.
func InitialState() Board {
	return Board{}
}

func (that Board) Cell(action Action) Mark {
	return that[action.Row][action.Col]
}

// CountMarks returns the number of X and O marks on the board.
func (that Board) CountMarks() (int, int) {
	var numX, numO int
	for _, row := range that {
		for _, cell := range row {
			switch cell {
			case PlayerX:
				numX++
			case PlayerO:
				numO++
			}
		}
	}

	return numX, numO
}

// PlayerToMove derives the turn from the mark counts: X opens and players alternate.
// The result is only meaningful for boards reached by alternating play.
func (that Board) PlayerToMove() Mark {
	numX, numO := that.CountMarks()
	if numX > numO {
		return PlayerO
	}

	return PlayerX
}

// LegalActions returns every empty cell in row-major order.
func (that Board) LegalActions() []Action {
	actions := make([]Action, 0, Size*Size)
	for row := range that {
		for col := range that[row] {
			if that[row][col] == EmptyCell {
				actions = append(actions, Action{Row: row, Col: col})
			}
		}
	}

	return actions
}

// Apply places the mark of the player to move on the target cell and returns the new board.
// The receiver is left untouched.
func (that Board) Apply(action Action) (Board, error) {
	if !action.Valid() {
		return that, fmt.Errorf("%w: cell %s is out of range", apperror.ErrInvalidAction, action)
	}

	if that.Cell(action) != EmptyCell {
		return that, fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidAction, action)
	}

	next := that
	next[action.Row][action.Col] = that.PlayerToMove()

	return next, nil
}

// Winner returns the mark that owns a complete line, if any.
func (that Board) Winner() (Mark, bool) {
	for _, line := range WinLines {
		a, b, c := that.Cell(line[0]), that.Cell(line[1]), that.Cell(line[2])
		if a != EmptyCell && a == b && b == c {
			return a, true
		}
	}

	return EmptyCell, false
}

func (that Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// IsTerminal reports whether the game is over: somebody won or no cell is left.
func (that Board) IsTerminal() bool {
	if _, ok := that.Winner(); ok {
		return true
	}

	return that.IsFull()
}

// Utility scores a terminal board from X's point of view: 1 X wins, -1 O wins, 0 otherwise.
func (that Board) Utility() int {
	winner, _ := that.Winner()
	switch winner {
	case PlayerX:
		return 1
	case PlayerO:
		return -1
	default:
		return 0
	}
}

func (that Board) String() string {
	var sb strings.Builder
	for row := range that {
		for col, cell := range that[row] {
			if col > 0 {
				sb.WriteByte(' ')
			}

			if cell == EmptyCell {
				sb.WriteByte('.')
			} else {
				sb.WriteString(string(cell))
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
