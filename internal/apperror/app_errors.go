package apperror

import "errors"

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidBoard  = errors.New("invalid board")
	ErrInvalidMark   = errors.New("invalid mark")
	ErrGameFinished  = errors.New("game is already finished")
)
