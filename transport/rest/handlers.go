package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
)

const maxBodyBytes = 1 << 12

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	Analyze(w http.ResponseWriter, r *http.Request)
	BestAction(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)
}

type analyzer interface {
	Analyze(ctx context.Context, board entity.Board) (*usecase.Analysis, error)
	BestAction(ctx context.Context, board entity.Board) (*entity.Action, error)
	Apply(ctx context.Context, board entity.Board, action entity.Action) (entity.Board, error)
}

type boardRequest struct {
	Board  [][]string     `json:"board"`
	Action *entity.Action `json:"action,omitempty"`
}

type bestActionResponse struct {
	BestAction *entity.Action `json:"best_action"`
}

type boardResponse struct {
	Board [][]string `json:"board"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger   *slog.Logger
	analyzer analyzer
}

func NewHandlers(logger *slog.Logger, analyzer analyzer) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		analyzer: analyzer,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	_, board, ok := that.decodeBoard(w, r)
	if !ok {
		return
	}

	analysis, err := that.analyzer.Analyze(r.Context(), board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, analysis)
}

func (that *handlers) BestAction(w http.ResponseWriter, r *http.Request) {
	_, board, ok := that.decodeBoard(w, r)
	if !ok {
		return
	}

	action, err := that.analyzer.BestAction(r.Context(), board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, bestActionResponse{BestAction: action})
}

func (that *handlers) Apply(w http.ResponseWriter, r *http.Request) {
	req, board, ok := that.decodeBoard(w, r)
	if !ok {
		return
	}

	if req.Action == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "action is required"})
		return
	}

	next, err := that.analyzer.Apply(r.Context(), board, *req.Action)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, boardResponse{Board: next.Rows()})
}

func (that *handlers) decodeBoard(w http.ResponseWriter, r *http.Request) (*boardRequest, entity.Board, bool) {
	var req boardRequest

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return nil, entity.Board{}, false
	}

	board, err := entity.ParseBoard(req.Board)
	if err != nil {
		that.writeError(w, err)
		return nil, entity.Board{}, false
	}

	return &req, board, true
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInvalidBoard):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidAction), errors.Is(err, apperror.ErrGameFinished):
		status = http.StatusUnprocessableEntity
	default:
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
