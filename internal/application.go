package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solver/transport/console"
	"github.com/rocketscienceinc/tictactoe-solver/transport/rest"
)

var ErrUnknownMode = errors.New("unknown mode")

// RunApp - runs the application in the configured mode until it finishes or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run - dispatches on conf.Mode. Console and self-play use in/out, the server ignores them.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app", "mode", conf.Mode)

	analyzer := usecase.NewAnalyzer(logger, conf.Search)

	switch conf.Mode {
	case config.ModeServer:
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := rest.Start(ctx, conf.HTTPPort, rest.NewHandlers(logger, analyzer)); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		log.Info("Application context canceled, shutting down")

		return nil

	case config.ModeConsole:
		game, err := console.New(logger, analyzer, conf.Console.HumanMark, in, out)
		if err != nil {
			return fmt.Errorf("could not create console game: %w", err)
		}

		if _, err = game.Run(ctx); err != nil {
			return fmt.Errorf("console game failed: %w", err)
		}

		return nil

	case config.ModeSelfPlay:
		playout, err := analyzer.PlayOut(ctx, entity.InitialState())
		if err != nil {
			return fmt.Errorf("self-play failed: %w", err)
		}

		for _, action := range playout.Actions {
			if _, err = fmt.Fprintln(out, action); err != nil {
				return fmt.Errorf("failed to write move: %w", err)
			}
		}

		if _, err = fmt.Fprintf(out, "%sutility: %d\n", playout.Final, playout.Final.Utility()); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}

		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, conf.Mode)
	}
}
