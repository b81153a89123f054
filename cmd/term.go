package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"sorrybot/internal/core/engine"
	"sorrybot/internal/core/schedule"
	"sorrybot/internal/logging"
	"sorrybot/internal/term"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTermCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Apologize inside the terminal instead of a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			altScreen, _ := cmd.Flags().GetBool("alt-screen")
			return runTerm(cmd.Context(), altScreen)
		},
	}
	cmd.Flags().Bool("alt-screen", true, "Use the full terminal screen.")
	cmd.Flags().String("log-file", "", "Write logs to this file; the terminal itself stays clean.")
	_ = viper.BindPFlag(keyLogFile, cmd.Flags().Lookup("log-file"))
	return cmd
}

// termLogger logs to a file when one is configured. Anything written to
// stderr would tear through the rendered screen.
func termLogger() (*slog.Logger, func(), error) {
	path := strings.TrimSpace(viper.GetString(keyLogFile))
	if path == "" {
		return logging.Discard(), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := logging.New(logging.ConfigFromViper(viper.GetViper()), file)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	return logger, func() { _ = file.Close() }, nil
}

func runTerm(parent context.Context, altScreen bool) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, closeLog, err := termLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	rt, err := loadRuntime(logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = rt.player.Close()
	}()

	frontend := term.New(term.Options{
		Scheduler: schedule.System{},
		Random:    rt.rng,
		AltScreen: altScreen,
	})
	eng, err := rt.newEngine(engine.Ports{
		Notifier: frontend,
		Dialog:   frontend,
		Scene:    frontend,
		Chat:     frontend,
	})
	if err != nil {
		return err
	}
	defer eng.Close()
	frontend.Bind(eng)

	go logEvents(logger, eng.Subscribe(32), nil)

	if err := frontend.Run(ctx, eng.Start); err != nil {
		return fmt.Errorf("run terminal: %w", err)
	}
	return nil
}
