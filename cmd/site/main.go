package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"segurab-assistant/internal/agent"
	"segurab-assistant/internal/tui"
)

var (
	originFlag  string
	logFileFlag string
)

var rootCmd = &cobra.Command{
	Use:   "segurab",
	Short: "Segurab landing page with the assistant chat",
	Long: `segurab renders the Segurab landing page in the terminal. Press "a" or
"h" to open the assistant chat.

The assistant runs in the mode compiled into the agent package (mock until
the agent endpoint is live). In api mode messages are posted to the agent
endpoint resolved against --origin; "segurab serve" runs a stand-in endpoint.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// The terminal belongs to the UI.
		logger, closeLog, err := openLogger(logFileFlag, io.Discard)
		if err != nil {
			return err
		}
		defer closeLog()

		client, err := agent.New(agent.DefaultConfig(),
			agent.WithOrigin(originFlag),
			agent.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("create chat client: %w", err)
		}
		logger.Info("starting site", "mode", client.Mode())

		return tui.Run(cmd.Context(), client, logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&originFlag, "origin", agent.DefaultOrigin, "base URL the agent endpoint is resolved against")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "write logs to this file (default: discarded by the page, stderr for ask)")
	rootCmd.AddCommand(askCmd, serveCmd)
}

// openLogger logs to path, or to fallback when path is empty.
func openLogger(path string, fallback io.Writer) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(fallback, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { _ = f.Close() }, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
