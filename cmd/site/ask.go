package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"segurab-assistant/internal/agent"
	"segurab-assistant/internal/console"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Chat with the assistant line by line on stdin/stdout",
	Long: `ask sends each line read from stdin to the assistant and prints the reply.
Type ` + console.QuitCommand + ` to stop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger, closeLog, err := openLogger(logFileFlag, cmd.ErrOrStderr())
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
		return console.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), client, logger)
	},
}
