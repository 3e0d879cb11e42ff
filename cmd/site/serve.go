package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/spf13/cobra"

	"segurab-assistant/handler"
	"segurab-assistant/internal/agent"
	"segurab-assistant/internal/integrations/paramstore"
	"segurab-assistant/internal/usecase"
)

var (
	addrFlag        string
	paramPrefixFlag string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a stand-in agent endpoint for api mode",
	Long: `serve answers POST ` + agent.DefaultEndpoint + ` with canned replies, either the
built-in set or a JSON string array read from SSM at <param-prefix>/replies.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		var lister usecase.ReplyLister
		if paramPrefixFlag != "" {
			cfg, err := config.LoadDefaultConfig(ctx)
			if err != nil {
				return fmt.Errorf("load AWS config: %w", err)
			}
			ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
			if err != nil {
				return fmt.Errorf("create SSM client: %w", err)
			}
			lister = ssmClient
		}

		svc, err := usecase.NewReplyService(lister, paramPrefixFlag, 0)
		if err != nil {
			return err
		}
		h, err := handler.NewHandler(svc)
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.Handle(agent.DefaultEndpoint, handler.NewHTTPHandler(h))
		srv := &http.Server{
			Addr:              addrFlag,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		errc := make(chan error, 1)
		go func() { errc <- srv.ListenAndServe() }()
		logger.Info("serving agent endpoint", "addr", addrFlag, "path", agent.DefaultEndpoint)

		select {
		case err := <-errc:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&paramPrefixFlag, "param-prefix", "", "SSM prefix holding the reply set (empty: built-in replies)")
}
