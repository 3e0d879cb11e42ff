package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"segurab-assistant/handler"
	"segurab-assistant/internal/integrations/paramstore"
	"segurab-assistant/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	paramPrefix := os.Getenv("PARAM_PREFIX")
	maxMessageLen := envInt("MAX_MESSAGE_LENGTH", 500)

	// ---- Reply source ----
	var lister usecase.ReplyLister
	if paramPrefix != "" {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			slog.Error("failed to load AWS config", "err", err)
			os.Exit(1)
		}
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
		if err != nil {
			slog.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
		lister = ssmClient
	} else {
		slog.Warn("PARAM_PREFIX not set, serving built-in replies")
	}

	// ---- Handler ----
	replyService, err := usecase.NewReplyService(lister, paramPrefix, maxMessageLen)
	if err != nil {
		slog.Error("failed to create reply service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(replyService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
