package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clintrovert/prdesc/internal/config"
	"github.com/clintrovert/prdesc/internal/generator"
	"github.com/clintrovert/prdesc/internal/github"
	"github.com/clintrovert/prdesc/internal/logging"
	"github.com/clintrovert/prdesc/internal/pipeline"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "prdesc",
		Short:         "Generate a pull request description with OpenAI and write it into the PR body",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	config.RegisterFlags(cmd)
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "prdesc:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Missing coordinates are a no-op, not a failure.
	ref, err := cfg.PullRequest()
	if err != nil {
		logger.Warn("skipping pull request description", zap.Error(err))
		return nil
	}

	if missing := cfg.MissingSecrets(); len(missing) > 0 {
		logger.Warn("credentials not set, API calls will likely fail", zap.Strings("missing", missing))
	}

	githubClient, err := github.NewClient(cfg.GitHubToken, cfg.GitHubAPIURL, logger)
	if err != nil {
		return err
	}

	aiGenerator := generator.NewAIGenerator(cfg.OpenAIAPIKey, cfg.GeneratorOptions(), logger)

	orchestrator := pipeline.NewOrchestrator(githubClient, aiGenerator, pipeline.Options{
		RequestTimeout: cfg.RequestTimeout,
		DryRun:         cfg.DryRun,
	}, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := orchestrator.Run(ctx, ref, cfg.Title)

	logger.Info("run finished",
		zap.Bool("success", result.Success),
		zap.String("reason", string(result.Reason)),
		zap.Bool("degraded", result.Degraded),
		zap.String("message", result.Message),
	)

	return nil
}
