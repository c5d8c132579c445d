package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apiserver "github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/api_server"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/checkpoint"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/config"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/llm"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/pkg/log"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the analyzer api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.InitLog(log.Level(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Named("analyzer-api").Info("Starting API service")
		defer zap.S().Named("analyzer-api").Info("API service stopped")

		gateway, err := llm.NewOpenAIGateway(llm.GatewayConfig{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
		if err != nil {
			zap.S().Named("analyzer-api").Fatalw("initializing llm gateway", "error", err)
		}

		store, err := checkpoint.NewStore(cfg.Checkpoints.Directory)
		if err != nil {
			zap.S().Named("analyzer-api").Fatalw("initializing checkpoint store", "error", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Named("analyzer-api").Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, gateway, store, listener)
			if err := server.Run(ctx); err != nil {
				zap.S().Named("analyzer-api").Fatalw("running api server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Named("analyzer-api").Fatalw("creating metrics listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Named("analyzer-api").Fatalw("running metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
