package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-wealth-sim/internal/calculations"
	"github.com/cloud-ru/mcp-wealth-sim/internal/config"
	"github.com/cloud-ru/mcp-wealth-sim/internal/logger"
	"github.com/cloud-ru/mcp-wealth-sim/internal/report"
	"github.com/cloud-ru/mcp-wealth-sim/internal/scenario"
	"github.com/cloud-ru/mcp-wealth-sim/internal/server"
	"github.com/cloud-ru/mcp-wealth-sim/internal/tools"
	"github.com/cloud-ru/mcp-wealth-sim/internal/tracing"
	"github.com/cloud-ru/mcp-wealth-sim/internal/validators"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:          "wealthsim",
		Short:        "Сравнение покупки жилья и инвестиций в альтернативный актив",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger.Init(cfg.Env, cfg.LogLevel)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	root.AddCommand(newSimulateCmd(&cfg), newServeCmd(&cfg))
	return root
}

func newSimulateCmd(cfg **config.Config) *cobra.Command {
	var scenarioPath, format string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Прогнать сценарий и вывести результат",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := scenario.Default().Scenario()
			if scenarioPath != "" {
				var err error
				if s, err = scenario.Load(scenarioPath); err != nil {
					return err
				}
			}
			if err := validators.CheckScenario(*cfg, s); err != nil {
				return err
			}

			res, err := calculations.RunScenario(*cfg, s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "summary":
				return report.WriteSummary(out, res)
			case "json":
				return report.WriteJSON(out, res)
			case "csv":
				return report.WriteCSV(out, res)
			default:
				return fmt.Errorf("unknown format %q (summary, json, csv)", format)
			}
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML-файл сценария (по умолчанию базовый сценарий)")
	cmd.Flags().StringVar(&format, "format", "summary", "формат вывода: summary, json, csv")
	return cmd
}

func newServeCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP-сервер с инструментами",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint, log)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warnw("tracing shutdown failed", "error", err)
		}
	}()

	registry := tools.NewRegistry(cfg, tracing.Tracer)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.New(registry, log).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("starting wealth simulator server", "port", cfg.Port, "env", cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
