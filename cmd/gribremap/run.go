package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/overcastwx/grib-remap/internal/adapter/http"
	"github.com/overcastwx/grib-remap/internal/config"
	"github.com/overcastwx/grib-remap/internal/grib"
	"github.com/overcastwx/grib-remap/internal/observability"
	"github.com/overcastwx/grib-remap/internal/remap"
)

func runCmd() *cobra.Command {
	var (
		model        string
		templatePath string
		sourcePath   string
		outPath      string
		initStr      string
		levelType    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one remap operation",
		Long: "Run loads the per-model template and the source analysis file, fills every\n" +
			"template slot from the source with the configured field mappings applied, and\n" +
			"writes the result. Any unmatched or ambiguous slot aborts the run.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
			metrics := observability.NewMetrics()

			if !config.IsSupportedModel(model) {
				return fmt.Errorf("model %q is not supported; must be one of %v", model, config.SupportedModels)
			}

			initTime := time.Now().UTC().Truncate(time.Hour)
			if initStr != "" {
				initTime, err = time.Parse("2006-01-02T15:04", initStr)
				if err != nil {
					return fmt.Errorf("invalid --init: %w", err)
				}
			}
			if templatePath == "" {
				templatePath = cfg.TemplatePath(model)
			}
			if outPath == "" {
				outPath = cfg.OutputPath(model, initTime)
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}

			var extra grib.Matchers
			if levelType != "" {
				extra = grib.Matchers{grib.MatchLevelType: levelType}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var srv *httpadapter.Server
			if cfg.MetricsAddr != "" {
				srv = httpadapter.NewServer(cfg.MetricsAddr, logger)
				go func() {
					if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("http server error", "error", err)
					}
				}()
			}

			assembler := remap.New(grib.DefaultTable(), logger, metrics)
			report, runErr := assembler.Run(ctx, model, templatePath, sourcePath, outPath, extra)

			if srv != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Error("http server shutdown error", "error", err)
				}
			}

			if runErr != nil {
				logger.Error("remap failed", "model", model, "error", runErr)
				return runErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", report.Slots, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "panguweather", "forecast model whose template to target")
	cmd.Flags().StringVar(&templatePath, "template", "", "template file (default: <cache root>/templates/<model>.grid)")
	cmd.Flags().StringVar(&sourcePath, "source", "", "source analysis file to remap")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default: <cache root>/output/<model>.<init>.grid)")
	cmd.Flags().StringVar(&initStr, "init", "", "model initialization time, e.g. 2024-07-01T00:00 (default: current hour)")
	cmd.Flags().StringVar(&levelType, "level-type", "", "only process template slots at this level type")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}
