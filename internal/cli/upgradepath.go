package cli

import (
	"context"
	"errors"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/bayleafwalker/operator-upgradepath/api/v1alpha1"
	"github.com/bayleafwalker/operator-upgradepath/internal/catalog"
	"github.com/bayleafwalker/operator-upgradepath/internal/config"
	"github.com/bayleafwalker/operator-upgradepath/internal/frontier"
	"github.com/bayleafwalker/operator-upgradepath/internal/metrics"
	"github.com/bayleafwalker/operator-upgradepath/internal/planner"
	"github.com/bayleafwalker/operator-upgradepath/internal/report"
	"github.com/bayleafwalker/operator-upgradepath/internal/watch"
)

func newUpgradePathCommand(e *env) *cobra.Command {
	var (
		configFile string
		watchCache bool
	)

	cmd := &cobra.Command{
		Use:   "upgradepath",
		Short: "Compute upgrade paths for the packages of a filter config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(e.v)
			if err != nil {
				return err
			}
			log := setupLogger(settings.LogLevel, e.errOut)

			cfg, err := config.ReadFilterConfig(e.fs, configFile)
			if err != nil {
				return err
			}
			log.V(1).Info("loaded filter config", "catalogs", cfg.Catalogs, "packages", len(cfg.Packages))

			p := planner.New(
				e.fs,
				catalog.NewCache(e.fs, settings.WorkingDir),
				frontier.NewDefault(),
				report.NewReporter(e.out, settings.LogLevel.Verbose()),
				log.WithName("planner"),
				planner.Options{
					Workers:      settings.Workers,
					APIVersion:   settings.APIVersion,
					OutputDir:    settings.OutputDir,
					SkipManifest: settings.SkipManifest,
				},
			)

			run := func(ctx context.Context) error {
				_, err := p.Run(ctx, cfg)
				if settings.MetricsFile != "" {
					if werr := metrics.WriteTextfile(settings.MetricsFile); werr != nil {
						log.Error(werr, "writing metrics")
					}
				}
				return err
			}

			if !watchCache {
				return run(cmd.Context())
			}
			return runWatch(cmd.Context(), log, settings.WorkingDir, run)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "filter config file")
	f.String(config.KeyOutputDir, config.DefaultOutputDir, "directory the manifest is written to")
	f.String(config.KeyAPIVersion, v1alpha1.DefaultMirrorVersion, "version of the emitted ImageSetConfiguration")
	f.Int(config.KeyWorkers, config.DefaultWorkers, "packages evaluated concurrently")
	f.String(config.KeyMetricsFile, "", "write Prometheus metrics to this file after each run")
	f.Bool(config.KeySkipManifest, false, "do not write the ImageSetConfiguration")
	f.BoolVar(&watchCache, "watch", false, "recompute when catalogs in the working dir change")
	_ = cmd.MarkFlagRequired("config")
	bindFlags(e.v, f, config.KeyOutputDir, config.KeyAPIVersion, config.KeyWorkers, config.KeyMetricsFile, config.KeySkipManifest)

	return cmd
}

func runWatch(ctx context.Context, log logr.Logger, dir string, run func(context.Context) error) error {
	if err := run(ctx); err != nil {
		log.Error(err, "upgradepath run failed")
	}

	w, err := watch.New(dir, log.WithName("watch"))
	if err != nil {
		return err
	}
	defer w.Close()

	log.Info("watching for catalog changes", "dir", dir)
	err = w.Run(ctx, func(ctx context.Context, files []string) {
		log.Info("recomputing", "changedFiles", len(files))
		if err := run(ctx); err != nil {
			log.Error(err, "upgradepath run failed")
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
