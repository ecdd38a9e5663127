// Command featurebuild builds the feature tables for a season window and
// writes them as CSV files, an Excel workbook or both.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"edgestats/internal/app"
	"edgestats/internal/config"
	"edgestats/internal/exporter"
	"edgestats/internal/featurestore"
	"edgestats/internal/infrastructure"
	"edgestats/internal/services"
	"edgestats/pkg/contracts/domain"
)

// Output formats.
const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
	formatBoth = "both"
)

type options struct {
	configFile string
	seasons    []int
	outDir     string
	format     string
	mode       domain.AggregationMode
	prefix     string
	bom        bool
	mirror     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("featurebuild failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("featurebuild", flag.ContinueOnError)
	var (
		opts    options
		seasons string
		mode    string
	)
	fs.StringVar(&opts.configFile, "config", "", "config file (defaults to the usual search path)")
	fs.StringVar(&seasons, "seasons", "", "comma separated seasons (defaults to the configured window)")
	fs.StringVar(&opts.outDir, "out", "", "output directory (defaults to paths.export_dir)")
	fs.StringVar(&opts.format, "format", formatBoth, "output format: csv, xlsx or both")
	fs.StringVar(&mode, "mode", string(domain.ModeWeekly), "player rows: weekly or season")
	fs.StringVar(&opts.prefix, "prefix", "features", "output file name prefix")
	fs.BoolVar(&opts.bom, "bom", false, "prefix CSV files with a UTF-8 BOM")
	fs.BoolVar(&opts.mirror, "mirror", false, "mirror fetched game and player tables to the local feature store directory")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch opts.format {
	case formatCSV, formatXLSX, formatBoth:
	default:
		return opts, fmt.Errorf("invalid -format %q: must be csv, xlsx or both", opts.format)
	}

	opts.mode = domain.AggregationMode(strings.ToLower(mode))
	if opts.mode != domain.ModeWeekly && opts.mode != domain.ModeSeason {
		return opts, fmt.Errorf("invalid -mode %q: must be weekly or season", mode)
	}

	for _, part := range strings.Split(seasons, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return opts, fmt.Errorf("invalid season %q: %w", part, err)
		}
		opts.seasons = append(opts.seasons, n)
	}
	return opts, nil
}

func loadConfig(opts options) (*config.Config, error) {
	if opts.configFile != "" {
		return config.LoadFile(opts.configFile)
	}
	return config.Load()
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.outDir != "" {
		cfg.Paths.ExportDir = opts.outDir
	}
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	provider := app.NewProvider(cfg.FeatureStore, logger)
	if opts.mirror {
		if cfg.FeatureStore.LocalDir != "" {
			logger.Warn("ignoring -mirror: already reading from a local directory",
				slog.String("dir", cfg.FeatureStore.LocalDir))
		} else {
			provider = newMirrorProvider(provider, featurestore.NewDirProvider(cfg.Paths.MirrorDir()), logger)
		}
	}

	svc, err := services.NewFeatureService(provider, services.FeatureServiceConfig{Pipeline: cfg.Pipeline}, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	tables, err := svc.LoadFeatureStore(ctx, opts.seasons)
	if err != nil {
		return err
	}
	for _, f := range tables.PlayerFailures {
		logger.Warn("player projections missing",
			slog.Int("season", f.Season),
			slog.String("group", string(f.Group)),
			slog.String("reason", f.Reason))
	}

	written, err := export(tables, opts, cfg.Paths, logger)
	if err != nil {
		return err
	}

	logger.Info("feature build complete",
		slog.Any("seasons", tables.Seasons),
		slog.Int("games", len(tables.HomeAway)),
		slog.Int("dropped_games", tables.DroppedGames),
		slog.Duration("duration", time.Since(start)))
	for _, path := range written {
		fmt.Fprintln(stdout, path)
	}
	return nil
}

func export(tables *domain.FeatureTables, opts options, paths config.PathsConfig, logger *slog.Logger) ([]string, error) {
	out := exporter.FeatureTables(tables, opts.mode)
	var written []string

	if opts.format == formatCSV || opts.format == formatBoth {
		files, err := exporter.NewCSVWriter(paths, logger).WriteTables(opts.prefix, out, opts.bom)
		if err != nil {
			return nil, err
		}
		written = append(written, files...)
	}
	if opts.format == formatXLSX || opts.format == formatBoth {
		path := paths.ExportPath(fmt.Sprintf("%s_%s.xlsx", opts.prefix, opts.mode))
		if err := exporter.SaveWorkbook(path, out); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}
