package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/logpuzzle/internal/config"
	"github.com/nao1215/logpuzzle/internal/database"
	"github.com/nao1215/logpuzzle/internal/fetch"
	"github.com/nao1215/logpuzzle/internal/log"
	"github.com/nao1215/logpuzzle/internal/model"
	"github.com/nao1215/logpuzzle/internal/pipeline"
	"github.com/nao1215/logpuzzle/internal/report"
)

// runRootCmd processes one access log.
func runRootCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Usage() //nolint:errcheck // Usage output is best effort
		return config.ErrNoLogFile
	}

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, cmd.OutOrStdout(), cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getDBDir retrieves the database directory from the command or its parent.
func getDBDir(cmd *cobra.Command) string {
	dir, err := cmd.Flags().GetString("db-dir")
	if err != nil || dir == "" {
		return config.XDGDataDir()
	}
	return dir
}

// buildConfig creates a Config from the configuration file and cobra flags.
// Flags that were set explicitly override the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.LogFile = args[0]
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.DBDir = getDBDir(cmd)

	var err error
	flags := cmd.Flags()

	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly given config file must exist; otherwise a missing
	// file just means defaults.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" && cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		if err := cfg.ApplyFile(file); err != nil {
			return nil, fmt.Errorf("failed to apply config file %s: %w", configPath, err)
		}
	}

	if cfg.TargetDir, err = flags.GetString("todir"); err != nil {
		return nil, err
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("index-name") {
		if cfg.IndexFileName, err = flags.GetString("index-name"); err != nil {
			return nil, err
		}
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Record, err = flags.GetBool("record"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// run executes the pipeline for cfg.Mode() and writes its output to out.
//
// In print mode out receives the URLs, one per line. In download mode it
// receives the run report, unless --output redirects it to a file.
func run(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger) error {
	table, err := cfg.File.PolicyTable()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	runReport := model.NewRunReport(cfg.LogFile, cfg.Mode())
	runReport.TargetDir = cfg.TargetDir

	var p *pipeline.Pipeline
	if cfg.Mode() == model.ModeDownload {
		client, err := fetch.NewHTTPClient(fetch.ClientOptions{
			Timeout:      cfg.Timeout,
			ProxyAddress: cfg.ProxyAddress,
		})
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		fetcher := fetch.NewFetcher(client,
			fetch.WithUserAgent(cfg.UserAgent),
			fetch.WithLogger(logger),
		)
		p = pipeline.DownloadPipeline(table, fetcher, cfg.IndexFileName, pipeline.WithLogger(logger))
	} else {
		p = pipeline.PrintPipeline(table, pipeline.WithLogger(logger))
	}

	runErr := p.Execute(ctx, runReport)

	// A run that produced URLs is worth recording even if it was cut short.
	if cfg.Record && len(runReport.URLs) > 0 {
		if err := saveRunReport(ctx, cfg.DBDir, runReport, logger); err != nil {
			logger.Error("failed to record run", "error", err)
		}
	}

	if cfg.Mode() == model.ModePrint {
		if runErr != nil {
			return runErr
		}
		return printURLs(out, runReport.URLs)
	}

	// Write the report even for an interrupted download so the
	// user can see what was fetched.
	if len(runReport.PerformedSteps) > 0 || !errors.Is(runErr, context.Canceled) {
		if err := outputReport(out, cfg, runReport); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}

// printURLs writes each URL on its own line.
func printURLs(out io.Writer, urls []string) error {
	for _, u := range urls {
		if _, err := fmt.Fprintln(out, u); err != nil {
			return err
		}
	}
	return nil
}

// outputReport outputs the run report in the requested format.
func outputReport(stdout io.Writer, cfg *config.Config, runReport *model.RunReport) error {
	if runReport.Identifier == "" || len(runReport.PerformedSteps) == 0 {
		return nil
	}

	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports list the URLs from the log; keep them owner-readable.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := w.Write(runReport)
	return err
}

// saveRunReport stores the run report in the history database.
func saveRunReport(ctx context.Context, dbDir string, runReport *model.RunReport, logger *slog.Logger) error {
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// The run may have been interrupted; recording must still succeed.
	id, err := db.SaveRun(context.WithoutCancel(ctx), runReport)
	if err != nil {
		return err
	}

	logger.Info("run recorded", "id", id, "database", db.Path())
	return nil
}
