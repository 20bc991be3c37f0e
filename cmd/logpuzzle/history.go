package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/logpuzzle/internal/config"
	"github.com/nao1215/logpuzzle/internal/database"
	"github.com/nao1215/logpuzzle/internal/model"
	"github.com/nao1215/logpuzzle/internal/report"
)

// NewHistoryCmd creates the history command.
// This command lists and shows runs recorded with --record.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List or show recorded runs",
		Long: `History displays runs that were saved with 'logpuzzle --record'.

Without an argument the most recent runs are listed. With a run ID the full
report of that run is shown.

Examples:
  # List recent runs
  logpuzzle history

  # List runs of one log file
  logpuzzle history -i animal_code.google.com

  # Show run 3 as Markdown
  logpuzzle history --markdown 3

  # Delete run 3
  logpuzzle history --delete 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().StringP("identifier", "i", "",
		"Only list runs of this log file name")
	cmd.Flags().BoolP("json", "j", false,
		"Show the run report in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Show the run report in Markdown format")
	cmd.Flags().Bool("delete", false,
		"Delete the given run instead of showing it")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	jsonOutput, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return config.ErrConflictingReportFormats
	}
	deleteRun, err := flags.GetBool("delete")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database.
	var id int64
	if len(args) == 1 {
		id, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid run ID: %q", args[0])
		}
	} else if deleteRun {
		return errors.New("--delete requires a run ID")
	}

	out := cmd.OutOrStdout()
	db, err := database.Open(getDBDir(cmd), database.Options{EnableWAL: true})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(out, "No runs recorded yet.")
			fmt.Fprintln(out, "\nUse 'logpuzzle --todir DIR --record LOGFILE' to record a run.")
			return nil
		}
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case deleteRun:
		if err := db.DeleteRun(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted run %d\n", id)
		return nil
	case id != 0:
		return showRun(ctx, out, db, id, jsonOutput, markdownOutput)
	}

	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	identifier, err := flags.GetString("identifier")
	if err != nil {
		return err
	}
	return listRuns(ctx, out, db, database.ListOptions{Limit: limit, Identifier: identifier})
}

// listRuns prints a table of recorded runs.
func listRuns(ctx context.Context, out io.Writer, db *database.HistoryDB, opts database.ListOptions) error {
	runs, err := db.ListRuns(ctx, opts)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		if opts.Identifier != "" {
			fmt.Fprintf(out, "No runs recorded for %s\n", opts.Identifier)
		} else {
			fmt.Fprintln(out, "No runs recorded yet.")
		}
		return nil
	}

	fmt.Fprintf(out, "Recorded runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-19s  %-8s  %-32s  %s\n", "ID", "Date", "Mode", "Log", "URLs (fetched/failed)")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 90))

	for _, r := range runs {
		date := "-"
		if !r.Timestamp.IsZero() {
			date = r.Timestamp.Local().Format("2006-01-02 15:04:05")
		}
		counts := strconv.Itoa(r.URLCount)
		if r.Mode == model.ModeDownload {
			counts = fmt.Sprintf("%d (%d/%d)", r.URLCount, r.Fetched, r.Failed)
		}
		fmt.Fprintf(out, "  %-6d  %-19s  %-8s  %-32s  %s\n",
			r.ID, date, r.Mode, truncate(r.Identifier, 32), counts)
	}
	fmt.Fprintln(out, "\nUse 'logpuzzle history <run-id>' to see the full report.")

	return nil
}

// showRun writes the stored report of one run.
func showRun(ctx context.Context, out io.Writer, db *database.HistoryDB, id int64, jsonOutput, markdownOutput bool) error {
	runReport, err := db.GetRun(ctx, id)
	if err != nil {
		return err
	}

	var w report.Writer
	switch {
	case jsonOutput:
		w = report.NewJSONWriter(out, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case markdownOutput:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewSimpleWriter(out, report.WithVerbose(true))
	}
	_, err = w.Write(runReport)
	return err
}

// truncate shortens s to n runes for table output.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
