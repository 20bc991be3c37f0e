package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/logpuzzle/internal/config"
)

// NewRootCmd creates the root command for logpuzzle.
// The root command itself processes a log; subcommands manage the
// configuration file and the run history.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logpuzzle [--todir DIR] LOGFILE",
		Short: "Reassemble puzzle images from an Apache access log",
		Long: `logpuzzle extracts the "puzzle" image requests from an Apache access log,
removes duplicates, orders them and prefixes them with the host encoded in
the log file name (everything after the first underscore).

Without --todir the URLs are printed one per line. With --todir DIR every
image is downloaded to DIR as img0, img1, ... and DIR/index.html shows the
pieces side by side in order.

Examples:
  # Print the ordered image URLs
  logpuzzle animal_code.google.com

  # Download the images and build the index page
  logpuzzle --todir animaldir animal_code.google.com

  # Download through a SOCKS5 proxy and print a Markdown report
  logpuzzle --todir placedir --proxy 127.0.0.1:1080 --markdown place_code.google.com

  # Record the run and list recorded runs later
  logpuzzle --todir out --record animal_code.google.com
  logpuzzle history`,
		Args:          cobra.MaximumNArgs(1),
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRootCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("db-dir", config.XDGDataDir(),
		"Directory of the run history database")

	cmd.Flags().String("todir", "",
		"Download images into this directory and write an index page")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .logpuzzle in current or home directory)")
	cmd.Flags().Duration("timeout", config.DefaultTimeout,
		"Timeout for each image request (0 means no timeout)")
	cmd.Flags().String("proxy", "",
		"Fetch images through a SOCKS5 proxy (host:port)")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header for image requests")
	cmd.Flags().String("index-name", config.DefaultIndexFileName,
		"File name of the index page inside --todir")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("record", false,
		"Save the run in the history database")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
