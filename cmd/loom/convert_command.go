package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"loom/internal/config"
	"loom/internal/job"
	"loom/internal/ledger"
	"loom/internal/logging"
	"loom/internal/runlock"
	"loom/internal/title"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		titleFlag     string
		standalone    bool
		numberPattern string
		vbitrate      string
		overwrite     bool
		outputDir     string
		verbose       bool
		debug         bool
	)

	cmd := &cobra.Command{
		Use:   "convert [flags] <input file>...",
		Short: "Convert one or more video files",
		Long: `Convert runs each input file through the decode and encode stages,
then combines the new video with the original audio into a .m4v file in the
output directory. Batch inputs are numbered from markers in their filenames.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if strings.TrimSpace(outputDir) != "" {
				expanded, err := config.ExpandPath(outputDir)
				if err != nil {
					return fmt.Errorf("resolve output dir: %w", err)
				}
				cfg.Paths.OutputDir = expanded
				if err := cfg.EnsureDirectories(); err != nil {
					return err
				}
			}
			switch {
			case debug:
				cfg.Logging.Level = "debug"
			case verbose:
				cfg.Logging.Level = "info"
			}

			baseTitle := strings.TrimSpace(titleFlag)
			if baseTitle == "" {
				if suggestion := title.Derive(args[0]); suggestion != "" {
					return fmt.Errorf("a title is required; try --title %q", suggestion)
				}
				return fmt.Errorf("a title is required (--title)")
			}

			for _, source := range args {
				if _, err := os.Stat(source); err != nil {
					return fmt.Errorf("input %s: %w", source, err)
				}
			}

			bitrateValue := strings.TrimSpace(vbitrate)
			if bitrateValue == "" {
				bitrateValue = cfg.Encoding.VideoBitrate
			}
			bitrate, err := job.ParseBitrate(bitrateValue)
			if err != nil {
				return err
			}

			jobs, err := job.BuildJobs(job.BatchSpec{
				BaseTitle:     baseTitle,
				Standalone:    standalone,
				NumberPattern: numberPattern,
				Sources:       args,
				Options: job.Options{
					VideoBitrate: bitrate,
					Overwrite:    overwrite,
				},
			})
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			lock, err := runlock.Acquire(cfg.Paths.WorkDir)
			if err != nil {
				return err
			}
			defer lock.Release()

			var store *ledger.Store
			if cfg.Ledger.Enabled {
				store, err = ledger.Open(cfg)
				if err != nil {
					return fmt.Errorf("open ledger: %w", err)
				}
				defer store.Close()
			}

			runner, err := job.NewRunner(cfg, logger, store)
			if err != nil {
				return err
			}
			results := runner.RunBatch(cmd.Context(), jobs)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderResults(results))
			if failed := job.Failed(results); failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&titleFlag, "title", "t", "", "Base title for the output files")
	cmd.Flags().BoolVar(&standalone, "standalone", false, "Treat the single input as a standalone title without numbering")
	cmd.Flags().StringVar(&numberPattern, "number-pattern", "", "Regular expression that extracts the episode number from a filename")
	cmd.Flags().StringVar(&vbitrate, "vbitrate", "", "Video bitrate, e.g. 768k or 1m")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing output file instead of choosing a new name")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Override the configured output directory")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log at info level regardless of the configured level")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log at debug level")

	return cmd
}

func renderResults(results []job.Result) string {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		outcome := "ok"
		if res.Err != nil {
			outcome = "failed: " + res.Err.Error()
		}
		destination := res.Destination
		if res.Err != nil {
			destination = "-"
		}
		rows = append(rows, []string{res.Job.Title, destination, outcome})
	}
	return renderTable(
		[]string{"Title", "Destination", "Result"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	)
}
