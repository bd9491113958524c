package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ppiankov/wikibio/internal/model"
	"github.com/ppiankov/wikibio/internal/pipeline"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Build the intermediate table from the corpus files",
	Long: `Extract reads <data-dir>/<split>/<split>.{id,title,box,nb,sent}, reassembles
each record's sentences into a paragraph, parses the infobox and writes one
row per biography to the intermediate table.

Example:
  wikibio extract
  wikibio extract --data-dir ./wikipedia-biography-dataset --split valid`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd, "Extract", (*pipeline.Pipeline).Extract)
	},
}

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Normalize bracket escapes and write the final table",
	Long: `Clean reloads the intermediate table, rewrites -lrb- -rrb- -lsb- -rsb- -lcb-
-rcb- (any case) in the text column to ( ) [ ] { } and writes the final table.

Example:
  wikibio clean
  wikibio clean --format jsonl --final bios.jsonl`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd, "Clean", (*pipeline.Pipeline).Clean)
	},
}

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run extract then clean",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd, "Extract + Clean", (*pipeline.Pipeline).Run)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(runCmd)
}

type passFunc func(*pipeline.Pipeline, context.Context) (*pipeline.Stats, error)

func runPass(cmd *cobra.Command, title string, pass passFunc) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	stats, err := pass(p, ctx)
	if err != nil {
		return fmt.Errorf("%s failed: %w", title, err)
	}

	if !quiet {
		printStats(title, cfg, stats)
	}
	return nil
}

func printStats(title string, cfg *model.Config, stats *pipeline.Stats) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  %s Complete\n", title)
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Records:     %s\n", humanize.Comma(int64(stats.Records)))
	if stats.Sentences > 0 {
		fmt.Fprintf(os.Stderr, "  Sentences:   %s\n", humanize.Comma(int64(stats.Sentences)))
	}
	if stats.Normalized > 0 {
		fmt.Fprintf(os.Stderr, "  Normalized:  %s\n", humanize.Comma(int64(stats.Normalized)))
	}
	fmt.Fprintf(os.Stderr, "\n")
	for _, f := range cfg.Fields {
		pct := 0.0
		if stats.Records > 0 {
			pct = 100 * float64(stats.Filled[f]) / float64(stats.Records)
		}
		fmt.Fprintf(os.Stderr, "  %-13s %10s  (%5.1f%%)\n", f, humanize.Comma(int64(stats.Filled[f])), pct)
	}
	fmt.Fprintf(os.Stderr, "\n")
}
