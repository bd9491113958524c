package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/wikibio/internal/model"
	"github.com/ppiankov/wikibio/internal/pipeline"
	"github.com/ppiankov/wikibio/internal/table"
)

var (
	showField  string
	showValue  string
	showColumn string
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Look up records in the final table",
	Long: `Show prints the rows of the final table whose field matches a value
(case-insensitive). With --column only that column is printed, quoted, so
stray whitespace or an empty value is visible.

Example:
  wikibio show --value "linda hayden"
  wikibio show --value "linda hayden" --column birth_date
  wikibio show --field nationality --value british --column name`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showField, "field", "name", "field to match")
	showCmd.Flags().StringVar(&showValue, "value", "", "value to match")
	showCmd.Flags().StringVar(&showColumn, "column", "", "print only this column")
	_ = showCmd.MarkFlagRequired("value")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	schema := model.NewSchema(cfg.Fields)
	for _, col := range []string{showField, showColumn} {
		if col != "" && col != model.TextColumn && !schema.Allowed(col) {
			return fmt.Errorf("unknown column %q", col)
		}
	}

	records, err := pipeline.ReadTable(cfg.Output.Final, schema, cfg.Output.MissingMarker)
	if err != nil {
		return fmt.Errorf("read final table: %w", err)
	}

	matches := table.Filter(records, showField, showValue)
	if len(matches) == 0 {
		return fmt.Errorf("no record with %s = %q", showField, showValue)
	}

	out := cmd.OutOrStdout()
	if showColumn != "" {
		for _, rec := range matches {
			if v, ok := rec.Get(showColumn); ok {
				fmt.Fprintf(out, "%q\n", v)
			} else {
				fmt.Fprintln(out, "<missing>")
			}
		}
		return nil
	}

	w := table.NewYAMLWriter(out, schema)
	if err := w.WriteAll(matches); err != nil {
		return err
	}
	return w.Flush()
}
