package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/wikibio/internal/logger"
	"github.com/ppiankov/wikibio/internal/model"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	logJSON bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wikibio",
	Short: "wikibio - extract biographical records from the WikiBio corpus",
	Long: `wikibio turns the line-aligned WikiBio corpus files (id, title, box, nb, sent)
into a flat table of biographies.

The extract pass reassembles each article's sentences into a paragraph and
pulls name, birth and death dates and places, nationality and occupation out
of the infobox. The clean pass rewrites bracket escapes such as -lrb- back
into punctuation.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{Debug: verbose, Quiet: quiet, JSON: logJSON})
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("wikibio v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.wikibio/config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	pf.BoolVar(&logJSON, "log-json", false, "log as JSON")

	// Dataset and table flags shared by every pass
	defaults := model.DefaultConfig()
	pf.String("data-dir", defaults.Input.Dir, "WikiBio dataset directory")
	pf.String("split", defaults.Input.Split, "dataset split to read (train, valid, test)")
	pf.String("intermediate", defaults.Output.Intermediate, "intermediate table path")
	pf.String("final", defaults.Output.Final, "final table path")
	pf.String("format", defaults.Output.Format, "final table format (csv, jsonl, yaml)")
	pf.String("missing-marker", defaults.Output.MissingMarker, "value written for missing attributes")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("input.dir", pf.Lookup("data-dir"))
	_ = viper.BindPFlag("input.split", pf.Lookup("split"))
	_ = viper.BindPFlag("output.intermediate", pf.Lookup("intermediate"))
	_ = viper.BindPFlag("output.final", pf.Lookup("final"))
	_ = viper.BindPFlag("output.format", pf.Lookup("format"))
	_ = viper.BindPFlag("output.missing_marker", pf.Lookup("missing-marker"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.wikibio")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	setDefaults(model.DefaultConfig())

	// Read in environment variables that match WIKIBIO_*, e.g. WIKIBIO_LOAD_DSN
	viper.SetEnvPrefix("WIKIBIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every scalar key so env vars can override them
func setDefaults(cfg *model.Config) {
	viper.SetDefault("input.dir", cfg.Input.Dir)
	viper.SetDefault("input.split", cfg.Input.Split)
	viper.SetDefault("fields", cfg.Fields)
	viper.SetDefault("placeholders", cfg.Placeholders)
	viper.SetDefault("output.intermediate", cfg.Output.Intermediate)
	viper.SetDefault("output.final", cfg.Output.Final)
	viper.SetDefault("output.format", cfg.Output.Format)
	viper.SetDefault("output.missing_marker", cfg.Output.MissingMarker)
	viper.SetDefault("output.verbose", cfg.Output.Verbose)
	viper.SetDefault("load.sink", cfg.Load.Sink)
	viper.SetDefault("load.dsn", cfg.Load.DSN)
	viper.SetDefault("load.table", cfg.Load.Table)
	viper.SetDefault("load.database", cfg.Load.Database)
	viper.SetDefault("load.batch_size", cfg.Load.BatchSize)
	viper.SetDefault("load.workers", cfg.Load.Workers)
	viper.SetDefault("load.rate", cfg.Load.Rate)
	viper.SetDefault("load.burst", cfg.Load.Burst)
	viper.SetDefault("load.timeout", cfg.Load.Timeout)
}

// loadConfig builds the effective configuration from defaults, file, env and flags.
// Decoding starts from a zero Config so configured lists replace the defaults.
func loadConfig() (*model.Config, error) {
	cfg := &model.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
