package cli

import (
	"github.com/spf13/cobra"

	"mit.edu/dsg/qep/config"
	log "mit.edu/dsg/qep/logging"
)

const defaultConfigPath = "qep.yaml"

var (
	// Global flags
	configPath string
	logLevel   string
	logFormat  string
	jsonOutput bool

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

// rootCmd is the root command for qep.
var rootCmd = &cobra.Command{
	Use:     "qep",
	Version: "dev",
	Short:   "Explain and compare PostgreSQL query execution plans",
	Long: `qep annotates every node of a PostgreSQL query plan with a plain-English
explanation and reports how the plans of two queries differ.

Plans come from a live database (EXPLAIN (FORMAT JSON)) or from saved
EXPLAIN documents.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// setup loads the configuration and installs the global logger. Flags given on
// the command line win over the configuration file.
func setup(cmd *cobra.Command, _ []string) error {
	explicit := cmd.Flags().Changed("config")
	loaded, err := config.Load(configPath, !explicit)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		loaded.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		loaded.Log.Format = logFormat
	}
	if err := log.ConfigureStderr(loaded.Log.Level, loaded.Log.Format); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console or json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(serveCmd, explainCmd, compareCmd, operatorsCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
