package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"astroinsight/internal/config"
)

// version is overridden at build time with -ldflags "-X astroinsight/internal/cli.version=...".
var version = "0.1.0"

const skipConfig = "skip-config"

var (
	cfgFile  string
	logLevel string

	appCfg     *config.AppConfig
	appCfgPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "astroinsight",
	Short: "AstroInsight - ask questions and skim the answers",
	Long: `AstroInsight answers free-text questions from a question-answering
backend, Wikipedia or a local text corpus, and condenses the answer with
extractive summaries, keywords and key sentences.

Run without a subcommand to open the interactive search screen.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	RunE:              runSearch,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{skipConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "astroinsight v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml, then ~/.config/astroinsight/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(versionCmd)
}

// initConfig loads the configuration and installs the default logger.
func initConfig(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfig] == "true" {
		return nil
	}
	var err error
	if cfgFile != "" {
		appCfg, err = config.Load(cfgFile)
		appCfgPath = cfgFile
	} else {
		appCfg, appCfgPath, err = config.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	config.ApplyEnv(appCfg)
	if err := appCfg.Validate(); err != nil {
		return err
	}
	if logLevel != "" {
		appCfg.Log.Level = logLevel
	}
	return setupLogger(appCfg.Log.Level, cmd.ErrOrStderr())
}

func setupLogger(levelStr string, w io.Writer) error {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}
