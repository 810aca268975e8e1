package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"soundcore/internal/config"
)

var (
	// Global flags
	configPath string
	audioDir   string
	verbose    bool

	// Loaded before every command runs
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "soundcore",
	Short: "soundcore - bioacoustic exchange document tool",
	Long: `soundcore reads, writes, and archives acoustic exchange documents:
flat JSON files carrying recording sets, annotation projects, model runs
and evaluations with shared entities stored once and referenced by id.

Documents can be inspected and validated locally, or archived to a blob
store (filesystem or S3) indexed by a catalog (SQLite or PostgreSQL).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if audioDir != "" {
			cfg.Codec.AudioDir = audioDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Logging.Level))
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "soundcore.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&audioDir, "audio-dir", "", "base directory for recording paths (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(archiveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
