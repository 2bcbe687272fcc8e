// cmd/root.go
//
// Command tree for the lexique binary. Every subcommand gets, in order:
// .env loaded (best effort), typed config, zerolog set up, the lexicon loaded.

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/lexique/internal/config"
	"github.com/robalobadob/lexique/internal/lexicon"
)

var (
	cfgFile  string
	logLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "lexique",
	Short:         "Bilingual lexicon server and word games",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		c, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if logLevel != "" {
			c.Log.Level = logLevel
		}
		setupLogging(c.Log)

		if err := lexicon.Init(c.Lexicon.File); err != nil {
			return fmt.Errorf("load lexicon: %w", err)
		}
		total, playable := lexicon.Default().Stats()
		log.Debug().Int("entries", total).Int("playable", playable).Str("file", c.Lexicon.File).Msg("lexicon loaded")

		cfg = c
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// setupLogging configures the global zerolog logger.
func setupLogging(lc config.LogConfig) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(lc.Level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if strings.EqualFold(lc.Format, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: lexique.{yaml,json,toml} in . or ./config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug|info|warn|error)")
}
