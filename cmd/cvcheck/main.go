// Package main provides the entry point for the cvcheck command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonathan/cvcheck/internal/config"
	"github.com/jonathan/cvcheck/internal/types"
	"github.com/spf13/cobra"
)

// errProblemsFound is returned when at least one document has problems; the
// problems themselves have already been printed.
var errProblemsFound = errors.New("validation found problems")

// rootOptions holds flags shared by every command
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "cvcheck",
		Short: "Résumé document validator",
		Long: "cvcheck validates YAML résumé documents (cv, design, locale, settings) and reports every " +
			"problem with its location in the source file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")

	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newShapesCmd())
	cmd.AddCommand(newSpanCmd(opts))
	return cmd
}

// loadConfig reads the config file (if any) and the environment. Flags are
// applied by the caller, which then validates the result.
func loadConfig(path string) (config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	return cfg.MergeWithDefaults(config.Defaults()), nil
}

// referenceDate returns the configured current date, or the zero time.
func referenceDate(cfg config.Config) time.Time {
	d, ok := types.ParseCurrentDate(cfg.CurrentDate)
	if !ok {
		return time.Time{}
	}
	t, _ := d.Time(time.Time{})
	return t
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errProblemsFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
