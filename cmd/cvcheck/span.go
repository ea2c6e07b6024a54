package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/cvcheck/internal/dates"
	"github.com/jonathan/cvcheck/internal/locale"
	"github.com/spf13/cobra"
)

type spanOptions struct {
	currentDate string
	language    string
	legacy      bool
}

func newSpanCmd(root *rootOptions) *cobra.Command {
	opts := &spanOptions{}
	cmd := &cobra.Command{
		Use:   "span START END",
		Short: "Print the time span between two dates",
		Long: `Prints the time span between START and END as it would appear on a résumé.
Dates are YYYY, YYYY-MM, or YYYY-MM-DD; END may also be "present".

  cvcheck span 2020-01 present --current-date 2023-04-15`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpan(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.currentDate, "current-date", "", "Date that \"present\" stands for (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.language, "locale", "english", "Language of the output")
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "Use the legacy 365-day/30-day arithmetic")
	return cmd
}

func runSpan(cmd *cobra.Command, root *rootOptions, opts *spanOptions, args []string) error {
	cfg, err := loadConfig(root.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("current-date") {
		cfg.CurrentDate = opts.currentDate
	}
	if opts.legacy {
		cfg.SpanArithmetic = dates.SpanLegacy.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	start, err := dates.ParseExact(args[0])
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	end, err := dates.ParseExact(args[1])
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}

	lang, ok := locale.Default().Get(opts.language)
	if !ok {
		return fmt.Errorf("unknown locale %q (available: %s)", opts.language, strings.Join(locale.Default().Languages(), ", "))
	}

	ref := referenceDate(cfg)
	if ref.IsZero() {
		now := time.Now()
		ref = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	span, err := dates.ComputeSpan(start, end, ref, cfg.SpanMode())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), dates.FormatSpan(span, lang.Vocabulary(), dates.DefaultTemplates.TimeSpan))
	return err
}
