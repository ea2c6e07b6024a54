package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/jonathan/cvcheck/internal/config"
	"github.com/jonathan/cvcheck/internal/diagnostics"
	"github.com/jonathan/cvcheck/internal/document"
	"github.com/jonathan/cvcheck/internal/observability"
	"github.com/jonathan/cvcheck/internal/overrides"
	"github.com/jonathan/cvcheck/internal/schemas"
	"github.com/jonathan/cvcheck/internal/types"
	"github.com/jonathan/cvcheck/internal/validation"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type validateOptions struct {
	overrides      []string
	currentDate    string
	spanArithmetic string
	output         string
	logLevel       string
	width          int
	color          bool
	jobs           int
	dump           bool
}

// fileResult is the outcome of validating one file
type fileResult struct {
	file  string
	model *types.Model
	doc   *document.Document
	err   error
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate FILE... [-- --key value ...]",
		Short: "Validate résumé documents",
		Long: `Validates one or more résumé documents and prints every problem with a
snippet of the source.

Values can be overridden before validation, either with --override or with
key/value pairs after "--":

  cvcheck validate Jane_Doe_CV.yaml --override cv.name="Jane Doe"
  cvcheck validate Jane_Doe_CV.yaml -- --cv.phone "+1 555 123 4567"

The exit status is 1 when any document has problems.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if files, _ := splitArgs(cmd, args); len(files) == 0 {
				return fmt.Errorf("requires at least one file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.overrides, "override", "O", nil, "Override a value, as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.currentDate, "current-date", "", "Reference date (YYYY-MM-DD) when the document has none")
	cmd.Flags().StringVar(&opts.spanArithmetic, "span-arithmetic", "", "Time span arithmetic: calendar or legacy")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output format: text or json")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Wrap width of problem details, 0 disables wrapping")
	cmd.Flags().BoolVar(&opts.color, "color", false, "Color the output")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "Files validated concurrently")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "Dump the validated model of each valid file")

	return cmd
}

// splitArgs separates files from the key/value pairs given after "--".
func splitArgs(cmd *cobra.Command, args []string) (files, extra []string) {
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		return args[:dash], args[dash:]
	}
	return args, nil
}

func (o *validateOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("current-date") {
		cfg.CurrentDate = o.currentDate
	}
	if flags.Changed("span-arithmetic") {
		cfg.SpanArithmetic = o.spanArithmetic
	}
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("width") {
		cfg.Width = o.width
	}
	if flags.Changed("color") {
		cfg.Color = &o.color
	}
	if flags.Changed("jobs") {
		cfg.Jobs = o.jobs
	}
}

func runValidate(cmd *cobra.Command, root *rootOptions, opts *validateOptions, args []string) error {
	files, extra := splitArgs(cmd, args)

	cfg, err := loadConfig(root.configPath)
	if err != nil {
		return err
	}
	opts.apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	assigned, err := overrides.ParseAssignments(opts.overrides)
	if err != nil {
		return err
	}
	extraOverrides, err := overrides.ParseArguments(extra)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.Level(), cfg.LogFormat, cmd.ErrOrStderr())
	base := validation.Options{
		Overrides:     overrides.Merge(cfg.Overrides, assigned, extraOverrides),
		ReferenceDate: referenceDate(cfg),
		SpanMode:      cfg.SpanMode(),
	}

	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(cfg.Jobs, 1))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			runOpts := base
			runOpts.Logger = logger.With().Str("run_id", uuid.NewString()).Str("file", file).Logger()

			model, doc, err := validation.ValidateFile(file, runOpts)
			var internal *validation.InternalError
			if errors.As(err, &internal) {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = fileResult{file: file, model: model, doc: doc, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if cfg.Output == config.OutputJSON {
		return reportJSON(cmd.OutOrStdout(), results)
	}
	return reportText(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, opts.dump, results)
}

func reportText(out, errOut io.Writer, cfg config.Config, dump bool, results []fileResult) error {
	printer := observability.NewPrinter(out)
	failed := 0
	for _, r := range results {
		if r.err == nil {
			printer.PrintModel(r.file, r.model)
			if dump {
				spew.Fdump(out, r.model)
			}
			continue
		}

		failed++
		diags := diagnostics.FromError(r.err, r.doc)
		if r.doc == nil || len(diags) == 0 {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", r.err)
			continue
		}
		if err := diagnostics.Write(out, r.doc, diags, uint(cfg.Width), cfg.ColorEnabled()); err != nil {
			return fmt.Errorf("failed to write problems for %s: %w", r.file, err)
		}
		printer.PrintProblemCount(r.file, len(diags))
	}
	if failed > 0 {
		return fmt.Errorf("%w in %d of %d file(s)", errProblemsFound, failed, len(results))
	}
	return nil
}

func reportJSON(out io.Writer, results []fileResult) error {
	all := make([]diagnostics.Diagnostic, 0)
	failed := 0
	for _, r := range results {
		if r.err == nil {
			continue
		}
		failed++
		diags := diagnostics.FromError(r.err, r.doc)
		if len(diags) == 0 {
			diags = []diagnostics.Diagnostic{{
				Range:   hcl.Range{Filename: r.file},
				Code:    schemas.CodeOther,
				Message: r.err.Error(),
			}}
		}
		all = append(all, diags...)
	}
	if err := diagnostics.WriteJSON(out, all); err != nil {
		return fmt.Errorf("failed to write problems: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%w in %d of %d file(s)", errProblemsFound, failed, len(results))
	}
	return nil
}
