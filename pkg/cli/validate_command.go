package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/hacheck/hacheck/pkg/console"
	"github.com/hacheck/hacheck/pkg/constants"
	"github.com/hacheck/hacheck/pkg/corpus"
	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/hacheck/hacheck/pkg/tty"
	"github.com/hacheck/hacheck/pkg/validator"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cobra"
)

var validateLog = logger.New("cli:validate_command")

// ErrDeployAborted is returned when validation found errors and the run was
// not forced to continue.
var ErrDeployAborted = errors.New("deployment aborted: validation found errors")

// ValidateConfig holds the options of the validate command.
type ValidateConfig struct {
	Roots      []string
	Corpus     corpus.Config // document overrides; Root is ignored
	ConfigFile string
	JSONOutput bool
	Force      bool
	NoPrompt   bool
	Verbose    bool
	Stdout     io.Writer
}

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [root]...",
		Short: "Check a configuration directory for dangling references before deploying",
		Long: `Check one or more Home Assistant configuration directories for dangling references.

Four checks run in order:
  script-references    every called script is defined                (error)
  helper-references    every helper reference is a live registry id  (error)
  dashboard-entities   every dashboard entity exists in the registry (warning)
  ungrouped-helpers    every helper has a category                   (warning)

Errors make the configuration unsafe to deploy. On a terminal you are asked
whether to abort or continue anyway; otherwise the command fails unless
--force is given. A YAML or JSON document that cannot be parsed stops the
run with a "corpus unreadable" error before any check runs.

If no root is given the current directory is validated.

Examples:
  ` + string(constants.CLIName) + ` validate                          # Validate the current directory
  ` + string(constants.CLIName) + ` validate /config                  # Validate a specific directory
  ` + string(constants.CLIName) + ` validate prod staging             # Validate several directories
  ` + string(constants.CLIName) + ` validate --json                   # Output the report as JSON
  ` + string(constants.CLIName) + ` validate --force                  # Continue even when errors are found
  ` + string(constants.CLIName) + ` validate --dashboards 'ui/*.yaml' # Read dashboards from another place`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			force, _ := cmd.Flags().GetBool("force")
			noPrompt, _ := cmd.Flags().GetBool("no-prompt")
			verbose, _ := cmd.Flags().GetBool("verbose")
			overrides, configFile := corpusFlags(cmd)

			validateLog.Printf("Running validate command: roots=%v", args)

			config := ValidateConfig{
				Roots:      args,
				Corpus:     overrides,
				ConfigFile: configFile,
				JSONOutput: jsonOutput,
				Force:      force,
				NoPrompt:   noPrompt,
				Verbose:    verbose,
				Stdout:     cmd.OutOrStdout(),
			}
			return RunValidate(cmd.Context(), config)
		},
	}

	addCorpusFlags(cmd)
	cmd.Flags().BoolP("json", "j", false, "Output the report in JSON format")
	cmd.Flags().Bool("force", false, "Continue with exit status 0 even when validation finds errors")
	cmd.Flags().Bool("no-prompt", false, "Never ask for confirmation; abort on errors unless --force is given")

	return cmd
}

// rootResult is the outcome of validating one root.
type rootResult struct {
	root     string
	snapshot *corpus.Snapshot
	report   *validator.Report
	err      error
}

// validateRoot loads and validates one corpus. Display is the root as the
// user typed it and is used as the report root.
func validateRoot(display string, overrides corpus.Config, configFile string) rootResult {
	cfg, err := resolveCorpusConfig(display, overrides, configFile)
	if err != nil {
		return rootResult{root: display, err: err}
	}
	return validateCorpus(display, cfg)
}

// validateCorpus loads and validates a corpus with a resolved configuration.
func validateCorpus(display string, cfg corpus.Config) rootResult {
	snap, err := corpus.Load(cfg)
	if err != nil {
		return rootResult{root: display, err: err}
	}
	report := validator.Validate(snap)
	report.Root = display
	return rootResult{root: display, snapshot: snap, report: report}
}

// validateRoots validates every root independently, at most GOMAXPROCS at a
// time, and returns the results in argument order. progress, when set, is
// called as each root finishes and must be safe for concurrent use.
func validateRoots(roots []string, overrides corpus.Config, configFile string, progress func(root string)) []rootResult {
	mapper := iter.Mapper[string, rootResult]{MaxGoroutines: runtime.GOMAXPROCS(0)}
	return mapper.Map(roots, func(root *string) rootResult {
		res := validateRoot(*root, overrides, configFile)
		if progress != nil {
			progress(*root)
		}
		return res
	})
}

// RunValidate validates every configured root, prints the reports and applies
// the deploy gate.
func RunValidate(ctx context.Context, config ValidateConfig) error {
	roots := config.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}
	out := config.Stdout
	if out == nil {
		out = os.Stdout
	}

	spinner := console.NewSpinner(fmt.Sprintf("Validating %d corpus root(s)...", len(roots)))
	showSpinner := !config.Verbose && !config.JSONOutput
	if showSpinner {
		spinner.Start()
	}
	results := validateRoots(roots, config.Corpus, config.ConfigFile, func(root string) {
		spinner.UpdateMessage(fmt.Sprintf("Validated %s", root))
	})
	if showSpinner && len(roots) > 1 {
		spinner.StopWithMessage(console.FormatSuccessMessage(fmt.Sprintf("Validated %d corpus roots", len(roots))))
	} else {
		spinner.Stop()
	}

	if ctx != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	var loadErrs []error
	var reports []*validator.Report
	for _, res := range results {
		if res.err != nil {
			validateLog.Printf("Root %s failed to load: %v", res.root, res.err)
			loadErrs = append(loadErrs, fmt.Errorf("%s: %w", res.root, res.err))
			// Unreadable documents are listed here; other failures are
			// returned and printed once by the caller.
			if len(corpus.UnreadableDocuments(res.err)) > 0 {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage("Corpus "+res.root))
				PrintValidationError(res.err)
			}
			continue
		}
		reports = append(reports, res.report)
		if !config.JSONOutput {
			if config.Verbose {
				renderStats(out, res.snapshot)
			}
			renderTextReport(out, res.report)
		}
	}

	if config.JSONOutput && len(reports) > 0 {
		var payload any = reports
		if len(roots) == 1 {
			payload = reports[0]
		}
		if err := writeJSON(out, payload, stdoutColorize(out)); err != nil {
			return err
		}
	}

	if len(loadErrs) > 0 {
		return errors.Join(loadErrs...)
	}

	return applyDeployGate(reports, config)
}

// isInteractive and confirmForceContinue are swapped in tests.
var (
	isInteractive = func() bool {
		return tty.IsStdinTerminal() && tty.IsStderrTerminal()
	}
	confirmForceContinue = func(errorCount int) (bool, error) {
		return console.ConfirmAction(
			fmt.Sprintf("Validation found %s. Deploy anyway?", pluralize(errorCount, "error")),
			"Dangling references will break automations after the restart.",
			"Force continue",
			"Abort",
		)
	}
)

// applyDeployGate decides whether an unsafe verdict aborts the run.
func applyDeployGate(reports []*validator.Report, config ValidateConfig) error {
	errorCount := 0
	for _, r := range reports {
		errorCount += r.ErrorCount
	}
	if errorCount == 0 {
		return nil
	}

	switch {
	case config.Force:
		validateLog.Print("Unsafe verdict overridden by --force")
	case config.NoPrompt || config.JSONOutput || !isInteractive():
		validateLog.Print("Unsafe verdict in non-interactive mode, aborting")
		if !config.JSONOutput {
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage("To deploy anyway, run:"))
			fmt.Fprintln(os.Stderr, console.FormatCommandMessage(string(constants.CLIName)+" validate --force"))
		}
		return ErrDeployAborted
	default:
		proceed, err := confirmForceContinue(errorCount)
		if err != nil {
			return err
		}
		if !proceed {
			return ErrDeployAborted
		}
	}

	fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("Continuing despite %s", pluralize(errorCount, "error"))))
	return nil
}
