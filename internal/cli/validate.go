package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tianshu/internal/config"
	"github.com/roach88/tianshu/internal/harness"
)

// ValidationIssue is one problem found by validate.
type ValidationIssue struct {
	Source  string `json:"source"` // config path or scenario file
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Checked []string          `json:"checked"`
	Errors  []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [scenario-path...]",
		Short: "Validate the config and scenario files without running them",
		Long: `Check the configuration against its schema and parse scenario files
without scoring anything. Scenario paths may be files or directories.

Exit codes:
  0 - Everything is valid
  1 - One or more problems found
  2 - Command error (path not found, etc.)

Examples:
  tianshu validate
  tianshu validate --config ./tianshu.yaml ./testdata/scenarios`,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	result := ValidationResult{Checked: []string{}}

	source := opts.ConfigPath
	if source == "" {
		source = config.DefaultPath
	}
	result.Checked = append(result.Checked, source)
	if _, err := opts.loadConfig(); err != nil {
		result.Errors = append(result.Errors, ValidationIssue{Source: source, Code: ErrCodeConfig, Message: err.Error()})
	}

	files, err := scenarioPaths(paths)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeNotFound, err)
	}
	for _, file := range files {
		formatter.VerboseLog("Validating scenario: %s", file)
		result.Checked = append(result.Checked, file)
		if _, err := harness.LoadScenario(file); err != nil {
			result.Errors = append(result.Errors, ValidationIssue{Source: file, Code: ErrCodeInvalidInput, Message: err.Error()})
		}
	}

	result.Valid = len(result.Errors) == 0
	if result.Valid {
		return outputValidateSuccess(formatter, result)
	}
	return outputValidationErrors(formatter, result)
}

// scenarioPaths expands directories into their scenario files.
func scenarioPaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("path not found: %s", p)
		}
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := harness.FindScenarios(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %d file(s) valid\n", len(result.Checked))
	return nil
}

// outputValidationErrors outputs the problems found.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	exitErr := &ExitError{
		Code:     ExitFailure,
		Message:  fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)),
		Reported: true,
	}

	if formatter.Format == "json" {
		first := result.Errors[0]
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    first.Code,
				Message: first.Message,
			},
		}); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, issue := range result.Errors {
		fmt.Fprintf(formatter.Writer, "%s\n  %s: %s\n\n", issue.Source, issue.Code, issue.Message)
	}
	return exitErr
}
