package errors

import (
	"fmt"
	"log/slog"
)

// CLIErrorAdapter maps errors to process exit codes and user-facing messages.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor returns the exit code for err (0 for nil).
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	c, ok := AsClassified(err)
	if !ok {
		return 1
	}
	switch c.Category() {
	case CategoryValidation:
		return 2
	case CategoryNotFound:
		return 4
	case CategoryConfig:
		return 7
	case CategoryFileSystem, CategoryRender:
		return 11
	case CategoryRuntime:
		return 12
	case CategoryInternal:
		return 10
	default:
		return 1
	}
}

// FormatError renders err for stderr. Context details are only shown when verbose.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	c, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		if len(c.Context()) > 0 {
			return fmt.Sprintf("Error: %s %v", c.Error(), map[string]any(c.Context()))
		}
		return "Error: " + c.Error()
	}
	return "Error: " + c.Message()
}

// Log records err on the adapter's logger.
func (a *CLIErrorAdapter) Log(err error) {
	if err == nil {
		return
	}
	a.logger.Error("command failed",
		slog.String("category", string(GetCategory(err))),
		slog.String("error", err.Error()))
}
