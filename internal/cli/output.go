package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	domainerrors "cooked/internal/domain/errors"
	"cooked/internal/errors"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the backend or the state machine refused the request
	ExitCommandError = 2 // bad flags, unreadable config, unreachable store
	ExitSignedOut    = 3
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
	Err     error

	// Reported is set once the error was already written to the command output.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if domainerrors.IsSessionExpired(err) || errors.Is(err, domainerrors.ErrNoSession) {
		return ExitSignedOut
	}

	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes data as JSON, or lets text render the human form.
func (f *OutputFormatter) Success(data any, text func(w io.Writer) error) error {
	if f.Format == "json" {
		return f.writeJSON(CLIResponse{Status: "ok", Data: data})
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 0, 2, ' ', 0)
	if err := text(tw); err != nil {
		return err
	}

	return tw.Flush()
}

// Error reports err in the configured format.
func (f *OutputFormatter) Error(err error) error {
	code := "E_FAILED"
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		code = appErr.ErrorCode()
	}

	if f.Format == "json" {
		return f.writeJSON(CLIResponse{Status: "error", Error: &CLIError{Code: code, Message: err.Error()}})
	}

	_, werr := fmt.Fprintf(f.Writer, "error [%s]: %v\n", code, err)

	return werr
}

// Fail reports err and returns it with its exit code attached.
func (f *OutputFormatter) Fail(err error) error {
	if werr := f.Error(err); werr != nil {
		return werr
	}

	return &ExitError{Code: GetExitCode(err), Message: "command failed", Err: err, Reported: true}
}

func (f *OutputFormatter) writeJSON(v any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
