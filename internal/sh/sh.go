package sh

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"emperror.dev/errors"
	"github.com/samber/lo"

	logger "pacl/internal/log"
)

// Exit codes used when the child did not report one itself.
const (
	ExitCodeNotStarted = 127
	exitCodeSignalBase = 128
)

const cancelWaitDelay = 10 * time.Second

type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExternalCommandFailure is returned when the command could not be started or did not exit cleanly.
type ExternalCommandFailure struct {
	Command  string
	ExitCode int
	Signaled bool
	Err      error
}

func (e *ExternalCommandFailure) Error() string {
	switch {
	case e.Signaled:
		return fmt.Sprintf("%s terminated by signal (%v)", e.Command, e.Err)
	case e.ExitCode == ExitCodeNotStarted:
		return fmt.Sprintf("could not run %s: %v", e.Command, e.Err)
	default:
		return fmt.Sprintf("%s returned non-zero status code '%d'", e.Command, e.ExitCode)
	}
}

func (e *ExternalCommandFailure) Unwrap() error {
	return e.Err
}

// CommandRunner runs the command directly (no shell) with the stdio and environment of this process.
type CommandRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Dir    string
}

func NewCommandRunner() *CommandRunner {
	return &CommandRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	// Let git clean up a partial clone before it is killed.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = cancelWaitDelay
	cmd.Dir = r.Dir
	cmd.Env = os.Environ()
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	logger.Log.Debugf("exec: %s", QuoteCommand(name, args...))
	err := cmd.Run()
	if err == nil {
		return nil
	}
	return commandFailure(name, err)
}

func commandFailure(name string, err error) error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return &ExternalCommandFailure{Command: name, ExitCode: ExitCodeNotStarted, Err: err}
	}

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return &ExternalCommandFailure{
			Command:  name,
			ExitCode: exitCodeSignalBase + int(status.Signal()),
			Signaled: true,
			Err:      err,
		}
	}
	return &ExternalCommandFailure{Command: name, ExitCode: exitErr.ExitCode(), Err: err}
}

// DryRunRunner only logs what it would have run.
type DryRunRunner struct{}

func (DryRunRunner) Run(_ context.Context, name string, args ...string) error {
	logger.Log.Infof("dry run, not executing: %s", QuoteCommand(name, args...))
	return nil
}

// QuoteCommand renders name and args as a line that can be pasted into a POSIX shell.
func QuoteCommand(name string, args ...string) string {
	words := append([]string{name}, args...)
	return strings.Join(lo.Map(words, func(word string, _ int) string {
		return Quote(word)
	}), " ")
}

func Quote(word string) string {
	if word == "" {
		return "''"
	}
	if strings.IndexFunc(word, needsQuoting) < 0 {
		return word
	}
	return "'" + strings.ReplaceAll(word, "'", `'\''`) + "'"
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./:=@%+,", r):
		return false
	}
	return true
}
