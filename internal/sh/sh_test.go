package sh

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"emperror.dev/errors"
)

func TestQuoteCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "Plain words",
			args:     []string{"clone", "https://github.com/rust-lang/rust", "/home/alice/.pacl/github.com/rust-lang/rust"},
			expected: "git clone https://github.com/rust-lang/rust /home/alice/.pacl/github.com/rust-lang/rust",
		},
		{
			name:     "Flags with values",
			args:     []string{"clone", "u", "d", "--depth", "50", "--branch=main"},
			expected: "git clone u d --depth 50 --branch=main",
		},
		{
			name:     "Spaces and quotes",
			args:     []string{"clone", "u", "/tmp/my dir", "-c", "user.name=it's me"},
			expected: `git clone u '/tmp/my dir' -c 'user.name=it'\''s me'`,
		},
		{
			name:     "Empty argument",
			args:     []string{"clone", ""},
			expected: "git clone ''",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteCommand("git", tt.args...); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCommandRunner_Success(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	var stdout bytes.Buffer
	runner := &CommandRunner{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	err := runner.Run(context.Background(), "sh", "-c", `printf '%s|' "$@"`, "sh", "--depth", "50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != "--depth|50|" {
		t.Errorf("expected arguments passed through verbatim, got %q", stdout.String())
	}
}

func TestCommandRunner_ExitCodePassedThrough(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	runner := &CommandRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	err := runner.Run(context.Background(), "sh", "-c", "exit 42")

	var failure *ExternalCommandFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *ExternalCommandFailure, got %v", err)
	}
	if failure.ExitCode != 42 {
		t.Errorf("expected exit code 42, got %d", failure.ExitCode)
	}
	if failure.Signaled {
		t.Error("did not expect a signal")
	}
	if failure.Error() != "sh returned non-zero status code '42'" {
		t.Errorf("unexpected message %q", failure.Error())
	}
}

func TestCommandRunner_Signaled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	runner := &CommandRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	err := runner.Run(context.Background(), "sh", "-c", "kill -TERM $$")

	var failure *ExternalCommandFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *ExternalCommandFailure, got %v", err)
	}
	if !failure.Signaled {
		t.Error("expected signaled failure")
	}
	if failure.ExitCode != 128+15 {
		t.Errorf("expected exit code 143, got %d", failure.ExitCode)
	}
}

func TestCommandRunner_NotFound(t *testing.T) {
	runner := &CommandRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	err := runner.Run(context.Background(), "pacl-test-no-such-binary")

	var failure *ExternalCommandFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *ExternalCommandFailure, got %v", err)
	}
	if failure.ExitCode != ExitCodeNotStarted {
		t.Errorf("expected exit code %d, got %d", ExitCodeNotStarted, failure.ExitCode)
	}
}

func TestDryRunRunner(t *testing.T) {
	if err := (DryRunRunner{}).Run(context.Background(), "git", "clone", "u", "d"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
