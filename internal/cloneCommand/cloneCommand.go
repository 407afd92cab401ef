package cloneCommand

import (
	"context"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"pacl/internal/appConfig"
	"pacl/internal/cloneCommand/terminalView"
	"pacl/internal/color"
	"pacl/internal/gitremote"
	"pacl/internal/gitrepo"
	logger "pacl/internal/log"
	"pacl/internal/sh"
)

type Options struct {
	Identifier string
	ExtraArgs  []string
	BaseDir    string // -b/--base-dir, empty when not given
	DryRun     bool
}

type CloneCommand struct {
	Config *appConfig.AppConfig
	Env    appConfig.Environment
	Runner sh.Runner
	Stdout io.Writer
	Width  int // 0 when stdout is not a terminal
	Since  func(time.Time) time.Duration
}

// NewCloneCommand wires the command to the real process environment.
func NewCloneCommand(config *appConfig.AppConfig, dryRun bool) *CloneCommand {
	var runner sh.Runner = sh.NewCommandRunner()
	if dryRun {
		runner = sh.DryRunRunner{}
	}
	return &CloneCommand{
		Config: config,
		Env:    appConfig.OSEnvironment(),
		Runner: runner,
		Stdout: os.Stdout,
		Width:  terminalWidth(os.Stdout),
		Since:  time.Since,
	}
}

func terminalWidth(file *os.File) int {
	if !term.IsTerminal(int(file.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// PrepareClone resolves the identifier and derives the clone request without touching the filesystem.
func (c *CloneCommand) PrepareClone(opts Options) (*gitrepo.CloneRequest, error) {
	resolver := gitremote.Resolver{DefaultHost: c.Config.GetDefaultHost()}
	id, err := resolver.Resolve(opts.Identifier)
	if err != nil {
		return nil, err
	}
	logger.Log.Debugf("Resolved %s to %s", color.FgCyan(opts.Identifier), color.FgCyan(id.CanonicalURL))

	baseDir, err := c.Config.ResolveBaseDir(opts.BaseDir, c.Env)
	if err != nil {
		return nil, err
	}
	logger.Log.Debugf("Base directory %s", color.FgMagenta(baseDir))

	return gitrepo.NewCloneRequest(id, baseDir, opts.ExtraArgs)
}

// Execute prints the git command line and runs it. A failing git is returned as *sh.ExternalCommandFailure.
func (c *CloneCommand) Execute(ctx context.Context, opts Options) error {
	request, err := c.PrepareClone(opts)
	if err != nil {
		return err
	}

	gitCommand := c.Config.GetGitCommand()
	vm := terminalView.NewCloneViewModel(gitCommand, request)
	terminalView.NewCommandView(vm, c.Stdout).Render(c.Width)

	startTime := time.Now()
	err = c.Runner.Run(ctx, gitCommand, request.Args()...)
	if err != nil {
		return err
	}

	if !opts.DryRun {
		terminalView.NewSummaryView(vm, c.Stdout, startTime, c.Since).Render(c.Width)
	}
	return nil
}

// ExecuteCloneCommand runs a clone against the real environment, printing to stdout.
func ExecuteCloneCommand(ctx context.Context, config *appConfig.AppConfig, opts Options, stdout io.Writer) error {
	cmd := NewCloneCommand(config, opts.DryRun)
	cmd.Stdout = stdout
	return cmd.Execute(ctx, opts)
}
