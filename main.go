package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"emperror.dev/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"pacl/internal/appConfig"
	"pacl/internal/cloneCommand"
	"pacl/internal/color"
	"pacl/internal/gitremote"
	logger "pacl/internal/log"
	"pacl/internal/sh"
	typex "pacl/type"
)

// Set via -ldflags at build time.
var version = "dev"

const (
	exitCodeError = 1
	exitCodeUsage = 2
)

const ErrUsage = errors.Sentinel("usage error")

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func (e *usageError) Is(target error) bool { return target == ErrUsage }

func usageErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&usageError{msg: fmt.Sprintf(format, args...)})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	return reportError(stderr, err)
}

func newRootCmd() *cobra.Command {
	var (
		baseDir    string
		configPath string
		dryRun     bool
		verbose    bool
		colorFlag  typex.NullableBool
	)

	cmd := &cobra.Command{
		Use:   "pacl [options]... <repository> [-- <extra git clone args>...]",
		Short: "Clone git repositories into a host/owner/repo mirrored directory tree",
		Long: `Clone a git repository below a base directory that mirrors its host and path.

Supported repository formats:
  owner/repo                 https://github.com/owner/repo
  host.tld/owner/repo        https://host.tld/owner/repo
  https://host/owner/repo    any URL understood by git
  user@host:owner/repo       ssh://user@host/owner/repo

The base directory is taken from --base-dir, then $` + appConfig.BaseDirEnvVar + `, then baseDir in
~/` + appConfig.ConfigFileName + `, and defaults to ~/` + appConfig.DefaultBaseDir + `.

Arguments after '--' are passed to git clone unchanged.`,
		Example: `  pacl rust-lang/rust
  pacl https://gitlab.freedesktop.org/xorg/app/xeyes
  pacl rust-lang/rust -- --depth 50`,
		Version:       version,
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			colorEnabled := colorFlag.Val(isTerminal(os.Stdout))
			color.SetEnabled(colorEnabled)
			logger.InitLogger(cmd.ErrOrStderr(), verbose, colorFlag.Val(isTerminal(os.Stderr)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := appConfig.LoadConfig(configPath, appConfig.OSEnvironment())
			if err != nil {
				return err
			}

			opts := cloneCommand.Options{
				Identifier: args[0],
				ExtraArgs:  passthroughArgs(cmd, args),
				BaseDir:    baseDir,
				DryRun:     dryRun,
			}
			return cloneCommand.ExecuteCloneCommand(cmd.Context(), config, opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&baseDir, "base-dir", "b", "", "base directory to clone into")
	flags.StringVar(&configPath, "config", "", "config file (default ~/"+appConfig.ConfigFileName+")")
	flags.BoolVarP(&dryRun, "dry-run", "n", false, "print the git command without running it")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	colorValue := flags.VarPF(&colorFlag, "color", "", "force colored output on or off (default: auto)")
	colorValue.NoOptDefVal = "true"

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf("%s", err)
	})

	return cmd
}

// validateArgs requires exactly one repository before the optional "--".
func validateArgs(cmd *cobra.Command, args []string) error {
	positional := args
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		positional = args[:dash]
	}
	switch {
	case len(positional) == 0:
		return usageErrorf("missing required argument '<repository>'")
	case len(positional) > 1:
		return usageErrorf("unexpected argument '%s'", positional[1])
	}
	return nil
}

func passthroughArgs(cmd *cobra.Command, args []string) []string {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return nil
	}
	return args[dash:]
}

func reportError(stderr io.Writer, err error) int {
	var failure *sh.ExternalCommandFailure
	code := exitCodeError
	switch {
	case errors.As(err, &failure):
		code = failure.ExitCode
	case errors.Is(err, ErrUsage), errors.Is(err, gitremote.ErrInvalidIdentifier):
		code = exitCodeUsage
	}

	_, _ = fmt.Fprintf(stderr, "%s %s\n", color.FgRed("error:"), err)
	if code == exitCodeUsage {
		_, _ = fmt.Fprintln(stderr, "Run 'pacl --help' for usage.")
	}
	return code
}

func isTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

var _ pflag.Value = (*typex.NullableBool)(nil)
