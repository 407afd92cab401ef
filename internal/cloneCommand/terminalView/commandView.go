package terminalView

import (
	"fmt"
	"io"
	"strings"

	"pacl/internal/color"
	"pacl/internal/sh"
)

// CommandView prints the git invocation as a pasteable shell line. It is never truncated.
type CommandView struct {
	viewModel *CloneViewModel
	stdout    io.Writer
}

func NewCommandView(vm *CloneViewModel, stdout io.Writer) *CommandView {
	return &CommandView{
		viewModel: vm,
		stdout:    stdout,
	}
}

func (v *CommandView) Render(int) int {
	request := v.viewModel.Request
	words := []string{
		color.Bold(sh.Quote(v.viewModel.GitCommand)),
		"clone",
		color.FgCyan(sh.Quote(request.URL)),
		color.FgMagenta(sh.Quote(request.Destination)),
	}
	for _, arg := range request.ExtraArgs {
		words = append(words, sh.Quote(arg))
	}

	out := strings.Join(words, " ") + "\n"
	_, err := fmt.Fprint(v.stdout, out)
	if err != nil {
		return 0
	}
	return 1
}
