package terminalView

import (
	"fmt"
	"io"

	"pacl/internal/color"
	"pacl/internal/ext"
	"pacl/internal/view"
)

const clonedPrefix = "Cloned into "

type ClonedView struct {
	viewModel *CloneViewModel
	stdout    io.Writer
}

func NewClonedView(vm *CloneViewModel, stdout io.Writer) *ClonedView {
	return &ClonedView{
		viewModel: vm,
		stdout:    stdout,
	}
}

func (v *ClonedView) Render(width int) int {
	destination := ext.ReplaceHomeDirWithTilde(v.viewModel.Request.Destination)
	if width > 0 {
		destination = view.TruncateTextToWidth(max(width-len(clonedPrefix), 1), destination)
	}
	_, err := fmt.Fprintf(v.stdout, "%s%s\n", clonedPrefix, color.FgMagenta(destination))
	if err != nil {
		return 0
	}
	return 1
}
