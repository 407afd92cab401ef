package terminalView

import (
	"io"
	"time"

	"pacl/internal/view"
)

// NewSummaryView shows where the repository ended up and how long the clone took.
func NewSummaryView(vm *CloneViewModel, out io.Writer, startTime time.Time, since func(time.Time) time.Duration) *view.CompositeView {
	summary := view.NewCompositeView([]view.View{NewClonedView(vm, out)})
	summary.AddView(view.NewTimeElapsedView(startTime, out, since))
	return summary
}
