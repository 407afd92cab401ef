package view

type View interface {
	// Render writes the view and returns the number of lines written. A width of 0 means unlimited.
	Render(width int) (lines int)
}
