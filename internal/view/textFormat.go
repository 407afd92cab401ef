package view

import (
	"strings"
)

// TruncateTextToWidth Cuts off front of every line longer than width and adds ellipsis to indicate that text was
// shortened. Width 0 or less leaves the text untouched.
func TruncateTextToWidth(width int, out string) string {
	if width <= 0 {
		return out
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if len(line) > width {
			if width > 3 {
				lines[i] = "..." + line[len(line)-width+3:]
			} else {
				lines[i] = line[len(line)-width:]
			}
		}
	}
	return strings.Join(lines, "\n")
}
