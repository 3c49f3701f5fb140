package plot

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cellsolve/internal/odesys"
)

const (
	DefaultHeight = 10
	DefaultWidth  = 80
)

// Render draws one terminal curve per state index against time. labels, if
// present, caption the curves; otherwise indices are used.
func Render(w io.Writer, tr *odesys.Trajectory, labels []string, height, width int) error {
	if tr.Len() == 0 {
		return fmt.Errorf("no samples to plot")
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if width <= 0 {
		width = DefaultWidth
	}

	for i, series := range tr.Series {
		caption := fmt.Sprintf("state %d vs time", i)
		if i < len(labels) && labels[i] != "" {
			caption = fmt.Sprintf("%s vs time", labels[i])
		}

		graph := asciigraph.Plot(series,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(caption),
		)
		fmt.Fprintln(w, graph)
		fmt.Fprintln(w)
	}

	return nil
}
