package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/qsun/fluxtrace/internal/flux"
)

// projectPoint picks the two plotted components of a physical triple
// under the given projection: (R, Z) for RZ plots, (scaled θ, R) for
// the slab's yx plot.
func projectPoint(proj flux.Projection, p flux.State) (float64, float64) {
	if proj.Kind == flux.PlotYX {
		return p[1], p[0]
	}
	return p[0], p[2]
}

// Section renders the crossings of all lines as a braille scatter with
// axis annotations taken from the projection.
func Section(lines [][]flux.State, proj flux.Projection, width, height int) string {
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)

	for _, line := range lines {
		for _, p := range line {
			x, y := projectPoint(proj, p)
			xmin = math.Min(xmin, x)
			xmax = math.Max(xmax, x)
			ymin = math.Min(ymin, y)
			ymax = math.Max(ymax, y)
		}
	}
	if xmin > xmax {
		return "no points\n"
	}

	// Degenerate extents still get a visible band.
	if xmax-xmin < 1e-12 {
		xmin -= 0.5
		xmax += 0.5
	}
	if ymax-ymin < 1e-12 {
		ymin -= 0.5
		ymax += 0.5
	}

	canvas := NewCanvas(width, height)
	spx := float64(width*2 - 1)
	spy := float64(height*4 - 1)

	for _, line := range lines {
		for _, p := range line {
			x, y := projectPoint(proj, p)
			px := int((x - xmin) / (xmax - xmin) * spx)
			// Flip so larger y plots higher.
			py := int((ymax - y) / (ymax - ymin) * spy)
			canvas.Set(px, py)
		}
	}

	var b strings.Builder
	b.WriteString(canvasStyle.Render(strings.TrimRight(canvas.String(), "\n")))
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(fmt.Sprintf("%s: [%.3f, %.3f]   %s: [%.3f, %.3f]",
		proj.XLabel, xmin, xmax, proj.YLabel, ymin, ymax)))
	b.WriteString("\n")
	return b.String()
}
