// Package diagram draws spectra, acceleration records and bearing
// backbones, as terminal charts or image files.
package diagram

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gobridge/internal/bearing"
	"github.com/alexiusacademia/gobridge/internal/seismic"
	"github.com/guptarohit/asciigraph"
)

// Terminal chart size
const (
	Width  = 60
	Height = 12
)

// ASCIISpectrum charts a spectrum on a uniform period grid
func ASCIISpectrum(s *seismic.Spectrum, caption string) string {
	if len(s.Periods) == 0 {
		return ""
	}
	t0, t1 := s.Periods[0], s.Periods[len(s.Periods)-1]
	return asciigraph.Plot(s.Resample(Width),
		asciigraph.Height(Height),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("%s  T = %.2f .. %.2f s", caption, t0, t1)),
	)
}

// ASCIIHistory charts a record, decimated to the chart width
func ASCIIHistory(h *seismic.History) string {
	if len(h.Values) == 0 {
		return ""
	}
	data := h.Values
	if len(data) > 2*Width {
		step := len(data) / (2 * Width)
		var picked []float64
		for i := 0; i < len(data); i += step {
			picked = append(picked, data[i])
		}
		data = picked
	}
	return asciigraph.Plot(data,
		asciigraph.Height(Height),
		asciigraph.Width(2*Width),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("%s  %d steps, dt = %g s", h.Name, len(h.Values), h.Dt())),
	)
}

// ASCIIBackbone charts a force-displacement law sampled on a uniform
// displacement grid
func ASCIIBackbone(c bearing.Curve, caption string) string {
	if len(c.Disp) < 2 {
		return ""
	}
	s := seismic.Spectrum{Periods: c.Disp, Values: c.Force}
	return asciigraph.Plot(s.Resample(Width),
		asciigraph.Height(Height),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("%s  d = %g .. %g m", caption, c.Disp[0], c.Disp[len(c.Disp)-1])),
	)
}

// DrawSummaryBox frames a title and result lines
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	width += 4

	border := strings.Repeat("═", width)
	fmt.Fprintf(&sb, "  ╔%s╗\n", border)
	fmt.Fprintf(&sb, "  ║  %-*s  ║\n", width-4, title)
	fmt.Fprintf(&sb, "  ╠%s╣\n", border)
	for _, line := range lines {
		fmt.Fprintf(&sb, "  ║  %-*s  ║\n", width-4, line)
	}
	fmt.Fprintf(&sb, "  ╚%s╝\n", border)

	return sb.String()
}
