package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gobridge/internal/bearing"
	"github.com/alexiusacademia/gobridge/internal/seismic"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	curveColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	markColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	guideColor = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

// ExportSpectrum plots a response spectrum to an image file. The format
// follows the extension (png, svg or pdf); anything else is saved as png.
func ExportSpectrum(s *seismic.Spectrum, title, unit, filename string) error {
	if len(s.Periods) == 0 {
		return fmt.Errorf("spectrum %q has no points", title)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Period (s)"
	p.Y.Label.Text = fmt.Sprintf("Sa (%s)", unit)

	pts := make(plotter.XYs, len(s.Periods))
	for i := range s.Periods {
		pts[i] = plotter.XY{X: s.Periods[i], Y: s.Values[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = curveColor
	p.Add(line)

	// peak
	t, v := s.Max()
	peak, err := plotter.NewScatter(plotter.XYs{{X: t, Y: v}})
	if err != nil {
		return err
	}
	peak.GlyphStyle.Color = markColor
	peak.GlyphStyle.Radius = vg.Points(4)
	peak.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(peak)

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: t, Y: v}},
		Labels: []string{fmt.Sprintf("  %.3f @ %.2fs", v, t)},
	})
	if err != nil {
		return err
	}
	p.Add(lbl)
	p.Y.Min = 0

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// ExportHistory plots an acceleration record
func ExportHistory(h *seismic.History, unit, filename string) error {
	if len(h.Times) == 0 {
		return fmt.Errorf("record %q has no samples", h.Name)
	}
	p := plot.New()
	p.Title.Text = h.Name
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = fmt.Sprintf("Acceleration (%s)", unit)

	pts := make(plotter.XYs, len(h.Times))
	for i := range h.Times {
		pts[i] = plotter.XY{X: h.Times[i], Y: h.Values[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Color = curveColor
	p.Add(line)

	zero, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: h.Duration(), Y: 0}})
	if err != nil {
		return err
	}
	zero.LineStyle.Color = color.Gray{Y: 128}
	zero.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zero)

	return save(p, 10*vg.Inch, 4*vg.Inch, filename)
}

// ExportBackbone plots the force-displacement law of a bearing dof with its
// yield points marked
func ExportBackbone(title string, c bearing.Curve, filename string) error {
	if len(c.Disp) < 2 || len(c.Disp) != len(c.Force) {
		return fmt.Errorf("backbone %q: need matching displacement and force points", title)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Displacement (m)"
	p.Y.Label.Text = "Force (kN)"

	pts := make(plotter.XYs, len(c.Disp))
	for i := range c.Disp {
		pts[i] = plotter.XY{X: c.Disp[i], Y: c.Force[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = curveColor
	p.Add(line)

	marks, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	marks.GlyphStyle.Color = markColor
	marks.GlyphStyle.Radius = vg.Points(3)
	p.Add(marks)

	// axes through the origin
	lo, hi := c.Disp[0], c.Disp[len(c.Disp)-1]
	fmax := 0.0
	for _, f := range c.Force {
		if f > fmax {
			fmax = f
		} else if -f > fmax {
			fmax = -f
		}
	}
	for _, xy := range []plotter.XYs{
		{{X: lo, Y: 0}, {X: hi, Y: 0}},
		{{X: 0, Y: -fmax}, {X: 0, Y: fmax}},
	} {
		axis, err := plotter.NewLine(xy)
		if err != nil {
			return err
		}
		axis.LineStyle.Color = guideColor
		axis.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(axis)
	}

	return save(p, 6*vg.Inch, 6*vg.Inch, filename)
}

func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
