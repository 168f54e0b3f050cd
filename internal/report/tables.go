package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/xuri/excelize/v2"
)

const rule = "───────────────────────────────────────────────────────────────"

// Sheet names of the workbook
const (
	ModalSheet      = "Modal"
	ComparisonSheet = "Comparison"
)

var (
	modalHeader      = []string{"Mode", "Period (s)", "UX", "UY", "UZ", "SumUX", "SumUY", "SumUZ"}
	comparisonHeader = []string{"Pier", "Link", "RS shear (kN)", "TH shear (kN)", "Shear ratio", "RS base (kN)", "TH base (kN)", "Base ratio",
		"RS deform (m)", "TH deform (m)", "Deform ratio"}
)

func at(v []float64, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

func modalRow(r sap.ModalRatios, i int) []float64 {
	return []float64{at(r.UX, i), at(r.UY, i), at(r.UZ, i), at(r.SumUX, i), at(r.SumUY, i), at(r.SumUZ, i)}
}

// WriteModal prints the participating mass ratio table
func WriteModal(w io.Writer, r sap.ModalRatios) error {
	fmt.Fprintln(w, "MODAL PARTICIPATING MASS RATIOS:")
	fmt.Fprintln(w, rule)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, h := range modalHeader {
		fmt.Fprintf(tw, "%s\t", h)
	}
	fmt.Fprintln(tw)
	for i, t := range r.Periods {
		fmt.Fprintf(tw, "%d\t%.4f\t", i+1, t)
		for _, v := range modalRow(r, i) {
			fmt.Fprintf(tw, "%.4f\t", v)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func comparisonRow(c Comparison) []interface{} {
	rs := baseShear(c.Spectrum)
	th := baseShear(c.History)
	return []interface{}{c.Pier, c.History.Link, c.Spectrum.Shear, c.History.Shear, c.ShearRatio(), rs, th, c.ReactionRatio(),
		c.Spectrum.Deform, c.History.Deform, c.DeformRatio()}
}

func baseShear(r PierResult) float64 {
	return math.Hypot(r.F1, r.F2)
}

// WriteComparison prints spectrum against history results per pier
func WriteComparison(w io.Writer, cs []Comparison) error {
	fmt.Fprintln(w, "RESPONSE SPECTRUM vs TIME HISTORY:")
	fmt.Fprintln(w, rule)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, h := range comparisonHeader {
		fmt.Fprintf(tw, "%s\t", h)
	}
	fmt.Fprintln(tw)
	for _, c := range cs {
		row := comparisonRow(c)
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%.3f\t%.1f\t%.1f\t%.3f\t%.4f\t%.4f\t%.3f\t\n", row...)
	}
	return tw.Flush()
}

// ExportXLSX writes the modal table and the comparison table to a workbook.
// Either may be empty.
func ExportXLSX(path string, r sap.ModalRatios, cs []Comparison) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(ModalSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(ComparisonSheet); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if err := setRow(f, ModalSheet, 1, cells(modalHeader)); err != nil {
		return err
	}
	for i, t := range r.Periods {
		row := []interface{}{i + 1, t}
		for _, v := range modalRow(r, i) {
			row = append(row, v)
		}
		if err := setRow(f, ModalSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := setRow(f, ComparisonSheet, 1, cells(comparisonHeader)); err != nil {
		return err
	}
	for i, c := range cs {
		row := comparisonRow(c)
		for k, v := range row {
			if x, ok := v.(float64); ok && math.IsNaN(x) {
				row[k] = ""
			}
		}
		if err := setRow(f, ComparisonSheet, i+2, row); err != nil {
			return err
		}
	}

	if len(cs) > 0 {
		idx, err := f.GetSheetIndex(ComparisonSheet)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
	}
	return f.SaveAs(path)
}

func cells(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
