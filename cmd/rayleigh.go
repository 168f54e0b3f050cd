package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gobridge/internal/report"
	"github.com/alexiusacademia/gobridge/internal/seismic"
	"github.com/spf13/cobra"
)

var (
	rayleighFile    string
	rayleighFirst   float64
	rayleighSecond  float64
	rayleighDamping float64
	rayleighXLSX    string
)

var rayleighCmd = &cobra.Command{
	Use:   "rayleigh",
	Short: "Select Rayleigh damping periods from a modal table",
	Long: `Read a modal participating mass ratio table (mode, period, UX, UY,
UZ and optionally SumUX, SumUY, SumUZ) and select the two control
periods of each direction:

  first   - first mode whose own mass ratio exceeds --first
  second  - first mode whose cumulative mass ratio exceeds --second

Vertical excitation uses min(second Z period, second Y period).

Examples:
  gobridge rayleigh -f modal.txt

  # Stricter cumulative ratio, table exported to a workbook
  gobridge rayleigh -f modal.txt --second 0.95 --xlsx modal.xlsx`,
	Run: runRayleigh,
}

func init() {
	rootCmd.AddCommand(rayleighCmd)

	rayleighCmd.Flags().StringVarP(&rayleighFile, "file", "f", "", "Modal table file [required]")
	rayleighCmd.Flags().Float64Var(&rayleighFirst, "first", seismic.FirstRatio, "Mass ratio of the first control period")
	rayleighCmd.Flags().Float64Var(&rayleighSecond, "second", seismic.SecondRatio, "Cumulative mass ratio of the second control period")
	rayleighCmd.Flags().Float64Var(&rayleighDamping, "damping", seismic.DefaultDamping, "Damping ratio at both control periods")
	rayleighCmd.Flags().StringVar(&rayleighXLSX, "xlsx", "", "Export the modal table to a workbook")

	rayleighCmd.MarkFlagRequired("file")
}

func runRayleigh(cmd *cobra.Command, args []string) {
	cfg, _, err := settings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	r, err := seismic.LoadModalTable(rayleighFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	ps, selErr := seismic.RayleighPeriods(r, rayleighFirst, rayleighSecond)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     RAYLEIGH DAMPING PERIODS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	report.WriteModal(os.Stdout, r)
	fmt.Println()

	fmt.Println("CONTROL PERIODS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Direction\tMode\tT1 (s)\tMode\tT2 (s)\n")
	for _, dir := range seismic.Directions {
		p, found := ps[dir]
		if !found {
			fmt.Fprintf(w, "  %s\t-\t-\t-\t-\t⚠\n", dir)
			continue
		}
		fmt.Fprintf(w, "  %s\t%d\t%.4f\t%d\t%.4f\n", dir, p.FirstMode, p.First, p.SecondMode, p.Second)
	}
	w.Flush()
	fmt.Println()

	y, okY := ps["Y"]
	z, okZ := ps["Z"]
	if okY && okZ {
		ray := z.Rayleigh(rayleighDamping, rayleighDamping)
		ray.Period2 = seismic.EffectiveZ(y, z)
		fmt.Println("VERTICAL EXCITATION:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Period 1:\t%.4f s\n", ray.Period1)
		fmt.Fprintf(w, "  Period 2 (effective):\t%.4f s\n", ray.Period2)
		fmt.Fprintf(w, "  Damping:\t%.1f %% / %.1f %%\n", 100*ray.Damping1, 100*ray.Damping2)
		w.Flush()
		fmt.Println()
	}

	if selErr != nil {
		fmt.Printf("  ⚠ %v\n", selErr)
		fmt.Println()
	}

	if rayleighXLSX != "" {
		path := cfg.Output(rayleighXLSX)
		if err := report.ExportXLSX(path, r, nil); err != nil {
			fmt.Printf("Error exporting workbook: %v\n", err)
			return
		}
		fmt.Printf("  Modal table exported to: %s\n", path)
		fmt.Println()
	}
}
