package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alexiusacademia/gobridge/internal/diagram"
	"github.com/alexiusacademia/gobridge/internal/seismic"
	"github.com/spf13/cobra"
)

var (
	spectrumFile    string
	spectrumDamping float64
	spectrumUnit    string
	spectrumOutput  string
)

var spectrumCmd = &cobra.Command{
	Use:   "spectrum",
	Short: "Inspect a response spectrum file",
	Long: `Read a response spectrum (period, value per line; header lines are
skipped), print its peak and a terminal chart, and optionally export a
plot. The image format follows the output extension (png, svg, pdf).

Examples:
  # Terminal chart only
  gobridge spectrum -f e2.txt

  # Spectrum in cm/s2, exported as svg
  gobridge spectrum -f e2.txt --unit cm/s2 -o e2.svg`,
	Run: runSpectrum,
}

func init() {
	rootCmd.AddCommand(spectrumCmd)

	spectrumCmd.Flags().StringVarP(&spectrumFile, "file", "f", "", "Spectrum file [required]")
	spectrumCmd.Flags().Float64Var(&spectrumDamping, "damping", seismic.DefaultDamping, "Damping ratio of the spectrum")
	spectrumCmd.Flags().StringVar(&spectrumUnit, "unit", "g", "Acceleration unit: g, m/s2, cm/s2")
	spectrumCmd.Flags().StringVarP(&spectrumOutput, "output", "o", "", "Export plot to file")

	spectrumCmd.MarkFlagRequired("file")
}

func runSpectrum(cmd *cobra.Command, args []string) {
	cfg, _, err := settings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	unit, err := seismic.ParseAccelUnit(spectrumUnit)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	s, err := seismic.LoadSpectrum(spectrumFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	name := filepath.Base(spectrumFile)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     RESPONSE SPECTRUM")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	t, v := s.Max()
	fmt.Println("SUMMARY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  File:\t%s\n", name)
	fmt.Fprintf(w, "  Points:\t%d\n", len(s.Periods))
	fmt.Fprintf(w, "  Periods:\t%.3f .. %.3f s\n", s.Periods[0], s.Periods[len(s.Periods)-1])
	fmt.Fprintf(w, "  Damping:\t%.1f %%\n", 100*spectrumDamping)
	fmt.Fprintf(w, "  Peak:\t%.4f %s at T = %.3f s\n", v, unit, t)
	fmt.Fprintf(w, "  Peak (m/s²):\t%.4f\n", v*seismic.Factor(unit, seismic.MS2))
	w.Flush()
	fmt.Println()

	fmt.Println(diagram.ASCIISpectrum(s, name))
	fmt.Println()

	if spectrumOutput != "" {
		path := cfg.Output(spectrumOutput)
		title := fmt.Sprintf("%s (ξ = %.0f%%)", name, 100*spectrumDamping)
		if err := diagram.ExportSpectrum(s, title, string(unit), path); err != nil {
			fmt.Printf("Error exporting plot: %v\n", err)
			return
		}
		fmt.Printf("  Plot exported to: %s\n", path)
		fmt.Println()
	}
}
