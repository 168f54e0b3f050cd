package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gobridge/internal/bearing"
	"github.com/alexiusacademia/gobridge/internal/diagram"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/sap/memsap"
	"github.com/spf13/cobra"
)

var (
	bearingAxial  float64
	bearingMu     float64
	bearingDy     float64
	bearingDu     float64
	bearingRatio  float64
	bearingPost   float64
	bearingExp    float64
	bearingKind   string
	bearingOutput string
)

var bearingCmd = &cobra.Command{
	Use:   "bearing",
	Short: "Calibration numbers of a sliding bearing",
	Long: `Compute the friction yield force and the nonlinear link parameters of
a sliding bearing carrying a dead-load axial force N:

  Fy = N * mu
  k  = Fy / dy           (plastic-Wen initial stiffness)
  Ke = k * 0.1           (effective linear stiffness)

The multi-linear elastic law is the symmetric curve through
(-du, -Fy), (-dy, -Fy), (0, 0), (dy, Fy), (du, Fy).

Examples:
  # Plastic-Wen bearing under 2500 kN with 5% post-yield ratio
  gobridge bearing --axial 2500 --ratio 0.05

  # Multi-linear backbone exported as png
  gobridge bearing --axial 2500 --kind multi -o backbone.png`,
	Run: runBearing,
}

func init() {
	rootCmd.AddCommand(bearingCmd)

	bearingCmd.Flags().Float64VarP(&bearingAxial, "axial", "n", 0, "Dead-load axial force N (kN) [required]")
	bearingCmd.Flags().Float64Var(&bearingMu, "mu", bearing.DefaultMu, "Friction coefficient")
	bearingCmd.Flags().Float64Var(&bearingDy, "dy", bearing.DefaultDy, "Yield displacement (m)")
	bearingCmd.Flags().Float64Var(&bearingDu, "du", bearing.DefaultDu, "Ultimate displacement (m)")
	bearingCmd.Flags().Float64Var(&bearingRatio, "ratio", 0, "Post-yield stiffness ratio")
	bearingCmd.Flags().Float64Var(&bearingPost, "post", 0, "Post-yield stiffness (kN/m), used when --ratio is not given")
	bearingCmd.Flags().Float64Var(&bearingExp, "exp", bearing.MinExp, "Yielding exponent")
	bearingCmd.Flags().StringVar(&bearingKind, "kind", "wen", "Variant: wen or multi")
	bearingCmd.Flags().StringVarP(&bearingOutput, "output", "o", "", "Export backbone plot to file")

	bearingCmd.MarkFlagRequired("axial")
}

func runBearing(cmd *cobra.Command, args []string) {
	cfg, log, err := settings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	kind, err := calibrationKind(bearingKind)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	o := bearing.Options{
		Mu:    bearingMu,
		Dy:    bearingDy,
		Du:    bearingDu,
		Exp:   bearingExp,
		Axial: bearing.Float(bearingAxial),
	}
	if cmd.Flags().Changed("ratio") {
		o.Ratio = bearing.Float(bearingRatio)
	} else if cmd.Flags().Changed("post") {
		o.PostStiffness = bearing.Float(bearingPost)
	}

	m := sap.NewModel(memsap.New(), log)
	ideal, err := bearing.Ideal(bearing.BothSliding)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	b := bearing.New("Bearing", "I", "J", ideal)

	var (
		p     *bearing.Prop
		curve bearing.Curve
	)
	switch kind {
	case bearing.MultiElastic:
		if p, err = b.ToMultiElastic(m, o); err == nil {
			curve = p.Curves[sap.U2]
		}
	case bearing.PlasticWen:
		if p, err = b.ToPlasticWen(m, o); err == nil {
			curve = p.Wen[sap.U2].Backbone(bearingDu)
		}
	default:
		err = fmt.Errorf("%w: nothing to calibrate for %s", sap.ErrUnsupported, kind)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     SLIDING BEARING CALIBRATION - %s\n", kind)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Axial force (N):\t%.1f kN\n", bearingAxial)
	fmt.Fprintf(w, "  Friction (μ):\t%.3f\n", bearingMu)
	fmt.Fprintf(w, "  Yield displacement (dy):\t%.4f m\n", bearingDy)
	if kind == bearing.MultiElastic {
		fmt.Fprintf(w, "  Ultimate displacement (du):\t%.4f m\n", bearingDu)
	}
	w.Flush()
	fmt.Println()

	fy := bearingMu * bearingAxial
	if fy < 0 {
		fy = -fy
	}
	fmt.Println("LINK PARAMETERS (U2, U3):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Yield force (Fy):\t%.2f kN\n", fy)
	switch kind {
	case bearing.PlasticWen:
		wen := p.Wen[sap.U2]
		fmt.Fprintf(w, "  Initial stiffness (k):\t%.1f kN/m\n", wen.K)
		fmt.Fprintf(w, "  Effective stiffness (Ke):\t%.1f kN/m\n", p.Ke[sap.U2])
		fmt.Fprintf(w, "  Post-yield ratio:\t%.4f\n", wen.Ratio)
		fmt.Fprintf(w, "  Post-yield stiffness:\t%.1f kN/m\n", wen.Ratio*wen.K)
		fmt.Fprintf(w, "  Yielding exponent:\t%.1f\n", wen.Exp)
	case bearing.MultiElastic:
		for i := range curve.Disp {
			fmt.Fprintf(w, "  Point %d:\t%+.4f m\t%+.2f kN\n", i+1, curve.Disp[i], curve.Force[i])
		}
	}
	w.Flush()
	fmt.Println()

	fmt.Println(diagram.ASCIIBackbone(curve, p.Name))
	fmt.Println()

	if bearingOutput != "" {
		path := cfg.Output(bearingOutput)
		if err := diagram.ExportBackbone(p.Name, curve, path); err != nil {
			fmt.Printf("Error exporting plot: %v\n", err)
			return
		}
		fmt.Printf("  Plot exported to: %s\n", path)
		fmt.Println()
	}
}
