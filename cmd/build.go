package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gobridge/internal/bearing"
	"github.com/alexiusacademia/gobridge/internal/bridge"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/sap/memsap"
	"github.com/alexiusacademia/gobridge/internal/seismic"
	"github.com/spf13/cobra"
)

var (
	buildFile      string
	buildScript    string
	buildCoupling  string
	buildCalibrate string
	buildAxial     float64
	buildMu        float64
	buildDy        float64

	// seismic cases
	buildSpectrum string
	buildRecords  string
	buildUnit     string
	buildDamping  float64
	buildVertical float64
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a bridge model from a JSON description",
	Long: `Assemble piers, girders and bearings on the in-memory engine and
report what was created. Every engine verb is recorded and can be
written to a script file for review.

Without --file the five-span reference bridge is built (16 piers,
three girders of five spans each).

Bearing calibration runs after the build:
  multi  - multi-linear elastic curve (+-du, +-dy, 0)
  wen    - plastic-Wen with k = N*mu/dy

Examples:
  # Reference bridge with the recorded verbs
  gobridge build --script build.txt

  # Description file, body constraints, plastic-Wen bearings at N = 2500 kN
  gobridge build -f bridge.json --coupling body --calibrate wen --axial 2500

  # Spectrum case (U1 plus 0.65 U3, SRSS) and averaged time histories
  gobridge build --spectrum e2.txt --records e2.dat --unit g`,
	Run: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildFile, "file", "f", "", "Bridge description (JSON)")
	buildCmd.Flags().StringVar(&buildScript, "script", "", "Write the recorded engine verbs to this file")
	buildCmd.Flags().StringVar(&buildCoupling, "coupling", "", "Coupling mode: frame, body or equal (overrides description and BRIDGE_COUPLING)")

	buildCmd.Flags().StringVar(&buildCalibrate, "calibrate", "", "Calibrate bearings: multi or wen")
	buildCmd.Flags().Float64Var(&buildAxial, "axial", 0, "Bearing axial force N (kN), replaces the dead-load lookup")
	buildCmd.Flags().Float64Var(&buildMu, "mu", bearing.DefaultMu, "Friction coefficient")
	buildCmd.Flags().Float64Var(&buildDy, "dy", bearing.DefaultDy, "Yield displacement (m)")

	buildCmd.Flags().StringVar(&buildSpectrum, "spectrum", "", "Response spectrum file (period, value)")
	buildCmd.Flags().StringVar(&buildRecords, "records", "", "DAT file of acceleration records")
	buildCmd.Flags().StringVar(&buildUnit, "unit", "g", "Acceleration unit of spectrum and records: g, m/s2, cm/s2")
	buildCmd.Flags().Float64Var(&buildDamping, "damping", seismic.DefaultDamping, "Modal damping ratio")
	buildCmd.Flags().Float64Var(&buildVertical, "vertical", seismic.DefaultVertical, "Scale of the vertical (U3) excitation")
}

func calibrationKind(s string) (bearing.Kind, error) {
	switch strings.ToLower(s) {
	case "multi", "multielastic":
		return bearing.MultiElastic, nil
	case "wen", "plasticwen":
		return bearing.PlasticWen, nil
	}
	return bearing.ParseKind(s)
}

func runBuild(cmd *cobra.Command, args []string) {
	cfg, log, err := settings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	desc := bridge.FiveSpanScenario()
	if buildFile != "" {
		if desc, err = bridge.LoadFromFile(buildFile); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}
	switch {
	case buildCoupling != "":
		desc.Coupling = buildCoupling
	case desc.Coupling == "":
		desc.Coupling = string(cfg.Coupling)
	}
	if desc.SpringFile == "" {
		desc.SpringFile = cfg.SpringFile
	}

	e := memsap.New()
	m := sap.NewModel(e, log)
	cfg.Apply(m)
	m.DefaultPath = cfg.Output(cfg.ModelPath)

	b := bridge.New(m, desc)
	buildErr := b.Build()

	cases, caseErr := defineSeismic(m)

	var calErr error
	if buildCalibrate != "" {
		kind, err := calibrationKind(buildCalibrate)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		o := bearing.Options{Mu: buildMu, Dy: buildDy}
		if cmd.Flags().Changed("axial") {
			o.Axial = bearing.Float(buildAxial)
		}
		calErr = b.Calibrate(kind, o)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     BRIDGE MODEL - %s\n", strings.ToUpper(desc.Name))
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("DESCRIPTION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Piers:\t%d\n", len(desc.Piers))
	fmt.Fprintf(w, "  Girders:\t%d\n", len(desc.Girders))
	fmt.Fprintf(w, "  Coupling:\t%s\n", desc.Coupling)
	fmt.Fprintf(w, "  Dead case:\t%s\n", m.DeadCase)
	w.Flush()
	fmt.Println()

	st := e.Stats()
	fmt.Println("MODEL OBJECTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Points:\t%d\n", st.Points)
	fmt.Fprintf(w, "  Frames:\t%d\n", st.Frames)
	fmt.Fprintf(w, "  Links:\t%d\n", st.Links)
	fmt.Fprintf(w, "  Frame sections:\t%d\n", st.Sections)
	fmt.Fprintf(w, "  Link properties:\t%d\n", st.LinkProps)
	fmt.Fprintf(w, "  Constraints:\t%d\n", st.Constraints)
	fmt.Fprintf(w, "  Groups:\t%d\n", st.Groups)
	fmt.Fprintf(w, "  Load cases:\t%d\n", st.Cases)
	fmt.Fprintf(w, "  Combinations:\t%d\n", st.Combos)
	w.Flush()
	fmt.Println()

	fmt.Println("GIRDERS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name\tPlan\tPiers\tFixed\tBearings\n")
	for i, g := range b.Girders {
		gs := desc.Girders[i]
		fmt.Fprintf(w, "  %s\t%s\t%s .. %s\t%s\t%d\n", g.Name, gs.Plan, gs.Piers[0], gs.Piers[len(gs.Piers)-1],
			strings.Join(gs.Fixed, ","), len(g.Bearings()))
	}
	w.Flush()
	fmt.Println()

	if len(cases) > 0 {
		fmt.Println("SEISMIC CASES:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		for _, c := range cases {
			fmt.Printf("  %s\n", c)
		}
		fmt.Println()
	}

	if buildCalibrate != "" {
		fmt.Println("BEARING CALIBRATION:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, br := range b.Bearings() {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", br.Name, br.Prop.Kind, br.Prop.Name)
		}
		w.Flush()
		fmt.Println()
	}

	fmt.Println("STATUS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	status := []struct {
		step string
		err  error
	}{
		{"Assembly", buildErr},
		{"Seismic cases", caseErr},
		{"Calibration", calErr},
	}
	for _, s := range status {
		if s.err != nil {
			fmt.Printf("  %s: ⚠ %v\n", s.step, s.err)
		} else {
			fmt.Printf("  %s: ✓\n", s.step)
		}
	}
	fmt.Println()

	if buildScript != "" {
		path := cfg.Output(buildScript)
		f, err := os.Create(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer f.Close()
		if err := e.WriteScript(f); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("  %d engine calls written to %s\n", len(e.Script()), path)
		fmt.Println()
	}
}

// defineSeismic defines the gravity and modal cases, and the spectrum and
// record cases when their files are given
func defineSeismic(m *sap.Model) ([]string, error) {
	if err := seismic.DefineDead(m); err != nil {
		return nil, err
	}
	if err := seismic.DefineModal(m, seismic.DefaultModalCase, seismic.DefaultMaxModes); err != nil {
		return nil, err
	}
	cases := []string{m.DeadCase, seismic.DefaultModalCase}
	if buildSpectrum == "" && buildRecords == "" {
		return cases, nil
	}

	unit, err := seismic.ParseAccelUnit(buildUnit)
	if err != nil {
		return cases, err
	}
	xs := seismic.Longitudinal("", unit, buildVertical)

	if buildSpectrum != "" {
		s, err := seismic.LoadSpectrum(buildSpectrum)
		if err != nil {
			return cases, err
		}
		if err := seismic.DefineSpectrumFunction(m, "E2Spectrum", s, buildDamping); err != nil {
			return cases, err
		}
		xs = seismic.Longitudinal("E2Spectrum", unit, buildVertical)
		if err := seismic.DefineSpectrumCase(m, "E2X", seismic.DefaultModalCase, xs, sap.SRSS, buildDamping); err != nil {
			return cases, err
		}
		cases = append(cases, "E2X")
		design, err := seismic.DefineDesign(m, "E2X", false)
		cases = append(cases, design...)
		if err != nil {
			return cases, err
		}
	}

	if buildRecords != "" {
		recs, err := seismic.LoadDAT(buildRecords, "W")
		if err != nil {
			return cases, err
		}
		names, err := seismic.DefineRecords(m, "E2X", seismic.DefaultModalCase, recs, xs, buildDamping)
		cases = append(cases, names...)
		if err != nil {
			return cases, err
		}
		if err := seismic.AverageCombo(m, "E2X_TH", names); err != nil {
			return cases, err
		}
		cases = append(cases, "E2X_TH (average)")
		design, err := seismic.DefineDesign(m, "E2X_TH", true)
		cases = append(cases, design...)
		if err != nil {
			return cases, err
		}
	}
	return cases, nil
}
