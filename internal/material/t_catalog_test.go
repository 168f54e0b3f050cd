package material

import (
	"errors"
	"testing"

	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/sap/memsap"
	"github.com/cpmech/gosl/chk"
)

func Test_catalog01(tst *testing.T) {

	chk.PrintTitle("catalog01. ensure common materials")

	e := memsap.New()
	m := sap.NewModel(e, nil)

	if err := EnsureAll(m); err != nil {
		tst.Errorf("ensure all: %v", err)
		return
	}
	names, _ := e.MaterialNames()
	for _, want := range []string{"C40", "C50", "Q345"} {
		if !sap.Contains(names, want) {
			tst.Errorf("material %s should be defined", want)
		}
	}

	// second call emits nothing
	n := e.Calls("PropMaterial.AddMaterial")
	EnsureAll(m)
	chk.Int(tst, "no duplicates", e.Calls("PropMaterial.AddMaterial"), n)

	err := Ensure(m, "Unobtainium")
	if !errors.Is(err, sap.ErrDataMissing) {
		tst.Errorf("unknown material should report missing data, got %v", err)
	}

	// engine defaults are accepted as they are
	if err := Ensure(m, "4000Psi"); err != nil {
		tst.Errorf("engine default: %v", err)
	}
}
