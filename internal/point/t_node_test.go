package point

import (
	"errors"
	"testing"

	"github.com/alexiusacademia/gobridge/internal/logger"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/sap/memsap"
	"github.com/cpmech/gosl/chk"
)

func Test_node01(tst *testing.T) {

	chk.PrintTitle("node01. idempotent add and round trip")

	var rec logger.Recorder
	log := logger.New(logger.Trace)
	log.SetSink(rec.Sink())
	e := memsap.New()
	m := sap.NewModel(e, log)

	a, err := Add(m, "P1", 90, -10.375, 62.9)
	if err != nil {
		tst.Errorf("add: %v", err)
		return
	}
	x, y, z, _ := e.PointCoord("P1")
	chk.Array(tst, "engine coords", 1e-12, []float64{x, y, z}, []float64{90, -10.375, 62.9})
	if !Exists(m, "P1") || Exists(m, "P2") {
		tst.Errorf("exists predicate is wrong")
	}

	b, _ := Add(m, "P1", 90, -10.375, 62.9)
	chk.String(tst, b.Name, a.Name)
	chk.Int(tst, "single add", e.Calls("PointObj.AddCartesian"), 1)
	chk.Int(tst, "no warning", rec.Count(logger.Warn), 0)

	c, _ := Add(m, "P1", 0, 0, 0)
	chk.Float64(tst, "kept x", 1e-15, c.X, 90)
	chk.Int(tst, "moved point warning", rec.Count(logger.Warn), 1)
}

func Test_node02(tst *testing.T) {

	chk.PrintTitle("node02. masses and restraints")

	e := memsap.New()
	m := sap.NewModel(e, nil)
	n, _ := Add(m, "N", 0, 0, 0)

	n.SetMass(3, sap.Ux, sap.Uy, sap.Uz)
	n.SetMasses([]float64{7}, sap.Ux)
	mass, _ := n.Mass()
	chk.Array(tst, "mass", 1e-15, mass[:], []float64{7, 3, 3, 0, 0, 0})

	err := n.SetMasses([]float64{1, 2}, sap.Rx)
	if !errors.Is(err, sap.ErrContract) {
		tst.Errorf("length mismatch should be a contract violation, got %v", err)
	}

	n.Fix(sap.Ux, sap.Uy, sap.Uz)
	r, _ := e.Restraint("N")
	if r != sap.NewDOFSet(sap.Ux, sap.Uy, sap.Uz) {
		tst.Errorf("restraint mismatch: %v", r)
	}

	other, _ := Add(m, "M", 3, 4, 0)
	chk.Float64(tst, "distance", 1e-15, Distance(n, other), 5)
}
