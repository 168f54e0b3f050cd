package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/gobridge/internal/logger"
	"github.com/alexiusacademia/gobridge/internal/pier"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/sap/memsap"
	"github.com/cpmech/gosl/chk"
)

func clearEnv(tst *testing.T) {
	for _, k := range []string{KeyModelPath, KeySpringFile, KeyCoupling, KeyLogLevel, KeyOutputDir, KeyDeadCase} {
		tst.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func Test_config01(tst *testing.T) {

	chk.PrintTitle("config01. env file and environment overlay")

	clearEnv(tst)
	dir := tst.TempDir()
	env := filepath.Join(dir, "bridge.env")
	content := "BRIDGE_MODEL_PATH=out/five_span.sdb\n" +
		"BRIDGE_COUPLING=Body\n" +
		"BRIDGE_LOG_LEVEL=warn\n" +
		"BRIDGE_OUTPUT_DIR=results\n" +
		"# comment\n" +
		"BRIDGE_SPRING_FILE=springs.csv\n"
	if err := os.WriteFile(env, []byte(content), 0644); err != nil {
		tst.Fatalf("write: %v", err)
	}

	c, err := Load(env)
	if err != nil {
		tst.Errorf("load: %v", err)
		return
	}
	chk.String(tst, c.ModelPath, "out/five_span.sdb")
	chk.String(tst, string(c.Coupling), string(pier.CouplingBody))
	chk.String(tst, c.SpringFile, "springs.csv")
	chk.String(tst, c.DeadCase, sap.DefaultDeadCase)
	if c.LogLevel != logger.Warn {
		tst.Errorf("log level: got %v", c.LogLevel)
	}
	chk.String(tst, c.Output("summary.xlsx"), filepath.Join("results", "summary.xlsx"))

	tst.Setenv(KeyDeadCase, "SW")
	tst.Setenv(KeyCoupling, "equal")
	c, _ = Load(env)
	chk.String(tst, c.DeadCase, "SW")
	chk.String(tst, string(c.Coupling), string(pier.CouplingEqual))

	m := sap.NewModel(memsap.New(), nil)
	c.Apply(m)
	chk.String(tst, m.DeadCase, "SW")
	chk.String(tst, m.DefaultPath, "out/five_span.sdb")
}

func Test_config02(tst *testing.T) {

	chk.PrintTitle("config02. defaults and bad values")

	clearEnv(tst)
	dir := tst.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		tst.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(wd)

	c, err := Load()
	if err != nil {
		tst.Errorf("missing default file should not fail: %v", err)
	}
	chk.String(tst, string(c.Coupling), string(pier.DefaultCoupling))
	chk.String(tst, c.OutputDir, ".")

	if _, err := Load(filepath.Join(dir, "absent.env")); err == nil {
		tst.Errorf("explicit missing file should fail")
	}

	tst.Setenv(KeyCoupling, "glue")
	if _, err := Load(); !errors.Is(err, sap.ErrContract) {
		tst.Errorf("unknown coupling should be rejected")
	}
}
