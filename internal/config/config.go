// Package config reads the settings shared by every command from .env files
// and the process environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gobridge/internal/logger"
	"github.com/alexiusacademia/gobridge/internal/pier"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/joho/godotenv"
)

// Environment keys
const (
	KeyModelPath  = "BRIDGE_MODEL_PATH"
	KeySpringFile = "BRIDGE_SPRING_FILE"
	KeyCoupling   = "BRIDGE_COUPLING"
	KeyLogLevel   = "BRIDGE_LOG_LEVEL"
	KeyOutputDir  = "BRIDGE_OUTPUT_DIR"
	KeyDeadCase   = "BRIDGE_DEAD_CASE"
)

// DefaultEnvFile is read when Load is called without files
const DefaultEnvFile = ".env"

// Config holds the resolved settings
type Config struct {
	ModelPath  string
	SpringFile string
	Coupling   pier.Coupling
	LogLevel   logger.Level
	OutputDir  string
	DeadCase   string
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		ModelPath: "bridge.sdb",
		Coupling:  pier.DefaultCoupling,
		LogLevel:  logger.Info,
		OutputDir: ".",
		DeadCase:  sap.DefaultDeadCase,
	}
}

// Load reads the given .env files (or DefaultEnvFile if it exists) and
// overlays the process environment, which always wins
func Load(files ...string) (Config, error) {
	vals := map[string]string{}
	if len(files) == 0 {
		m, err := godotenv.Read(DefaultEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Default(), err
		}
		if m != nil {
			vals = m
		}
	} else {
		m, err := godotenv.Read(files...)
		if err != nil {
			return Default(), err
		}
		vals = m
	}
	return resolve(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return vals[key]
	})
}

func resolve(get func(string) string) (Config, error) {
	c := Default()
	if v := get(KeyModelPath); v != "" {
		c.ModelPath = v
	}
	c.SpringFile = get(KeySpringFile)
	cp, err := pier.ParseCoupling(get(KeyCoupling))
	if err != nil {
		return c, err
	}
	c.Coupling = cp
	if v := get(KeyLogLevel); v != "" {
		c.LogLevel = logger.ParseLevel(v)
	}
	if v := get(KeyOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := strings.TrimSpace(get(KeyDeadCase)); v != "" {
		c.DeadCase = v
	}
	return c, nil
}

// Apply sets the dead case and the fallback save path of m
func (c Config) Apply(m *sap.Model) {
	m.DeadCase = c.DeadCase
	m.DefaultPath = c.ModelPath
}

// Output joins name to the output directory
func (c Config) Output(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}
