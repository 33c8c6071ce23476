package thor

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
)

func TestEngineConfigDefaults(t *testing.T) {
	os.Unsetenv("THOR_CONFIG")
	cfgLoaded = false
	defer func() { cfgLoaded = false }()
	cfg := engineConfig()
	if cfg.MaxKeplerIterations != 100 || cfg.KeplerTolerance != 1e-15 {
		t.Fatalf("kepler defaults wrong: %+v", cfg)
	}
	if cfg.Workers != runtime.NumCPU() || cfg.ParallelThreshold != 256 {
		t.Fatalf("batch defaults wrong: %+v", cfg)
	}
	if !cfgLoaded {
		t.Fatal("config must be marked loaded")
	}
	if engineConfig() != cfg {
		t.Fatal("config must be stable across calls")
	}
}

func TestEngineConfigOverride(t *testing.T) {
	cfgLoaded = true
	config = _thorconfig{MaxKeplerIterations: 12, KeplerTolerance: 1e-9, Workers: 3, ParallelThreshold: 7}
	defer func() { cfgLoaded = false }()
	cfg := engineConfig()
	if cfg.MaxKeplerIterations != 12 || cfg.KeplerTolerance != 1e-9 || cfg.Workers != 3 || cfg.ParallelThreshold != 7 {
		t.Fatalf("override ignored: %+v", cfg)
	}
}

func TestEngineConfigFile(t *testing.T) {
	dir := t.TempDir()
	conf := []byte("[kepler]\nmax_iterations = 50\ntolerance = 1e-13\n\n[batch]\nworkers = 2\nthreshold = 10\n")
	if err := os.WriteFile(filepath.Join(dir, "conf.toml"), conf, 0o644); err != nil {
		t.Fatal(err)
	}
	os.Setenv("THOR_CONFIG", dir)
	cfgLoaded = false
	defer func() {
		os.Unsetenv("THOR_CONFIG")
		viper.Reset()
		cfgLoaded = false
	}()
	cfg := engineConfig()
	if cfg.MaxKeplerIterations != 50 || cfg.KeplerTolerance != 1e-13 {
		t.Fatalf("kepler settings not read: %+v", cfg)
	}
	if cfg.Workers != 2 || cfg.ParallelThreshold != 10 {
		t.Fatalf("batch settings not read: %+v", cfg)
	}
}
