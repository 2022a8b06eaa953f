package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Classifier: ClassifierConfig{Model: "gpt-4o-mini"},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingClassifierModel(t *testing.T) {
	cfg := validConfig()
	cfg.Classifier.Model = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing classifier model")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Search.TextPageSize != 6 {
		t.Errorf("expected TextPageSize=6, got %d", cfg.Search.TextPageSize)
	}
	if cfg.Search.ImagePageSize != 10 {
		t.Errorf("expected ImagePageSize=10, got %d", cfg.Search.ImagePageSize)
	}
	if cfg.Search.MaxDistanceKm != 50 {
		t.Errorf("expected MaxDistanceKm=50, got %g", cfg.Search.MaxDistanceKm)
	}
	if cfg.Search.MaxImageBytes != 10<<20 {
		t.Errorf("expected MaxImageBytes=10MiB, got %d", cfg.Search.MaxImageBytes)
	}
	if cfg.Storage.KeyPrefix != "dishcovery:" {
		t.Errorf("expected KeyPrefix='dishcovery:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Search:   SearchConfig{TextPageSize: 12, ImagePageSize: 24, MaxDistanceKm: 5, MaxImageBytes: 1 << 20},
		Storage:  StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Search.TextPageSize != 12 {
		t.Errorf("expected TextPageSize=12, got %d", cfg.Search.TextPageSize)
	}
	if cfg.Search.MaxDistanceKm != 5 {
		t.Errorf("expected MaxDistanceKm=5, got %g", cfg.Search.MaxDistanceKm)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	raw := `
http:
  port: 8080
database:
  addrs: ["${DISHCOVERY_TEST_DB_ADDR:-localhost:6379}"]
classifier:
  model: "${DISHCOVERY_TEST_MODEL}"
`
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DISHCOVERY_TEST_MODEL", "gpt-4o-mini")

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Addrs[0] != "localhost:6379" {
		t.Errorf("addrs = %v, want default expansion", cfg.Database.Addrs)
	}
	if cfg.Classifier.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want env expansion", cfg.Classifier.Model)
	}
}
