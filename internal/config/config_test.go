package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horas", "horas.yml")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "sqlite" || cfg.HTTP.Addr != "127.0.0.1:8080" || cfg.Owner != "local" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.HTTP.OwnerHeader != "X-Owner-ID" || cfg.Log.Level != "info" || cfg.Notify {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.File != path {
		t.Errorf("File = %q, want %q", cfg.File, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "owner_header") {
		t.Errorf("written config lacks defaults:\n%s", data)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horas.yml")
	content := `database:
  driver: postgres
  dsn: host=localhost user=horas dbname=horas
owner: maria
timezone: America/Sao_Paulo
notify: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "postgres" || cfg.Owner != "maria" || !cfg.Notify {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.HTTP.Addr != "127.0.0.1:8080" {
		t.Errorf("missing keys should keep defaults, got addr %q", cfg.HTTP.Addr)
	}
}

func TestEnvAndFlagsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horas.yml")
	if err := os.WriteFile(path, []byte("owner: from-file\nlog:\n  level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HORAS_OWNER", "from-env")
	t.Setenv("HORAS_HTTP_ADDR", "0.0.0.0:9000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	flags.String("owner", "", "")
	if err := flags.Parse([]string{"--log-level=debug"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Owner != "from-env" {
		t.Errorf("Owner = %q, want env value", cfg.Owner)
	}
	if cfg.HTTP.Addr != "0.0.0.0:9000" {
		t.Errorf("HTTP.Addr = %q, want env value", cfg.HTTP.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want flag value", cfg.Log.Level)
	}
}

func TestLocation(t *testing.T) {
	cfg := &Config{Timezone: "Local"}
	if loc, err := cfg.Location(); err != nil || loc != time.Local {
		t.Errorf("Local = %v, %v", loc, err)
	}

	cfg.Timezone = "UTC"
	if loc, err := cfg.Location(); err != nil || loc.String() != "UTC" {
		t.Errorf("UTC = %v, %v", loc, err)
	}

	cfg.Timezone = "Mars/Olympus"
	if _, err := cfg.Location(); err == nil {
		t.Error("expected error for unknown zone")
	}
}
