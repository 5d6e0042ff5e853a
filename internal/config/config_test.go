package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json5"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Admin.Addr() != "127.0.0.1:3000" {
		t.Errorf("addr = %q", cfg.Admin.Addr())
	}
	if cfg.Plugins.Dir != "plugins" || cfg.Driver.Name != "ricq" {
		t.Errorf("defaults: %+v", cfg)
	}
}

func TestLoadJSON5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pbgate.json5")
	content := `{
  // comments are allowed
  admin: { host: "0.0.0.0", port: 8800 },
  plugins: { dir: "/var/lib/pbgate/plugins" },
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Admin.Host != "0.0.0.0" || cfg.Admin.Port != 8800 {
		t.Errorf("admin: %+v", cfg.Admin)
	}
	if cfg.Plugins.Dir != "/var/lib/pbgate/plugins" {
		t.Errorf("plugins dir = %q", cfg.Plugins.Dir)
	}
	// Untouched sections keep their defaults.
	if cfg.Media.VideoCacheDir != "video" {
		t.Errorf("video cache dir = %q", cfg.Media.VideoCacheDir)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json5")
	if err := os.WriteFile(path, []byte("{admin:"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("want parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PBGATE_ADMIN_PORT", "9100")
	t.Setenv("PBGATE_DRIVER", "mock")
	t.Setenv("PBGATE_DEVICE_SEED", "42")
	t.Setenv("PBGATE_OTLP_ENDPOINT", "collector:4318")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json5"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Admin.Port != 9100 {
		t.Errorf("port = %d", cfg.Admin.Port)
	}
	if cfg.Driver.Name != "mock" || cfg.Driver.DeviceSeed != 42 {
		t.Errorf("driver: %+v", cfg.Driver)
	}
	if cfg.Tracing.OTLPEndpoint != "collector:4318" {
		t.Errorf("otlp endpoint = %q", cfg.Tracing.OTLPEndpoint)
	}
}
