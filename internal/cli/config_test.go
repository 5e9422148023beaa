package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[render]
formats = ["tiff", "png"]
full_scale = false
preview = false

[server]
addr = ":9090"
overlay_dir = "/srv/overlays"
max_request_bytes = 2048

[cache]
backend = "redis"
dir = "/var/cache/tpat"
namespace = "v1"

[cache.redis]
addr = "redis:6379"
password = "secret"
db = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if len(cfg.Render.Formats) != 2 || cfg.Render.Formats[0] != "tiff" || cfg.Render.Formats[1] != "png" {
		t.Errorf("Render.Formats = %v, want [tiff png]", cfg.Render.Formats)
	}
	if cfg.Render.FullScale == nil || *cfg.Render.FullScale {
		t.Error("Render.FullScale should be set false")
	}
	if cfg.Render.Preview == nil || *cfg.Render.Preview {
		t.Error("Render.Preview should be set false")
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.Server.OverlayDir != "/srv/overlays" {
		t.Errorf("Server.OverlayDir = %q, want %q", cfg.Server.OverlayDir, "/srv/overlays")
	}
	if cfg.Server.MaxRequestBytes != 2048 {
		t.Errorf("Server.MaxRequestBytes = %d, want 2048", cfg.Server.MaxRequestBytes)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "redis")
	}
	if cfg.Cache.Dir != "/var/cache/tpat" {
		t.Errorf("Cache.Dir = %q, want %q", cfg.Cache.Dir, "/var/cache/tpat")
	}
	if cfg.Cache.Namespace != "v1" {
		t.Errorf("Cache.Namespace = %q, want %q", cfg.Cache.Namespace, "v1")
	}
	if cfg.Cache.Redis.Addr != "redis:6379" {
		t.Errorf("Cache.Redis.Addr = %q, want %q", cfg.Cache.Redis.Addr, "redis:6379")
	}
	if cfg.Cache.Redis.Password != "secret" {
		t.Errorf("Cache.Redis.Password = %q, want %q", cfg.Cache.Redis.Password, "secret")
	}
	if cfg.Cache.Redis.DB != 2 {
		t.Errorf("Cache.Redis.DB = %d, want 2", cfg.Cache.Redis.DB)
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("explicitly named missing config should error")
	}
}

func TestLoadConfigDefaultMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig with no default file: %v", err)
	}
	if cfg.Server.Addr != "" || cfg.Cache.Backend != "" || cfg.Render.Preview != nil {
		t.Error("missing default config should yield a zero config")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\naddr = 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Fatal("malformed TOML should error")
	}
}

func TestDefaultConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := defaultConfigPath()
	if err != nil {
		t.Fatalf("defaultConfigPath: %v", err)
	}
	want := filepath.Join("/tmp/xdg", appName, "config.toml")
	if path != want {
		t.Errorf("defaultConfigPath = %q, want %q", path, want)
	}
}
