package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LayerSpacing != 140 {
		t.Errorf("LayerSpacing = %v, want 140", cfg.LayerSpacing)
	}
	if cfg.NodeSpacing != 60 {
		t.Errorf("NodeSpacing = %v, want 60", cfg.NodeSpacing)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, CacheBackendFile)
	}
	if cfg.Cache.RedisAddr == "" {
		t.Error("Cache.RedisAddr should have a default")
	}
}

func TestLoadConfig_FullFile(t *testing.T) {
	path := writeConfig(t, `
layer_spacing = 200.0
node_spacing = 80.0

[cache]
backend = "redis"
redis_addr = "redis.internal:6380"
redis_db = 2
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.LayerSpacing != 200 {
		t.Errorf("LayerSpacing = %v, want 200", cfg.LayerSpacing)
	}
	if cfg.NodeSpacing != 80 {
		t.Errorf("NodeSpacing = %v, want 80", cfg.NodeSpacing)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("Cache.Backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.RedisAddr != "redis.internal:6380" {
		t.Errorf("Cache.RedisAddr = %q, want redis.internal:6380", cfg.Cache.RedisAddr)
	}
	if cfg.Cache.RedisDB != 2 {
		t.Errorf("Cache.RedisDB = %d, want 2", cfg.Cache.RedisDB)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
layer_spacing = 180.0
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.LayerSpacing != 180 {
		t.Errorf("LayerSpacing = %v, want 180", cfg.LayerSpacing)
	}
	if cfg.NodeSpacing != 60 {
		t.Errorf("NodeSpacing = %v, want default 60", cfg.NodeSpacing)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("Cache.Backend = %q, want default file", cfg.Cache.Backend)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "layer_spacing = [not valid")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}
