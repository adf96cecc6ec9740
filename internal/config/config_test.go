package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, "redis:\n  addr: localhost:6379\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BufferSize != 1<<20 {
		t.Errorf("BufferSize: got %d, want default", cfg.BufferSize)
	}
	if cfg.Format != "rowbinary-with-names-and-types" {
		t.Errorf("Format: got %q", cfg.Format)
	}
	if cfg.LogDir != "logs" {
		t.Errorf("LogDir: got %q", cfg.LogDir)
	}
	if cfg.Redis.KeyColumn != "id" {
		t.Errorf("Redis.KeyColumn: got %q", cfg.Redis.KeyColumn)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr: got %q", cfg.Redis.Addr)
	}
}

func TestLoadHonorsExplicitValues(t *testing.T) {
	path := writeTempConfig(t, `
bufferSize: 4096
format: rowbinary
compression: zstd
logDir: /var/log/rowbinary
redis:
  addr: redis:6380
  password: secret
  db: 2
  keyPrefix: "rows:"
  keyColumn: pk
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BufferSize != 4096 {
		t.Errorf("BufferSize: got %d", cfg.BufferSize)
	}
	if cfg.Format != "rowbinary" {
		t.Errorf("Format: got %q", cfg.Format)
	}
	if cfg.Compression != "zstd" {
		t.Errorf("Compression: got %q", cfg.Compression)
	}
	if cfg.Redis.DB != 2 {
		t.Errorf("Redis.DB: got %d", cfg.Redis.DB)
	}
	if cfg.Redis.KeyPrefix != "rows:" {
		t.Errorf("Redis.KeyPrefix: got %q", cfg.Redis.KeyPrefix)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := writeTempConfig(t, "format: csv\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestLoadRejectsUnknownCompression(t *testing.T) {
	path := writeTempConfig(t, "compression: snappy\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unsupported compression")
	}
}

func TestLoadRejectsTooSmallBufferSize(t *testing.T) {
	path := writeTempConfig(t, "bufferSize: 8\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a buffer size below the minimum")
	}
}

func TestLoadRejectsEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("expected an error for an empty config path")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestConfigDirMatchesFileLocation(t *testing.T) {
	path := writeTempConfig(t, "format: rowbinary\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ConfigDir() != filepath.Dir(path) {
		t.Errorf("ConfigDir: got %q, want %q", cfg.ConfigDir(), filepath.Dir(path))
	}
}

func TestSummaryFallsBackForEmptyFields(t *testing.T) {
	path := writeTempConfig(t, "format: rowbinary\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	summary := cfg.Summary()
	if summary == "" {
		t.Fatal("expected a non-empty summary")
	}
	want := "format=rowbinary compression=none bufferSize=1048576 redis=none"
	if summary != want {
		t.Errorf("Summary: got %q, want %q", summary, want)
	}
}
