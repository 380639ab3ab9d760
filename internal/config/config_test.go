package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := "endpoint: http://food.local:9000\nserver:\n  allowed_origins:\n    - https://savour.example.com\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if cfg.Endpoint != "http://food.local:9000" {
		t.Errorf("unexpected endpoint %s", cfg.Endpoint)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("expected default port, got %s", cfg.Server.Port)
	}
	if cfg.Server.Model != DefaultModel {
		t.Errorf("expected default model, got %s", cfg.Server.Model)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://savour.example.com" {
		t.Errorf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("endpoint: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Verbose = true
	cfg.StartDir = "/srv/photos"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Verbose || got.StartDir != "/srv/photos" || got.Endpoint != DefaultEndpoint {
		t.Errorf("unexpected config after reload: %+v", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# SavourSAGE configuration") {
		t.Errorf("expected commented header, got:\n%s", data)
	}
}

func TestLogPath(t *testing.T) {
	cfg := Default()
	if got := cfg.LogPath("/cfg"); got != filepath.Join("/cfg", "savour.log") {
		t.Errorf("unexpected default log path %s", got)
	}

	cfg.LogFile = "/tmp/custom.log"
	if got := cfg.LogPath("/cfg"); got != "/tmp/custom.log" {
		t.Errorf("unexpected log path %s", got)
	}
}

func TestPickerDir(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.StartDir = dir
	if got := cfg.PickerDir(); got != dir {
		t.Errorf("expected %s, got %s", dir, got)
	}

	cfg.StartDir = filepath.Join(dir, "does-not-exist")
	if got := cfg.PickerDir(); got == cfg.StartDir {
		t.Error("missing start dir must fall back")
	}
}

func TestPickerDirExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.Mkdir(filepath.Join(home, "Pictures"), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.StartDir = "~/Pictures"
	if got, want := cfg.PickerDir(), filepath.Join(home, "Pictures"); got != want {
		t.Errorf("PickerDir() = %s, want %s", got, want)
	}

	cfg.StartDir = "~"
	if got := cfg.PickerDir(); got != home {
		t.Errorf("PickerDir() = %s, want %s", got, home)
	}
}
