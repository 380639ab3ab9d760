package cmd

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/savour/internal/config"
	"github.com/f3rmion/savour/internal/form"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flag values outlive a single Execute.
	rootCmd.PersistentFlags().Set("endpoint", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writePhoto(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "apple.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze_food" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing form: %v", err)
			return
		}
		if got := r.FormValue("language"); got != "fr" {
			t.Errorf("expected language fr, got %q", got)
		}
		w.Write([]byte(`{"response":"Pomme: 95 kcal"}`))
	}))
	defer srv.Close()

	out, err := execute(t, "analyze", writePhoto(t), "--language", "fr", "--endpoint", srv.URL, "--config", t.TempDir())
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if strings.TrimSpace(out) != "Pomme: 95 kcal" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestAnalyzeCommandFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"error","error":"quota"}`))
	}))
	defer srv.Close()

	out, err := execute(t, "analyze", writePhoto(t), "--language", "en", "--endpoint", srv.URL, "--config", t.TempDir())
	if !errors.Is(err, errAnalysisFailed) {
		t.Fatalf("expected analysis failure, got %v", err)
	}
	if strings.TrimSpace(out) != form.FallbackText {
		t.Errorf("expected fallback text, got %q", out)
	}
}

func TestAnalyzeCommandUnknownLanguage(t *testing.T) {
	_, err := execute(t, "analyze", writePhoto(t), "--language", "xx", "--config", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "unknown language") {
		t.Fatalf("expected unknown language error, got %v", err)
	}
}

func TestLanguagesCommand(t *testing.T) {
	out, err := execute(t, "languages")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"en   English (default)", "es   Spanish", "zh   Chinese"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "savour")

	if _, err := execute(t, "init", "--config", dir); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	cfg, err := config.LoadDir(dir)
	if err != nil {
		t.Fatalf("loading generated config: %v", err)
	}
	if cfg.Endpoint != config.DefaultEndpoint || cfg.Server.Port != config.DefaultPort {
		t.Errorf("unexpected generated config %+v", cfg)
	}

	if _, err := execute(t, "init", "--config", dir); err == nil {
		t.Error("expected error when config exists")
	}
	if _, err := execute(t, "init", "--config", dir, "--force", "--endpoint", "http://food.example:9000"); err != nil {
		t.Fatalf("expected --force to overwrite: %v", err)
	}
	cfg, err = config.LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Endpoint != "http://food.example:9000" {
		t.Errorf("expected endpoint from flag, got %s", cfg.Endpoint)
	}
}

func TestLoadUserConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Endpoint = "http://food.example:9000"
	cfg.Server.Model = "file-model"
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SAVOUR_SERVER_PORT", "7000")
	cfgFile = dir
	initConfig()
	defer func() { cfgFile = "" }()

	got, err := loadUserConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.Server.Port != "7000" {
		t.Errorf("expected env port 7000, got %s", got.Server.Port)
	}
	if got.Server.Model != "file-model" {
		t.Errorf("expected file model, got %s", got.Server.Model)
	}
}

func TestLoadUserConfigMissingFile(t *testing.T) {
	got, err := loadUserConfig(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Server.Model != config.DefaultModel {
		t.Errorf("expected defaults, got %+v", got)
	}
}
