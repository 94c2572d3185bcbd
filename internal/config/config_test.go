package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CARDFRIENDS_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Endpoint != "https://reqres.in/api/users" {
		t.Fatalf("endpoint = %q", cfg.API.Endpoint)
	}
	if cfg.API.Timeout != 0 {
		t.Fatalf("timeout = %v, want 0", cfg.API.Timeout)
	}
	if cfg.UI.StartScreen != ScreenArticle {
		t.Fatalf("start screen = %q", cfg.UI.StartScreen)
	}
	if !strings.HasPrefix(cfg.Log.Path, home) {
		t.Fatalf("log path %q should live under %q", cfg.Log.Path, home)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[api]
endpoint = "http://127.0.0.1:8089/api/users"
timeout = "5s"

[ui]
start_screen = "facebook"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", dir)
	t.Setenv("CARDFRIENDS_CONFIG", path)
	t.Setenv("CARDFRIENDS_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Endpoint != "http://127.0.0.1:8089/api/users" {
		t.Fatalf("endpoint = %q", cfg.API.Endpoint)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.UI.StartScreen != ScreenFacebook {
		t.Fatalf("start screen = %q", cfg.UI.StartScreen)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q, want env override", cfg.Log.Level)
	}
}

func TestLoadRejectsUnknownScreen(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CARDFRIENDS_CONFIG", "")
	t.Setenv("CARDFRIENDS_UI_START_SCREEN", "settings")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown start screen")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CARDFRIENDS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "nested", "config.toml")
	t.Setenv("CARDFRIENDS_CONFIG", path)

	want := Config{
		API:     APIConfig{Endpoint: "http://localhost:9000/users", Timeout: 3 * time.Second},
		Log:     LogConfig{Path: filepath.Join(dir, "app.log"), Level: "warn"},
		Fixture: FixtureConfig{Addr: "127.0.0.1:9000"},
		UI:      UIConfig{StartScreen: ScreenFacebook},
	}
	if err := Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}
