package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jask/cardfriends/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, err := New(config.LogConfig{Path: path, Level: "info"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Debug("hidden")
	log.Info("hello")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Fatalf("log missing info line: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered at info: %s", out)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Path: filepath.Join(t.TempDir(), "x.log"), Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
