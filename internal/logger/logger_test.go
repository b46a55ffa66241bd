package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pmesh.log")
	var console bytes.Buffer
	log, err := New("debug", DefaultFileConfig(path), &console)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("exported", zap.String("part", "Nut M3"), zap.Int("faces", 8))
	log.Debug("detail")
	log.Sync()

	if !strings.Contains(console.String(), "exported") || !strings.Contains(console.String(), "Nut M3") {
		t.Errorf("console output %q", console.String())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 file lines, got %d", len(lines))
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["part"] != "Nut M3" || entry["msg"] != "exported" {
		t.Errorf("file entry %v", entry)
	}
}

func TestLevel(t *testing.T) {
	var console bytes.Buffer
	log, err := New("WARN", FileConfig{}, &console)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hidden")
	log.Warn("shown")
	if s := console.String(); strings.Contains(s, "hidden") || !strings.Contains(s, "shown") {
		t.Errorf("console output %q", s)
	}
	if _, err := New("loud", FileConfig{}, nil); err == nil {
		t.Error("want error for unknown level")
	}
}

func TestNop(t *testing.T) {
	log, err := New("info", FileConfig{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if log.Core().Enabled(zap.ErrorLevel) {
		t.Error("logger without outputs should be a no-op")
	}
}
