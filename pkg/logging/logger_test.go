package logging

import (
	"os"
	"strings"
	"testing"
)

func TestLoggerWritesToFile(t *testing.T) {
	t.Setenv(EnvLogDir, t.TempDir())

	logger, err := New("test-component")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer logger.Close()

	logger.Infof("hello %s", "world")
	logger.Warnf("degraded")

	if logger.LogPath() == "" {
		t.Fatal("expected a log file path")
	}

	data, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "[test-component] [INFO] hello world") {
		t.Errorf("missing info entry in log output: %q", content)
	}
	if !strings.Contains(content, "[WARN] degraded") {
		t.Errorf("missing warn entry in log output: %q", content)
	}
}

func TestRunIDStable(t *testing.T) {
	if RunID() != RunID() {
		t.Error("RunID should be stable within a process")
	}
	if RunID() == "" {
		t.Error("RunID should not be empty")
	}
}
