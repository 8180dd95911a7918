package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// resetLogging points the package at a temp log directory and clears the
// run-scoped globals, restoring everything when the test ends.
func resetLogging(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	origLogDir, origInitErr := logDir, initErr
	origRunID := runID

	logDir = tempDir
	initErr = nil
	initOnce = sync.Once{}
	// Consume the once so initLogDirectory keeps the temp dir.
	initOnce.Do(func() {})
	runID = ""
	runIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir = origLogDir
		initErr = origInitErr
		// sync.Once values cannot be copied, so rebuild the consumed state:
		// the original once was spent iff it left a result behind.
		initOnce = sync.Once{}
		if origLogDir != "" || origInitErr != nil {
			initOnce.Do(func() {})
		}
		runID = origRunID
		runIDOnce = sync.Once{}
		if origRunID != "" {
			runIDOnce.Do(func() {})
		}
	})
	return tempDir
}

func readLog(t *testing.T, logger *Logger) string {
	t.Helper()
	content, err := os.ReadFile(logger.logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewLoggerCreatesLogFile(t *testing.T) {
	resetLogging(t)

	logger, err := NewLogger("session-manager")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer logger.Close()

	if logger.component != "session-manager" {
		t.Errorf("component = %q, want session-manager", logger.component)
	}
	if logger.runID == "" {
		t.Error("run ID should be assigned on first logger")
	}
	if _, err := os.Stat(logger.logPath); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestLogLevelsAndComponentTag(t *testing.T) {
	resetLogging(t)

	logger, err := NewLogger("reclaimer")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer logger.Close()

	logger.Debugf("tick %d", 1)
	logger.Infof("reaped %d sessions", 2)
	logger.Warnf("session busy, skipped")
	logger.Errorf("engine gone")
	logger.Printf("plain line")

	content := readLog(t, logger)
	for _, want := range []string{
		"[reclaimer] [DEBUG] tick 1",
		"[reclaimer] [INFO] reaped 2 sessions",
		"[reclaimer] [WARN] session busy, skipped",
		"[reclaimer] [ERROR] engine gone",
		"[reclaimer] [INFO] plain line",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("log missing %q\ngot:\n%s", want, content)
		}
	}
}

func TestComponentsShareOneRunLog(t *testing.T) {
	resetLogging(t)

	a, err := NewLogger("manager")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer a.Close()
	b, err := NewLogger("tools")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer b.Close()

	if a.runID != b.runID {
		t.Errorf("run IDs differ: %q vs %q", a.runID, b.runID)
	}
	if a.logPath != b.logPath {
		t.Errorf("log paths differ: %q vs %q", a.logPath, b.logPath)
	}

	a.Infof("from manager")
	b.Infof("from tools")

	content := readLog(t, a)
	if !strings.Contains(content, "[manager]") || !strings.Contains(content, "[tools]") {
		t.Errorf("log should carry both components:\n%s", content)
	}
}

func TestRunIDIsStable(t *testing.T) {
	resetLogging(t)

	first := GetRunID()
	if first == "" {
		t.Fatal("run ID should not be empty")
	}
	if second := GetRunID(); second != first {
		t.Errorf("run ID changed between calls: %q then %q", first, second)
	}
}

func TestGetLogDirectory(t *testing.T) {
	want := resetLogging(t)

	dir, err := GetLogDirectory()
	if err != nil {
		t.Fatalf("GetLogDirectory failed: %v", err)
	}
	if dir != want {
		t.Errorf("log directory = %s, want %s", dir, want)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("log directory missing: %s", dir)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	resetLogging(t)

	logger, err := NewLogger("main")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestLogFileNaming(t *testing.T) {
	resetLogging(t)

	logger, err := NewLogger("main")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer logger.Close()

	name := filepath.Base(logger.logPath)
	if !strings.HasSuffix(name, "-voyager.log") {
		t.Errorf("log file = %q, want *-voyager.log", name)
	}
	if prefix := strings.TrimSuffix(name, "-voyager.log"); prefix != logger.runID {
		t.Errorf("file prefix %q should be the run ID %q", prefix, logger.runID)
	}
}
