package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "multiselect.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
		SetVerbose(false)
	})
	return path
}

func readLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestTraceWritesJSONWhenEnabled(t *testing.T) {
	path := useTempLog(t)

	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file while tracing is disabled, got %v", err)
	}

	SetTraceEnabled(true)
	Trace("filter.append", map[string]interface{}{"filter": "abc"})

	lines := readLines(t, path)
	if len(lines) != 1 {
		t.Fatalf("expected one entry, got %d", len(lines))
	}
	if lines[0]["event"] != "filter.append" {
		t.Fatalf("expected event recorded, got %v", lines[0])
	}
	payload, ok := lines[0]["payload"].(map[string]interface{})
	if !ok || payload["filter"] != "abc" {
		t.Fatalf("expected payload recorded, got %v", lines[0]["payload"])
	}
}

func TestErrorAlwaysWrites(t *testing.T) {
	path := useTempLog(t)
	Error(nil)
	Error(errors.New("boom"))

	lines := readLines(t, path)
	if len(lines) != 1 || lines[0]["error"] != "boom" || lines[0]["level"] != "error" {
		t.Fatalf("unexpected entries %v", lines)
	}
}

func TestDebugRequiresVerbose(t *testing.T) {
	path := useTempLog(t)
	Debug("hidden", nil)
	SetVerbose(true)
	Debug("shown", map[string]interface{}{"n": 1})

	lines := readLines(t, path)
	if len(lines) != 1 || lines[0]["message"] != "shown" {
		t.Fatalf("expected only verbose entry, got %v", lines)
	}
}

func TestConfigureFallsBackToDefault(t *testing.T) {
	Configure("  ")
	if Path() != defaultLogFile {
		t.Fatalf("expected default path, got %q", Path())
	}
}
