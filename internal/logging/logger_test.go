package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pontolink/internal/logging"
)

func TestConsoleHandlerLine(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	scoped := logging.WithComponent(logger, "matcher")
	scoped.Info("row classified", logging.Int("row", 12), logging.String("status", "found"))

	line := buf.String()
	for _, want := range []string{"INFO", "matcher: row classified", "row=12", "status=found"} {
		if !strings.Contains(line, want) {
			t.Fatalf("line missing %q: %s", want, line)
		}
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component must be hoisted into the prefix: %s", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Warn("skipped", logging.String("query", "Relatório Final"))
	if !strings.Contains(buf.String(), `query="Relatório Final"`) {
		t.Fatalf("value with spaces must be quoted: %s", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")
	if strings.Contains(buf.String(), "quiet") {
		t.Fatalf("info must be filtered at warn level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "loud") {
		t.Fatalf("warn must pass at warn level: %s", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("saved", logging.Int("rows", 3))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	if payload["msg"] != "saved" || payload["rows"] != float64(3) {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if payload["level"] != "info" {
		t.Fatalf("level must be lowercased: %v", payload["level"])
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("ignored", logging.Error(nil))
}
