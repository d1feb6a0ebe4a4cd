package logger

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"
)

// TestNewConsoleLogger verifies the constructor normalizes the level.
func TestNewConsoleLogger(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"info", "info"},
		{"DEBUG", "debug"},
		{"  warn ", "warn"},
		{"", "info"},
		{"verbose", "info"},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewConsoleLogger(&bytes.Buffer{}, tt.level)
			if logger.Level() != tt.want {
				t.Errorf("Level() = %q, want %q", logger.Level(), tt.want)
			}
			if logger.colorOutput {
				t.Error("color must be off for a non-terminal writer")
			}
		})
	}
}

func TestConsoleLogger_Filtering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "warn")

	logger.Tracef("t")
	logger.Debugf("d %d", 1)
	logger.Infof("i")
	logger.Warnf("w %s", "x")
	logger.Errorf("e")

	out := buf.String()
	for _, hidden := range []string{"[TRACE]", "[DEBUG]", "[INFO]"} {
		if strings.Contains(out, hidden) {
			t.Errorf("output should not contain %s:\n%s", hidden, out)
		}
	}
	if !strings.Contains(out, "[WARN] w x") || !strings.Contains(out, "[ERROR] e") {
		t.Errorf("missing warn or error line:\n%s", out)
	}
}

func TestConsoleLogger_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "trace").Debugf("compiled %d states", 7)

	re := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[DEBUG\] compiled 7 states\n$`)
	if !re.MatchString(buf.String()) {
		t.Errorf("unexpected format: %q", buf.String())
	}
}

func TestConsoleLogger_LogMatch(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")
	logger.LogMatch("a|b", "a", true)
	logger.LogMatch("a|b", "c", false)

	out := buf.String()
	if !strings.Contains(out, `"a|b" accepts "a"`) {
		t.Errorf("missing accept line:\n%s", out)
	}
	if !strings.Contains(out, `"a|b" rejects "c"`) {
		t.Errorf("missing reject line:\n%s", out)
	}
}

func TestConsoleLogger_NilWriter(t *testing.T) {
	logger := NewConsoleLogger(nil, "trace")
	logger.Errorf("dropped")
}

func TestConsoleLogger_Concurrent(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Infof("message %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 10 {
		t.Errorf("expected 10 lines, got %d", len(lines))
	}
}

func TestValidLevel(t *testing.T) {
	for _, l := range []string{"trace", "Debug", "INFO", "warn", "error"} {
		if !ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = false", l)
		}
	}
	if ValidLevel("loud") {
		t.Error("ValidLevel(loud) = true")
	}
	NewNoOpLogger().Debugf("ignored %d", 1)
}
