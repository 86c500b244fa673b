package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		want    bool
	}{
		{"info passes at info", log.InfoLevel, func(l *log.Logger) { l.Info("laid out workflow") }, true},
		{"debug dropped at info", log.InfoLevel, func(l *log.Logger) { l.Debug("cache key computed") }, false},
		{"debug passes at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("cache key computed") }, true},
		{"warn passes at info", log.InfoLevel, func(l *log.Logger) { l.Warn("redis cache unavailable") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetLogLevel_EnablesVerbose(t *testing.T) {
	var buf bytes.Buffer
	c := &CLI{Logger: newLogger(&buf, log.InfoLevel), Config: DefaultConfig()}

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatal("debug output before SetLogLevel, want none")
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("visible")
	if buf.Len() == 0 {
		t.Error("no debug output after SetLogLevel(LogDebug)")
	}
}

func TestProgress_ReportsMessageAndDuration(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	time.Sleep(10 * time.Millisecond)
	prog.done("Checked 3 nodes")

	out := buf.String()
	if !strings.Contains(out, "Checked 3 nodes") {
		t.Errorf("output %q missing progress message", out)
	}
	if !strings.Contains(out, "ms)") && !strings.Contains(out, "s)") {
		t.Errorf("output %q missing elapsed duration", out)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext returned a different logger than attached")
	}
}

func TestLoggerFromContext_DefaultsWhenUnset(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext = nil for bare context, want default logger")
	}
}
