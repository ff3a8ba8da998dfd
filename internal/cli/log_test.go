package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"InfoAtInfo", log.InfoLevel, func(l *log.Logger) { l.Info("graph loaded") }, true},
		{"DebugAtInfo", log.InfoLevel, func(l *log.Logger) { l.Debug("layout settled") }, false},
		{"DebugAtDebug", log.DebugLevel, func(l *log.Logger) { l.Debug("layout settled") }, true},
		{"WarnAtInfo", log.InfoLevel, func(l *log.Logger) { l.Warn("redis unavailable") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("rendered snapshot", "nodes", 3)

	out := buf.String()
	for _, want := range []string{"rendered snapshot", "nodes=3", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output = %q, missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should fall back to the default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	loggerFromContext(ctx).Info("open", "node", 7)
	if !strings.Contains(buf.String(), "node=7") {
		t.Errorf("attached logger output = %q", buf.String())
	}
}
