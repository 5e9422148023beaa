package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info passes at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("parsed descriptor") },
			wantLog: true,
		},
		{
			name:    "debug is filtered at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("wrote 2 bytes") },
			wantLog: false,
		},
		{
			name:    "debug passes at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("wrote 2 bytes") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Rendered 1920x1080 pattern")

	out := buf.String()
	if !strings.Contains(out, "Rendered 1920x1080 pattern") {
		t.Errorf("done output %q should contain the message", out)
	}
	if !strings.Contains(out, "ms") && !strings.Contains(out, "s)") {
		t.Errorf("done output %q should contain the elapsed duration", out)
	}
}

func TestLoggerRoundTripsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}
}
