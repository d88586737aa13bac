package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Fatalf("toZapLevel(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestNewWithSyncer_FiltersByLevelAndWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSyncer(WarnLevel, zapcore.AddSync(&buf))

	log.Infow("hidden_event")
	log.Component("test").Warnw("visible_event", "block_id", "b1")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden_event") {
		t.Fatalf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "visible_event") || !strings.Contains(out, "b1") || !strings.Contains(out, "component") {
		t.Fatalf("expected warn line with fields, got: %s", out)
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	Nop().Errorw("ignored", "err", "x")
}

func TestGet_ReturnsSingleton(t *testing.T) {
	a := Get(DebugLevel)
	b := Get(ErrorLevel)
	if a != b {
		t.Fatalf("expected singleton logger")
	}
}

func TestValidLevel(t *testing.T) {
	for _, lvl := range []string{"", "debug", " Info ", "WARN", "error"} {
		if !ValidLevel(lvl) {
			t.Fatalf("ValidLevel(%q) = false; want true", lvl)
		}
	}
	for _, lvl := range []string{"verbose", "trace", "fatal"} {
		if ValidLevel(lvl) {
			t.Fatalf("ValidLevel(%q) = true; want false", lvl)
		}
	}
}
