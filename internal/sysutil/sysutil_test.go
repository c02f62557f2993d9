package sysutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"panic":   zerolog.PanicLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
		" debug ": zerolog.DebugLevel,
	}
	for in, want := range cases {
		SetLogLevel(in)
		if got := zerolog.GlobalLevel(); got != want {
			t.Fatalf("SetLogLevel(%q): level=%v, want %v", in, got, want)
		}
	}
}

func TestSetupLogger(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	SetupLogger(&buf, false)
	log.Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"message":"hello"`) {
		t.Fatalf("structured output missing: %s", out)
	}
	if !strings.Contains(out, `"time"`) {
		t.Fatalf("timestamp missing: %s", out)
	}
}

func TestSetupLogger_Pretty(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	SetupLogger(&buf, true)
	log.Info().Msg("hello")

	// Console writer emits human-readable lines, not JSON.
	if strings.Contains(buf.String(), `"message"`) {
		t.Fatalf("pretty output is raw JSON: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("message missing: %s", buf.String())
	}
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "Y", "on", " on "} {
		if !IsTruthy(v) {
			t.Fatalf("IsTruthy(%q)=false, want true", v)
		}
	}
	for _, v := range []string{"", "0", "false", "no", "off", "2", "enabled"} {
		if IsTruthy(v) {
			t.Fatalf("IsTruthy(%q)=true, want false", v)
		}
	}
}
