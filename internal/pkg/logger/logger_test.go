package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestConfigure(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true, Output: os.Stdout}) })

	Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info written at warn level: %s", buf.String())
	}

	lgr := Get()
	lgr.Warn().Str("classID", "7").Msg("kept")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "kept" || line["service"] != "abimath" || line["classID"] != "7" {
		t.Fatalf("unexpected log line %v", line)
	}
}

func TestToZerologLevel(t *testing.T) {
	tests := map[LogLevel]zerolog.Level{
		"DEBUG":  zerolog.DebugLevel,
		"warn":   zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"fatal":  zerolog.FatalLevel,
		"":       zerolog.InfoLevel,
		"chatty": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := toZerologLevel(in); got != want {
			t.Errorf("toZerologLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if !ParseFormat(" Text ") || ParseFormat("json") || ParseFormat("") {
		t.Error("only \"text\" selects the console writer")
	}
}
