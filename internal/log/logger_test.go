package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debug().Str("method", "GET").Msg("request")

	out := buf.String()
	if !strings.Contains(out, "request") || !strings.Contains(out, "method=GET") {
		t.Errorf("debug output = %q, want request with method=GET", out)
	}
}

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Debug().Msg("hidden")
	logger.Info().Msg("hidden too")
	if buf.Len() != 0 {
		t.Errorf("non-debug logger wrote %q, want nothing", buf.String())
	}

	logger.Warn().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn output = %q, want shown", buf.String())
	}
}
