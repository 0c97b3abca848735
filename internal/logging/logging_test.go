package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"battleship-ai/internal/logging"
)

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, true)
	log.Debug().Str("coord", "C7").Msg("received")

	out := buf.String()
	for _, want := range []string{"received", "coord=C7", "game="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestNew_Quiet(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, false)
	log.Error().Msg("should not appear")
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
