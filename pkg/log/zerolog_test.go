package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_WrapsExistingLogger(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapterWithLogger(zerolog.New(&buf))

	adapter.Info("capture ended",
		Uint64("admitted", 6),
		String("cause", "quota reached"),
		Bool("clean", true),
	)

	out := buf.String()
	for _, want := range []string{
		`"message":"capture ended"`,
		`"admitted":6`,
		`"cause":"quota reached"`,
		`"clean":true`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
