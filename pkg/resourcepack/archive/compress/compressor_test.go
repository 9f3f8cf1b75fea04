package compress

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

// TestCompressorStreams round-trips a stream through every registered compressor
func TestCompressorStreams(t *testing.T) {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "compress_test",
		Level: hclog.Trace,
	})

	input := []byte(strings.Repeat("assets/minecraft/textures/ranks/", 64))

	for _, id := range []uint8{OP_GZIP, OP_BZIP2} {
		c, err := Get(id)
		if err != nil {
			t.Fatalf("Get(0x%02x): %v", id, err)
		}
		t.Run(c.Name(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := c.Writer(&buf)
			if err != nil {
				t.Fatalf("Writer: %v", err)
			}
			if _, err := w.Write(input); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			logger.Debug("📦 Compressed", "name", c.Name(), "in", len(input), "out", buf.Len())
			if buf.Len() >= len(input) {
				t.Errorf("compressed %d bytes to %d", len(input), buf.Len())
			}

			r, err := c.Reader(&buf)
			if err != nil {
				t.Fatalf("Reader: %v", err)
			}
			defer r.Close()
			out, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if !bytes.Equal(out, input) {
				t.Error("round trip mismatch")
			}
		})
	}
}

func TestLookup(t *testing.T) {
	testCases := []struct {
		name    string
		wantID  uint8
		wantErr bool
	}{
		{name: "gzip", wantID: OP_GZIP},
		{name: "GZ", wantID: OP_GZIP},
		{name: "bzip2", wantID: OP_BZIP2},
		{name: "bz2", wantID: OP_BZIP2},
		{name: "zstd", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ByName(tc.name)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ByName(%q) = %s, want error", tc.name, c.Name())
				}
				return
			}
			if err != nil {
				t.Fatalf("ByName(%q): %v", tc.name, err)
			}
			if c.ID() != tc.wantID {
				t.Errorf("ByName(%q).ID() = 0x%02x, want 0x%02x", tc.name, c.ID(), tc.wantID)
			}
		})
	}

	if _, err := Get(0x00); err == nil {
		t.Error("Get(0x00) should fail")
	}
	if got := strings.Join(Names(), ","); got != "bzip2,gzip" {
		t.Errorf("Names() = %s", got)
	}
}
