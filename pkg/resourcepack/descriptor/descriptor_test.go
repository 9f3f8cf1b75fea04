package descriptor

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/provide-io/rankpack/internal/testutil"
	"github.com/provide-io/rankpack/pkg/resourcepack"
)

func assignments(labels ...string) []resourcepack.Assignment {
	out := make([]resourcepack.Assignment, len(labels))
	for i, l := range labels {
		out[i] = resourcepack.Assignment{Label: l, Ordinal: i, CodePoint: rune(0xE800 + i)}
	}
	return out
}

// TestBuildOrderAndFields checks one provider per assignment, in order
func TestBuildOrderAndFields(t *testing.T) {
	logger := testutil.Logger(t)
	in := assignments("vip", "mvp", "admin")

	d := DefaultBuilder().Build(in)
	logger.Debug("📝 Built descriptor", "providers", len(d.Providers))

	if len(d.Providers) != len(in) {
		t.Fatalf("len(providers) = %d, want %d", len(d.Providers), len(in))
	}
	for i, p := range d.Providers {
		if p.Type != "bitmap" {
			t.Errorf("[%d] type = %q", i, p.Type)
		}
		if want := "minecraft:textures/ranks/" + in[i].Label + ".png"; p.File != want {
			t.Errorf("[%d] file = %q, want %q", i, p.File, want)
		}
		if p.Ascent != 8 || p.Height != 8 {
			t.Errorf("[%d] ascent/height = %d/%d, want 8/8", i, p.Ascent, p.Height)
		}
		if len(p.Chars) != 1 || p.Chars[0] != string(rune(0xE800+i)) {
			t.Errorf("[%d] chars = %q", i, p.Chars)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	d := DefaultBuilder().Build(nil)
	data, err := Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Contains(data, []byte(`"providers": []`)) {
		t.Errorf("empty descriptor = %s", data)
	}
}

func TestBuildCustomMetrics(t *testing.T) {
	s := resourcepack.DefaultSettings()
	s.TextureNamespace = "myns:font/glyphs/"
	s.Ascent = 7
	s.GlyphHeight = 9
	d := NewBuilder(s).Build(assignments("a"))
	p := d.Providers[0]
	if p.File != "myns:font/glyphs/a.png" || p.Ascent != 7 || p.Height != 9 {
		t.Errorf("provider = %+v", p)
	}
}

func TestDescriptorRoundTrip(t *testing.T) {
	want := DefaultBuilder().Build(assignments("vip", "mvp", "a&b<c>"))

	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := ParseDescriptor(data)
	if err != nil {
		t.Fatalf("ParseDescriptor: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestMarshalLiteralGlyphsAndKeyOrder(t *testing.T) {
	data, err := Marshal(DefaultBuilder().Build(assignments("a&b")))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "\"\uE800\"") {
		t.Errorf("glyph not written literally:\n%s", text)
	}
	if strings.Contains(strings.ToLower(text), `\ue800`) {
		t.Errorf("glyph escaped:\n%s", text)
	}
	if !strings.Contains(text, "a&b.png") {
		t.Errorf("markup characters escaped:\n%s", text)
	}
	if strings.HasSuffix(text, "\n") {
		t.Errorf("document ends with newline")
	}

	last := -1
	for _, key := range []string{`"providers"`, `"type"`, `"file"`, `"ascent"`, `"height"`, `"chars"`} {
		idx := strings.Index(text, key)
		if idx <= last {
			t.Fatalf("key %s out of order in:\n%s", key, text)
		}
		last = idx
	}
	if !strings.Contains(text, "\n    \"providers\"") {
		t.Errorf("expected four-space indentation:\n%s", text)
	}
}

func TestManifest(t *testing.T) {
	m := NewManifest("Example", 32)
	data, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "{\n    \"pack\": {\n        \"pack_format\": 32,\n        \"description\": \"Example\"\n    }\n}"
	if string(data) != want {
		t.Errorf("manifest =\n%s\nwant\n%s", data, want)
	}
	back, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if back != m {
		t.Errorf("ParseManifest = %+v, want %+v", back, m)
	}
}

func TestRenderMappings(t *testing.T) {
	got := string(RenderMappings(assignments("vip", "mvp")))
	want := "Here are the unicode mappings!\n\nvip: \uE800\nmvp: \uE801\n"
	if got != want {
		t.Errorf("RenderMappings = %q, want %q", got, want)
	}

	if got := string(RenderMappings(nil)); got != "Here are the unicode mappings!\n\n" {
		t.Errorf("RenderMappings(nil) = %q", got)
	}
}
