package layout

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/provide-io/rankpack/internal/testutil"
	"github.com/provide-io/rankpack/pkg/resourcepack"
	"github.com/provide-io/rankpack/pkg/resourcepack/codepoint"
	"github.com/provide-io/rankpack/pkg/resourcepack/descriptor"
	rperrors "github.com/provide-io/rankpack/pkg/resourcepack/errors"
	"github.com/provide-io/rankpack/pkg/utils/checksum"
)

// preparedPack stages PNGs directly and derives the documents the way the
// assembler does.
func preparedPack(t *testing.T, name string, labels ...string) *resourcepack.Pack {
	t.Helper()
	stage := t.TempDir()
	p := resourcepack.New(name, t.TempDir())
	for i, l := range labels {
		path := testutil.WritePNG(t, stage, l+".png", 4, 4+i)
		p.Put(resourcepack.StagedImage{Label: l, SourcePath: path, Height: 4 + i})
	}
	assignments, err := codepoint.Default().Allocate(p.Images())
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	p.Assignments = assignments
	p.Descriptor = descriptor.DefaultBuilder().Build(assignments)
	p.Manifest = descriptor.NewManifest(p.Name, resourcepack.DefaultPackFormat)
	return p
}

func TestMaterializeTree(t *testing.T) {
	p := preparedPack(t, "Example", "vip", "mvp")
	b := New(Options{Logger: testutil.Logger(t)})

	dir, err := b.Materialize(p, p.SaveRoot)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if want := filepath.Join(p.SaveRoot, "Example"); dir != want {
		t.Fatalf("dir = %q, want %q", dir, want)
	}

	for _, rel := range []string{
		"pack.mcmeta",
		"unicode_mappings.txt",
		"assets/minecraft/font/default.json",
		"assets/minecraft/textures/ranks/vip.png",
		"assets/minecraft/textures/ranks/mvp.png",
	} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "assets", "minecraft", "font", "default.json"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := descriptor.ParseDescriptor(data)
	if err != nil {
		t.Fatalf("ParseDescriptor: %v", err)
	}
	if !reflect.DeepEqual(got, p.Descriptor) {
		t.Errorf("default.json = %+v, want %+v", got, p.Descriptor)
	}

	mcmeta, _ := os.ReadFile(filepath.Join(dir, "pack.mcmeta"))
	m, err := descriptor.ParseManifest(mcmeta)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if m.Pack.PackFormat != 32 || m.Pack.Description != "Example" {
		t.Errorf("pack.mcmeta = %+v", m)
	}

	mappings, _ := os.ReadFile(filepath.Join(dir, "unicode_mappings.txt"))
	if want := "Here are the unicode mappings!\n\nvip: \uE800\nmvp: \uE801\n"; string(mappings) != want {
		t.Errorf("mappings = %q, want %q", mappings, want)
	}
}

func TestMaterializeCopiesStagedImages(t *testing.T) {
	p := preparedPack(t, "Keep", "vip")
	src := p.Images()[0].SourcePath
	staged, _ := os.ReadFile(src)

	dir, err := New(Options{}).Materialize(p, p.SaveRoot)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("staged image removed: %v", err)
	}
	placed, _ := os.ReadFile(filepath.Join(dir, "assets", "minecraft", "textures", "ranks", "vip.png"))
	if !bytes.Equal(placed, staged) {
		t.Error("placed texture differs from staged image")
	}
}

func TestMaterializeIdempotent(t *testing.T) {
	p := preparedPack(t, "Twice", "vip", "mvp", "admin")
	b := New(Options{Logger: testutil.Logger(t)})

	files := []string{
		filepath.Join("assets", "minecraft", "font", "default.json"),
		"pack.mcmeta",
		"unicode_mappings.txt",
	}

	dir, err := b.Materialize(p, p.SaveRoot)
	if err != nil {
		t.Fatalf("first Materialize: %v", err)
	}
	first := map[string][]byte{}
	for _, f := range files {
		first[f], _ = os.ReadFile(filepath.Join(dir, f))
	}

	if _, err := b.Materialize(p, p.SaveRoot); err != nil {
		t.Fatalf("second Materialize: %v", err)
	}
	for _, f := range files {
		second, _ := os.ReadFile(filepath.Join(dir, f))
		if !bytes.Equal(first[f], second) {
			t.Errorf("%s changed between runs", f)
		}
	}
}

func TestMaterializeFailures(t *testing.T) {
	t.Run("inconsistent pack", func(t *testing.T) {
		p := preparedPack(t, "Broken", "vip")
		p.Assignments = nil
		if _, err := New(Options{}).Materialize(p, p.SaveRoot); !errors.Is(err, rperrors.ErrLayout) {
			t.Fatalf("error = %v, want ErrLayout", err)
		}
	})

	t.Run("save root is a file", func(t *testing.T) {
		p := preparedPack(t, "Blocked", "vip")
		file := testutil.WriteFile(t, t.TempDir(), "root", []byte("x"))
		if _, err := New(Options{}).Materialize(p, file); !errors.Is(err, rperrors.ErrLayout) {
			t.Fatalf("error = %v, want ErrLayout", err)
		}
	})

	t.Run("staged image missing", func(t *testing.T) {
		p := preparedPack(t, "Gone", "vip")
		if err := os.Remove(p.Images()[0].SourcePath); err != nil {
			t.Fatal(err)
		}
		if _, err := New(Options{}).Materialize(p, p.SaveRoot); !errors.Is(err, rperrors.ErrLayout) {
			t.Fatalf("error = %v, want ErrLayout", err)
		}
	})
}

func TestPaths(t *testing.T) {
	loc, err := resourcepack.ParseTextureNamespace(resourcepack.DefaultTextureNamespace)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPaths("/save", "Pack", loc)
	if got, want := p.Texture("vip"), filepath.Join("/save", "Pack", "assets", "minecraft", "textures", "ranks", "vip.png"); got != want {
		t.Errorf("Texture = %q, want %q", got, want)
	}
	if got, want := p.Descriptor(), filepath.Join("/save", "Pack", "assets", "minecraft", "font", "default.json"); got != want {
		t.Errorf("Descriptor = %q, want %q", got, want)
	}
}

func TestMaterializeCustomNamespace(t *testing.T) {
	settings := resourcepack.DefaultSettings()
	settings.TextureNamespace = "myns:font/glyphs"

	p := preparedPack(t, "Custom", "vip")
	p.Descriptor = descriptor.NewBuilder(settings).Build(p.Assignments)

	b := New(Options{Logger: testutil.Logger(t), TextureNamespace: settings.TextureNamespace, Checksum: checksum.SHA512})
	dir, err := b.Materialize(p, p.SaveRoot)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	want := filepath.Join(dir, "assets", "myns", "textures", "font", "glyphs", "vip.png")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("texture not at %s: %v", want, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "assets", "minecraft", "textures", "ranks", "vip.png")); !os.IsNotExist(err) {
		t.Errorf("texture also written to the default location: %v", err)
	}
}

func TestMaterializeRejectsBadNamespace(t *testing.T) {
	p := preparedPack(t, "Bad", "vip")
	_, err := New(Options{TextureNamespace: "no-colon"}).Materialize(p, p.SaveRoot)
	if !errors.Is(err, rperrors.ErrLayout) {
		t.Fatalf("error = %v, want ErrLayout", err)
	}
}
