package codepoint

import (
	"errors"
	"fmt"
	"testing"

	"github.com/provide-io/rankpack/internal/testutil"
	"github.com/provide-io/rankpack/pkg/resourcepack"
	rperrors "github.com/provide-io/rankpack/pkg/resourcepack/errors"
)

func images(n int) []resourcepack.StagedImage {
	out := make([]resourcepack.StagedImage, n)
	for i := range out {
		out[i] = resourcepack.StagedImage{Label: fmt.Sprintf("rank%03d", i), Height: 8}
	}
	return out
}

// TestAllocateSequential checks dense, increasing assignment from U+E800
func TestAllocateSequential(t *testing.T) {
	logger := testutil.Logger(t)

	for _, n := range []int{0, 1, 2, 10, 11, 99, 100} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			input := images(n)
			got, err := Default().Allocate(input)
			if err != nil {
				t.Fatalf("Allocate(%d): %v", n, err)
			}
			if len(got) != n {
				t.Fatalf("len = %d, want %d", len(got), n)
			}
			for i, a := range got {
				if a.Ordinal != i {
					t.Errorf("[%d] ordinal = %d", i, a.Ordinal)
				}
				if want := rune(0xE800 + i); a.CodePoint != want {
					t.Errorf("[%d] code point = U+%04X, want U+%04X", i, a.CodePoint, want)
				}
				if a.Label != input[i].Label {
					t.Errorf("[%d] label = %q, want %q", i, a.Label, input[i].Label)
				}
				if i > 0 && a.CodePoint <= got[i-1].CodePoint {
					t.Errorf("[%d] code point not increasing", i)
				}
			}
			logger.Debug("📈 Allocated", "n", n)
		})
	}
}

func TestAllocateDeterministic(t *testing.T) {
	input := images(37)
	first, err := Default().Allocate(input)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	second, err := Default().Allocate(input)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("[%d] %+v != %+v", i, first[i], second[i])
		}
	}
}

func TestAllocateIgnoresLabelContent(t *testing.T) {
	a := []resourcepack.StagedImage{{Label: "zeta"}, {Label: "alpha"}}
	got, err := Default().Allocate(a)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got[0].Label != "zeta" || got[0].CodePoint != 0xE800 {
		t.Errorf("first assignment = %+v, want zeta at U+E800", got[0])
	}
}

func TestAllocateCapacity(t *testing.T) {
	if _, err := Default().Allocate(images(101)); !errors.Is(err, rperrors.ErrCapacityExceeded) {
		t.Fatalf("Allocate(101) error = %v, want ErrCapacityExceeded", err)
	}

	small := &Allocator{Base: 0xF000, Max: 3}
	if _, err := small.Allocate(images(4)); !errors.Is(err, rperrors.ErrCapacityExceeded) {
		t.Fatalf("Allocate(4) with Max=3 error = %v, want ErrCapacityExceeded", err)
	}
	got, err := small.Allocate(images(3))
	if err != nil {
		t.Fatalf("Allocate(3): %v", err)
	}
	if got[2].CodePoint != 0xF002 {
		t.Errorf("last code point = U+%04X, want U+F002", got[2].CodePoint)
	}
}

func TestNewRejectsBadWindow(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*resourcepack.Settings)
	}{
		{name: "zero max", mutate: func(s *resourcepack.Settings) { s.MaxEntries = 0 }},
		{name: "surrogates", mutate: func(s *resourcepack.Settings) { s.BaseCodePoint = 0xD7F0 }},
		{name: "past max rune", mutate: func(s *resourcepack.Settings) { s.BaseCodePoint = 0x10FFF0 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := resourcepack.DefaultSettings()
			tc.mutate(&s)
			if _, err := New(s); !errors.Is(err, rperrors.ErrInvalidSettings) {
				t.Fatalf("New error = %v, want ErrInvalidSettings", err)
			}
		})
	}

	a, err := New(resourcepack.DefaultSettings())
	if err != nil {
		t.Fatalf("New(defaults): %v", err)
	}
	if a.Base != 0xE800 || a.Max != 100 {
		t.Errorf("New(defaults) = %+v", a)
	}
}

func TestAssignmentRendering(t *testing.T) {
	a := resourcepack.Assignment{Label: "vip", CodePoint: 0xE801}
	if a.Char() != "\uE801" {
		t.Errorf("Char = %q", a.Char())
	}
	if a.Hex() != "E801" {
		t.Errorf("Hex = %q", a.Hex())
	}
}
