// Package codepoint assigns private-use code points to staged labels.
//
// Assignment depends only on staging order: the n-th staged label gets
// Base+n. The window holds at most Max labels; a larger pack is refused
// instead of wrapping into someone else's glyphs.
package codepoint

import (
	"fmt"

	"github.com/provide-io/rankpack/pkg/resourcepack"
	rperrors "github.com/provide-io/rankpack/pkg/resourcepack/errors"
)

// Allocator hands out code points from a fixed window.
type Allocator struct {
	Base rune
	Max  int
}

// New returns an allocator for the window described by settings.
func New(settings resourcepack.Settings) (*Allocator, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Allocator{Base: settings.BaseCodePoint, Max: settings.MaxEntries}, nil
}

// Default returns the U+E800, 100 entry allocator.
func Default() *Allocator {
	return &Allocator{Base: resourcepack.DefaultBaseCodePoint, Max: resourcepack.DefaultMaxEntries}
}

// Allocate assigns code points to images in order.
func (a *Allocator) Allocate(images []resourcepack.StagedImage) ([]resourcepack.Assignment, error) {
	if len(images) > a.Max {
		return nil, fmt.Errorf("%w: %d labels, window holds %d starting at U+%04X",
			rperrors.ErrCapacityExceeded, len(images), a.Max, a.Base)
	}

	assignments := make([]resourcepack.Assignment, len(images))
	for i, img := range images {
		assignments[i] = resourcepack.Assignment{
			Label:     img.Label,
			Ordinal:   i,
			CodePoint: a.Base + rune(i),
		}
	}
	return assignments, nil
}
