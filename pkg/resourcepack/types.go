// Package resourcepack holds the pack aggregate shared by every assembly stage.
//
// A Pack is created when the operator supplies a save root and a name, filled
// by intake, and handed by pointer from stage to stage. Nothing in this tree
// keeps session state outside of a Pack.
package resourcepack

import (
	"fmt"
	"path/filepath"
	"strings"
)

// StagedImage is an image that passed intake and sits in the staging area.
type StagedImage struct {
	Label      string
	SourcePath string // staged {label}.png, not the operator's source file
	Height     int
}

// Assignment binds a label to its private-use code point.
type Assignment struct {
	Label     string
	Ordinal   int
	CodePoint rune
}

// Char renders the code point as a single character string.
func (a Assignment) Char() string {
	return string(a.CodePoint)
}

// Hex returns the code point as upper-case hex, at least four digits.
func (a Assignment) Hex() string {
	return fmt.Sprintf("%04X", a.CodePoint)
}

// Pack is the aggregate root for one build.
type Pack struct {
	Name     string
	SaveRoot string

	// Derived by the assembler, in this order.
	Assignments []Assignment
	Descriptor  Descriptor
	Manifest    Manifest

	images []StagedImage
	index  map[string]int
}

// New creates an empty pack.
func New(name, saveRoot string) *Pack {
	return &Pack{
		Name:     name,
		SaveRoot: saveRoot,
		index:    make(map[string]int),
	}
}

// Put stages img. A label already present is replaced in place, so the
// replacement keeps the ordinal of the entry it overwrites. Labels that
// differ only by case collide: their textures would share one file on
// case-insensitive filesystems. Put reports whether a replacement happened.
func (p *Pack) Put(img StagedImage) bool {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	key := foldLabel(img.Label)
	if i, ok := p.index[key]; ok {
		p.images[i] = img
		return true
	}
	p.index[key] = len(p.images)
	p.images = append(p.images, img)
	return false
}

// Has reports whether label, compared without case, is staged.
func (p *Pack) Has(label string) bool {
	_, ok := p.index[foldLabel(label)]
	return ok
}

// Staged returns the staged image whose label matches label without case.
func (p *Pack) Staged(label string) (StagedImage, bool) {
	i, ok := p.index[foldLabel(label)]
	if !ok {
		return StagedImage{}, false
	}
	return p.images[i], true
}

func foldLabel(label string) string {
	return strings.ToLower(label)
}

// Images returns the staged images in insertion order.
func (p *Pack) Images() []StagedImage {
	out := make([]StagedImage, len(p.images))
	copy(out, p.images)
	return out
}

// Len returns the number of staged images.
func (p *Pack) Len() int {
	return len(p.images)
}

// Dir returns {saveRoot}/{name}.
func (p *Pack) Dir() string {
	return filepath.Join(p.SaveRoot, p.Name)
}
