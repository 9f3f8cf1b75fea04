package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/provide-io/rankpack/pkg/resourcepack"
)

const indent = "    "

// Marshal encodes v with four-space indentation. Glyphs and markup
// characters are written literally so the descriptor shows the same
// characters as the mapping report.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ParseDescriptor decodes a default.json document.
func ParseDescriptor(data []byte) (resourcepack.Descriptor, error) {
	var d resourcepack.Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return resourcepack.Descriptor{}, fmt.Errorf("parsing font descriptor: %w", err)
	}
	return d, nil
}

// ParseManifest decodes a pack.mcmeta document.
func ParseManifest(data []byte) (resourcepack.Manifest, error) {
	var m resourcepack.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return resourcepack.Manifest{}, fmt.Errorf("parsing pack manifest: %w", err)
	}
	return m, nil
}
