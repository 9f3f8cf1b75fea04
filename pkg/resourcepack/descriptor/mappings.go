package descriptor

import (
	"bytes"

	"github.com/provide-io/rankpack/pkg/resourcepack"
)

// RenderMappings produces unicode_mappings.txt: a header, a blank line, then
// "label: char" per assignment.
func RenderMappings(assignments []resourcepack.Assignment) []byte {
	var buf bytes.Buffer
	buf.WriteString(resourcepack.MappingsHeader)
	buf.WriteString("\n\n")
	for _, a := range assignments {
		buf.WriteString(a.Label)
		buf.WriteString(": ")
		buf.WriteString(a.Char())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
