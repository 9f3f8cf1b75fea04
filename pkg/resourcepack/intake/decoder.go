package intake

import (
	"fmt"
	"image"
	"os"

	// Decoders available to intake. PNG is also used for re-encoding.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info is what intake needs to know about an image before staging it.
type Info struct {
	Format string
	Width  int
	Height int
}

// Decoder is the image-decoding boundary.
type Decoder interface {
	// Probe reads only the header of the image at path.
	Probe(path string) (Info, error)
	// Decode reads the full image at path.
	Decode(path string) (image.Image, error)
}

// StdDecoder decodes with the image formats registered in this binary.
type StdDecoder struct{}

// Probe implements Decoder.
func (StdDecoder) Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("reading image header: %w", err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Decode implements Decoder.
func (StdDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}
