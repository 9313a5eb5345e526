package texture

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
)

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

// LoadTexture reads a TGA, PNG or JPEG file and returns an NRGBA image.
// The decoder is picked from the extension; other extensions are sniffed for
// PNG and JPEG signatures and decoded as TGA otherwise.
func LoadTexture(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	img, err := decoderFor(path, r)(r)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	return toNRGBA(img), nil
}

// decoderFor avoids image.Decode: tga registers an empty signature, which
// matches every file ahead of the png and jpeg decoders.
func decoderFor(path string, r *bufio.Reader) func(io.Reader) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tga":
		return tga.Decode
	case ".png":
		return png.Decode
	case ".jpg", ".jpeg":
		return jpeg.Decode
	}

	head, _ := r.Peek(len(pngMagic))
	switch {
	case bytes.HasPrefix(head, pngMagic):
		return png.Decode
	case bytes.HasPrefix(head, jpegMagic):
		return jpeg.Decode
	}
	return tga.Decode
}

// toNRGBA converts any image to NRGBA format with its origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
