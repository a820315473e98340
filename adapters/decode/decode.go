// Package decode is the external-collaborator boundary between encoded
// image bytes (PNG/JPEG/GIF/BMP/TIFF/WebP) and the match engine, which only
// ever consumes already-decoded 8-bit grayscale rasters. Nothing in this
// package is part of the matching engine's core; it exists so the module as
// a whole has a working path from a file on disk to a match.Best call.
package decode

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/soocke/imgmatch/match"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Format names returned by sniff and used as keys of decoders.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatWebP = "webp"
)

// decoders maps a sniffed format name to the stdlib-compatible decode
// function for it. PNG/JPEG/GIF register themselves with image.RegisterFormat
// via blank import; BMP/TIFF/WebP are registered explicitly below because
// golang.org/x/image's subpackages don't self-register on import in every
// version of the module.
var decoders = map[string]func(r *bytes.Reader) (image.Image, error){
	FormatPNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
	FormatBMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
	FormatTIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	FormatWebP: func(r *bytes.Reader) (image.Image, error) { return webp.Decode(r) },
}

// Decode sniffs the encoded byte format and decodes it to a GrayImage ready
// for the match engine. When magic bytes identify BMP, TIFF or WebP it tries
// the x/image decoder for that format first; otherwise, or if that decoder
// fails, it tries image.Decode's format registry (PNG, JPEG, GIF), and
// finally imaging.Decode (which tolerates minor format quirks). Failures
// surface as match.ErrDecodeFailed.
func Decode(data []byte) (*match.GrayImage, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", match.ErrDecodeFailed, err)
	}
	return toGrayImage(img)
}

func decodeImage(data []byte) (image.Image, error) {
	if format := sniff(data); format != "" {
		if dec, ok := decoders[format]; ok {
			if img, err := dec(bytes.NewReader(data)); err == nil {
				return img, nil
			}
		}
	}
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return imaging.Decode(bytes.NewReader(data))
}

// sniff inspects magic bytes to identify a format outside the three the
// stdlib registers decoders for automatically (PNG/JPEG/GIF handled via
// image.Decode's format registry instead).
func sniff(data []byte) string {
	switch {
	case len(data) >= 2 && data[0] == 'B' && data[1] == 'M':
		return FormatBMP
	case len(data) >= 4 && (string(data[:4]) == "II*\x00" || string(data[:4]) == "MM\x00*"):
		return FormatTIFF
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return FormatWebP
	default:
		return ""
	}
}

// toGrayImage converts a decoded image.Image to a match.GrayImage using
// BT.601 luminance, the conversion match.ToGray performs for RGBA input.
func toGrayImage(img image.Image) (*match.GrayImage, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, w*h*4)
	off := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			pixels[off] = byte(r >> 8)
			pixels[off+1] = byte(g >> 8)
			pixels[off+2] = byte(bl >> 8)
			pixels[off+3] = byte(a >> 8)
			off += 4
		}
	}
	return match.ToGray(w, h, pixels, match.LayoutRGBA)
}
