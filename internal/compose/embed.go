package compose

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/webp"
)

// embeddable is an image ready for PDF registration: validated bytes, the
// PDF image type they decode as, and pixel dimensions for aspect-fit math.
type embeddable struct {
	data   []byte
	kind   string // gofpdf image type: "JPG" or "PNG"
	width  int
	height int
}

// decoder validates (and when needed converts) raw bytes into an embeddable.
type decoder struct {
	format imageFormat
	decode func(data []byte) (*embeddable, error)
}

// decoders is the ordered candidate list. Supporting another raster format
// is one more entry here.
var decoders = []decoder{
	{formatJPEG, decodeJPEG},
	{formatPNG, decodePNG},
	{formatWEBP, decodeWEBP},
}

// prepareImage tries the candidate decoders in order, starting with the
// detected format, until one accepts the bytes. This is what absorbs
// extension/content-type mismatches: a ".jpg" URL serving PNG bytes embeds
// on the second attempt instead of failing.
func prepareImage(data []byte, detected imageFormat) (*embeddable, error) {
	ordered := make([]decoder, 0, len(decoders))
	for _, d := range decoders {
		if d.format == detected {
			ordered = append(ordered, d)
		}
	}
	for _, d := range decoders {
		if d.format != detected {
			ordered = append(ordered, d)
		}
	}

	var errs []error
	for _, d := range ordered {
		emb, err := d.decode(data)
		if err == nil {
			return emb, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", d.format, err))
	}
	return nil, fmt.Errorf("no decoder accepted the image: %w", errors.Join(errs...))
}

func decodeJPEG(data []byte) (*embeddable, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &embeddable{data: data, kind: "JPG", width: cfg.Width, height: cfg.Height}, nil
}

func decodePNG(data []byte) (*embeddable, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &embeddable{data: data, kind: "PNG", width: cfg.Width, height: cfg.Height}, nil
}

// decodeWEBP re-encodes to PNG because the PDF writer has no native WEBP
// support.
func decodeWEBP(data []byte) (*embeddable, error) {
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("re-encoding webp as png: %w", err)
	}
	b := img.Bounds()
	return &embeddable{data: buf.Bytes(), kind: "PNG", width: b.Dx(), height: b.Dy()}, nil
}
