package flows

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// QR rendering parameters.
const (
	QRSize   = 256
	QRMargin = 2 // modules of quiet zone on each side
)

const pngDataURIPrefix = "data:image/png;base64,"

// EncodeQRCode renders content as a QRSize px PNG data URI with error correction level H.
func EncodeQRCode(content string) (string, error) {
	if content == "" {
		return "", errors.New("empty QR content")
	}
	code, err := qr.Encode(content, qr.H, qr.Auto)
	if err != nil {
		return "", err
	}
	img := renderQR(code, QRSize, QRMargin)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// renderQR draws the module matrix centred on a white square of size px,
// keeping at least margin modules of quiet zone.
func renderQR(code barcode.Barcode, size, margin int) image.Image {
	modules := code.Bounds().Dx()
	scale := size / (modules + 2*margin)
	if scale < 1 {
		scale = 1
	}
	if total := (modules + 2*margin) * scale; total > size {
		size = total
	}
	offset := (size - modules*scale) / 2

	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y := 0; y < modules; y++ {
		for x := 0; x < modules; x++ {
			if !isDark(code.At(x, y)) {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetGray(offset+x*scale+dx, offset+y*scale+dy, color.Gray{Y: 0})
				}
			}
		}
	}
	return img
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r+g+b < 3*0x8000
}

// DataURI is a parsed base64 data URI.
type DataURI struct {
	MIMEType string
	Data     []byte
}

// ParseDataURI decodes "data:<mime>;base64,<payload>".
func ParseDataURI(uri string) (*DataURI, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return nil, errors.New("data URI must be base64 encoded")
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, errors.New("data URI must contain an image")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	return &DataURI{MIMEType: mime, Data: data}, nil
}
