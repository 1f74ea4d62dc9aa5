package certgen

import (
	"fmt"

	"github.com/skip2/go-qrcode"
	svg "github.com/wamuir/svg-qr-code"
)

// If generate qr code for pdf file, size 50 should be enough
func GenerateQRCodePNG(link string, size int) ([]byte, error) {
	data, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return data, nil
}

// GenerateQRCodeSVG returns the QR code as inline SVG markup, used on the
// public verification page.
func GenerateQRCodeSVG(link string) (string, error) {
	qr, err := svg.New(link)
	if err != nil {
		return "", fmt.Errorf("failed to generate SVG QR code: %w", err)
	}
	return qr.String(), nil
}
