// Package qr renders invoice QR codes as embeddable data URLs.
package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 256

// InvoiceDataURL renders a QR code carrying the deep link for the given
// invoice and returns it as a base64 PNG data URL, ready to embed in an
// <img> tag.
func InvoiceDataURL(invoiceID string) (string, error) {
	png, err := qrcode.Encode(fmt.Sprintf("kaziflow://invoice/%s", invoiceID), qrcode.Low, imageSize)
	if err != nil {
		return "", fmt.Errorf("qr encode error: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
