// Package qrcode renders asset tags as PNG data URLs.
package qrcode

import (
	"encoding/base64"
	"fmt"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize   = 300
	dataURLPrefix = "data:image/png;base64,"
)

// Generator encodes content into a QR PNG at a fixed size and error
// correction level.
type Generator struct {
	size  int
	level goqrcode.RecoveryLevel
}

func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = DefaultSize
	}
	return &Generator{size: size, level: goqrcode.Highest}
}

// DataURL returns content encoded as a base64 PNG data URL.
func (g *Generator) DataURL(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("qr content is empty")
	}
	png, err := goqrcode.Encode(content, g.level, g.size)
	if err != nil {
		return "", fmt.Errorf("encoding qr code: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// EditURL is the link an item's QR code points at.
func EditURL(baseURL, customID string) string {
	return strings.TrimRight(baseURL, "/") + "/items/edit/" + customID
}
