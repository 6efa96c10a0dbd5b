package qrcode

import (
	"net/url"

	qr "github.com/skip2/go-qrcode"
)

// Size is the edge length of generated images in pixels.
const Size = 256

// Generate creates a QR code PNG image for the given URL.
func Generate(link string) ([]byte, error) {
	return qr.Encode(link, qr.Medium, Size)
}

// JoinURL is the link a player scans to enter a room.
func JoinURL(host, roomID string, secure bool) string {
	u := url.URL{Scheme: "http", Host: host, Path: "/join"}
	if secure {
		u.Scheme = "https"
	}
	u.RawQuery = url.Values{"room": {roomID}}.Encode()
	return u.String()
}
