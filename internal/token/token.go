// Package token turns a ticket id into its scannable representation:
// the check-in URL carried by the QR code, and the QR image itself.
package token

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 512

// CheckinURL builds the URL a door scanner lands on for the ticket.
func CheckinURL(baseURL, ticketID string) string {
	return strings.TrimRight(baseURL, "/") + "/checkin?code=" + url.QueryEscape(ticketID)
}

// QRPNG renders the payload into a scannable PNG. Medium error
// correction keeps the code readable at typical print and screen sizes.
func QRPNG(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// QRDataURI renders the payload as a data URI suitable for inlining in
// an <img> tag.
func QRDataURI(payload string) (string, error) {
	png, err := QRPNG(payload)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
