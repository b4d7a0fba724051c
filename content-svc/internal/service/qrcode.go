package service

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes a link to the reservation page on the public site.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(reservationID string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/reservations/%s", strings.TrimRight(g.BaseURL, "/"), reservationID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
