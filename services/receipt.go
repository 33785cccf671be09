package services

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID uint) ([]byte, error)
}

var _ QRGenerator = ReceiptQR{}

// ReceiptQR encodes the public receipt URL of an order as a PNG.
type ReceiptQR struct {
	BaseURL string
	Size    int
}

func (g ReceiptQR) URL(orderID uint) string {
	return fmt.Sprintf("%s/api/customer/orders/%d/receipt", strings.TrimRight(g.BaseURL, "/"), orderID)
}

func (g ReceiptQR) Generate(orderID uint) ([]byte, error) {
	size := g.Size
	if size == 0 {
		size = 256
	}
	return qrcode.Encode(g.URL(orderID), qrcode.Medium, size)
}
