package services

import (
	"errors"
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/vinayak3788/mvps-print-api/config"
	"github.com/vinayak3788/mvps-print-api/models"
)

// qrImageSize is the side length in pixels of the generated QR PNG
const qrImageSize = 256

// UPIPayment holds the deep link and QR image for paying an order
type UPIPayment struct {
	OrderNumber string  `json:"orderNumber"`
	Amount      float64 `json:"amount"`
	UPIURL      string  `json:"upiUrl"`
	QRImage     []byte  `json:"-"`
}

// BuildUPILink assembles a upi://pay deep link for the given amount and note
func BuildUPILink(address, payeeName string, amount float64, note string) string {
	params := url.Values{}
	params.Set("pa", address)
	params.Set("pn", payeeName)
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", "INR")
	params.Set("tn", note)
	return "upi://pay?" + params.Encode()
}

// GetUPIPayment looks up an order and produces its UPI deep link together
// with a QR code PNG encoding the same link
func GetUPIPayment(orderNumber string) (*UPIPayment, error) {
	cfg := config.GetConfig()
	if cfg.UPIAddress == "" {
		return nil, models.UpstreamError("UPI payments are not configured.")
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}

	link := BuildUPILink(cfg.UPIAddress, cfg.UPIPayeeName, order.TotalCost, order.OrderNumber)
	png, err := qrcode.Encode(link, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	return &UPIPayment{
		OrderNumber: order.OrderNumber,
		Amount:      order.TotalCost,
		UPIURL:      link,
		QRImage:     png,
	}, nil
}
