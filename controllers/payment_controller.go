package controllers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vinayak3788/mvps-print-api/services"
)

// GetUPIPayment handles GET /api/payment/upi?orderNumber= - the UPI deep
// link and QR code for paying an order
func GetUPIPayment(c *gin.Context) {
	orderNumber := c.Query("orderNumber")
	if orderNumber == "" {
		respondValidation(c, "Order number required.")
		return
	}

	payment, err := services.GetUPIPayment(orderNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderNumber": payment.OrderNumber,
		"amount":      payment.Amount,
		"upiUrl":      payment.UPIURL,
		"qrImage":     base64.StdEncoding.EncodeToString(payment.QRImage),
	})
}
