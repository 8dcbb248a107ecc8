package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vinayak3788/mvps-print-api/services"
	"github.com/vinayak3788/mvps-print-api/utils"
)

// SubmitOrder handles POST /api/submit-order - the print/mixed submission.
// The body is a multipart form: files[] plus user, printType, sideOption,
// spiralBinding, totalCost, createdAt, pageCounts (JSON array) and an
// optional items JSON array for mixed carts.
func SubmitOrder(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondValidation(c, "Invalid multipart form.")
		return
	}

	totalCost, _ := strconv.ParseFloat(c.PostForm("totalCost"), 64)
	pageCounts := services.ParsePageCounts(c.PostForm("pageCounts"))

	fileHeaders := form.File["files"]
	files := make([]services.PrintFile, 0, len(fileHeaders))
	for i, fileHeader := range fileHeaders {
		if err := utils.ValidatePrintFile(fileHeader); err != nil {
			respondValidation(c, err.Error())
			return
		}
		content, err := utils.ReadUploadedFile(fileHeader)
		if err != nil {
			respondValidation(c, "Failed to read uploaded file.")
			return
		}
		pages := 0
		if i < len(pageCounts) {
			pages = pageCounts[i]
		}
		files = append(files, services.PrintFile{
			Name:    fileHeader.Filename,
			Content: content,
			Pages:   pages,
		})
	}

	receipt, err := services.SubmitPrintOrder(services.PrintOrderInput{
		UserEmail:     c.PostForm("user"),
		PrintType:     c.PostForm("printType"),
		SideOption:    c.PostForm("sideOption"),
		SpiralBinding: c.PostForm("spiralBinding") == "true",
		TotalCost:     totalCost,
		CreatedAt:     c.PostForm("createdAt"),
		Files:         files,
		Items:         services.ParseLineItems(c.PostForm("items")),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderNumber": receipt.OrderNumber,
		"totalCost":   receipt.TotalCost,
	})
}

// StationeryOrderRequest is the body of a stationery-only checkout
type StationeryOrderRequest struct {
	User      string              `json:"user"`
	Items     []services.LineItem `json:"items"`
	TotalCost float64             `json:"totalCost"`
	CreatedAt string              `json:"createdAt"`
}

// SubmitStationeryOrder handles POST /api/submit-stationery-order
func SubmitStationeryOrder(c *gin.Context) {
	var req StationeryOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Missing stationery order data.")
		return
	}

	receipt, err := services.SubmitStationeryOrder(services.StationeryOrderInput{
		UserEmail: req.User,
		TotalCost: req.TotalCost,
		CreatedAt: req.CreatedAt,
		Items:     req.Items,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderNumber": receipt.OrderNumber,
		"totalCost":   receipt.TotalCost,
	})
}

// ConfirmPaymentRequest is the body of a payment confirmation
type ConfirmPaymentRequest struct {
	OrderNumber string `json:"orderNumber"`
}

// ConfirmPayment handles POST /api/confirm-payment - sends the confirmation
// email for an order. Fulfillment status is intentionally untouched.
func ConfirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderNumber == "" {
		respondValidation(c, "Order number required.")
		return
	}

	if err := services.ConfirmPayment(req.OrderNumber); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confirmation email sent."})
}

// GetOrders handles GET /api/get-orders - the normalized order listing,
// optionally filtered by ?email=
func GetOrders(c *gin.Context) {
	orders, err := services.ListOrders(c.Query("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatusRequest is the body of a status update
type UpdateOrderStatusRequest struct {
	OrderID   uint   `json:"orderId"`
	NewStatus string `json:"newStatus"`
}

// UpdateOrderStatus handles POST /api/update-order-status
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == 0 || req.NewStatus == "" {
		respondValidation(c, "Order ID and new status required.")
		return
	}

	if err := services.UpdateOrderStatus(req.OrderID, req.NewStatus); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully."})
}

// GetSignedURL handles GET /api/get-signed-url?filename= - a time-limited
// retrieval link for a stored print file
func GetSignedURL(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		respondValidation(c, "Filename required")
		return
	}

	url, err := services.GetStorageService().GetPresignedURL(filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CleanupOrdersRequest is the body of the maintenance purge
type CleanupOrdersRequest struct {
	Days int `json:"days"`
}

// CleanupOldOrders handles POST /api/admin/orders/cleanup - purges orders
// older than the retention window together with their stored files
func CleanupOldOrders(c *gin.Context) {
	var req CleanupOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Retention window required.")
		return
	}

	deleted, err := services.CleanupOldOrders(req.Days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
