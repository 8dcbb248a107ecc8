package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vinayak3788/mvps-print-api/config"
	"github.com/vinayak3788/mvps-print-api/models"
)

// PrintFile is one uploaded attachment of a print submission
type PrintFile struct {
	Name    string
	Content []byte
	Pages   int
}

// LineItem is one stationery entry of a submission
type LineItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// PrintOrderInput carries a validated-in-shape print/mixed submission
type PrintOrderInput struct {
	UserEmail     string
	PrintType     string
	SideOption    string
	SpiralBinding bool
	TotalCost     float64
	CreatedAt     string
	Files         []PrintFile
	Items         []LineItem
}

// StationeryOrderInput carries a stationery-only submission
type StationeryOrderInput struct {
	UserEmail string
	TotalCost float64
	CreatedAt string
	Items     []LineItem
}

// OrderReceipt is what a successful submission returns
type OrderReceipt struct {
	OrderNumber string  `json:"orderNumber"`
	TotalCost   float64 `json:"totalCost"`
}

// ParsePageCounts decodes the per-file page counts field, which arrives
// either as a native array or a JSON-encoded string. Malformed input is
// non-fatal and yields an empty list.
func ParsePageCounts(raw string) []int {
	if raw == "" {
		return nil
	}
	var pages []int
	if err := json.Unmarshal([]byte(raw), &pages); err != nil {
		return nil
	}
	return pages
}

// ParseLineItems decodes the optional serialized stationery items field.
// Malformed JSON yields an empty list.
func ParseLineItems(raw string) []LineItem {
	if raw == "" {
		return nil
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

// createOrderRow inserts the row and stamps its generated order number in a
// follow-up write, since the number is derived from the assigned id.
func createOrderRow(db *gorm.DB, order *models.Order) error {
	if err := db.Create(order).Error; err != nil {
		return err
	}
	order.OrderNumber = models.FormatOrderNumber(order.ID)
	return db.Model(order).Update("order_number", order.OrderNumber).Error
}

// SubmitPrintOrder runs the ingestion pipeline for a print or mixed
// submission: insert the row first to obtain the order number, upload every
// file under that number, fold in any stationery line items, then write the
// combined filename string and page total. An upload failure deletes the
// fresh row so no partial order is ever visible.
func SubmitPrintOrder(input PrintOrderInput) (*OrderReceipt, error) {
	if input.UserEmail == "" || input.TotalCost == 0 || input.CreatedAt == "" || input.PrintType == "" {
		return nil, models.ValidationError("Missing required fields.")
	}
	if len(input.Files) == 0 {
		return nil, models.ValidationError("No files uploaded.")
	}

	db := config.GetDB()
	order := models.Order{
		UserEmail:     input.UserEmail,
		FileNames:     "",
		PrintType:     input.PrintType,
		SideOption:    input.SideOption,
		SpiralBinding: input.SpiralBinding,
		TotalPages:    0,
		TotalCost:     input.TotalCost,
		Status:        models.StatusNew,
		CreatedAt:     input.CreatedAt,
	}
	if err := createOrderRow(db, &order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	storage := GetStorageService()
	tokens := make([]string, 0, len(input.Files)+len(input.Items))
	totalPages := 0
	for _, file := range input.Files {
		storedName, err := storage.UploadOrderFile(file.Content, file.Name, order.OrderNumber)
		if err != nil {
			// Roll the row back so listings never show an order whose
			// files were not stored
			if delErr := db.Delete(&models.Order{}, order.ID).Error; delErr != nil {
				log.Printf("Failed to roll back order %s after upload error: %v", order.OrderNumber, delErr)
			}
			return nil, models.UpstreamError("Failed to store uploaded file.")
		}
		tokens = append(tokens, storedName)
		totalPages += file.Pages
	}

	for _, item := range input.Items {
		tokens = append(tokens, models.LineItemToken(item.Name, item.Quantity))
	}

	err := db.Model(&order).Updates(map[string]interface{}{
		"file_names":  models.JoinFileNames(tokens),
		"total_pages": totalPages,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update order files: %w", err)
	}

	return &OrderReceipt{OrderNumber: order.OrderNumber, TotalCost: order.TotalCost}, nil
}

// SubmitStationeryOrder runs the ingestion pipeline for a stationery-only
// checkout: no upload phase, the combined string comes straight from the line
// items and the page total is the sum of quantities (a display convention).
func SubmitStationeryOrder(input StationeryOrderInput) (*OrderReceipt, error) {
	if input.UserEmail == "" || input.TotalCost == 0 || len(input.Items) == 0 {
		return nil, models.ValidationError("Missing stationery order data.")
	}

	tokens := make([]string, 0, len(input.Items))
	totalPages := 0
	for _, item := range input.Items {
		tokens = append(tokens, models.LineItemToken(item.Name, item.Quantity))
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		totalPages += qty
	}

	db := config.GetDB()
	order := models.Order{
		UserEmail:  input.UserEmail,
		FileNames:  models.JoinFileNames(tokens),
		PrintType:  models.PrintTypeStationery,
		SideOption: "",
		TotalPages: totalPages,
		TotalCost:  input.TotalCost,
		Status:     models.StatusNew,
		CreatedAt:  input.CreatedAt,
	}
	if err := createOrderRow(db, &order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &OrderReceipt{OrderNumber: order.OrderNumber, TotalCost: order.TotalCost}, nil
}

// ListOrders runs the normalization pipeline over the raw rows, newest
// first, optionally filtered by owner email.
func ListOrders(userEmail string) ([]models.NormalizedOrder, error) {
	db := config.GetDB()

	query := db.Order("created_at DESC")
	if userEmail != "" {
		query = query.Where("user_email = ?", userEmail)
	}

	var rows []models.Order
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	normalized := make([]models.NormalizedOrder, 0, len(rows))
	for i := range rows {
		normalized = append(normalized, rows[i].Normalize())
	}
	return normalized, nil
}

// UpdateOrderStatus sets the fulfillment status of an order
func UpdateOrderStatus(orderID uint, newStatus string) error {
	if !models.ValidStatus(newStatus) {
		return models.ValidationError("Invalid order status.")
	}

	db := config.GetDB()
	result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", newStatus)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

// ConfirmPayment looks up the order, renders the confirmation summary and
// mails it to the owner and the operator address. Payment confirmation never
// touches the fulfillment status, and a mail failure is logged rather than
// surfaced.
func ConfirmPayment(orderNumber string) error {
	db := config.GetDB()

	var order models.Order
	if err := db.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrOrderNotFound
		}
		return fmt.Errorf("failed to look up order: %w", err)
	}

	html := renderConfirmationHTML(&order)
	recipients := []string{order.UserEmail, config.GetConfig().OperatorEmail}
	subject := fmt.Sprintf("MVPS Order Confirmed - %s", order.OrderNumber)

	if err := GetMailerService().Send(recipients, "", subject, html); err != nil {
		log.Printf("Failed to send order confirmation for %s: %v", order.OrderNumber, err)
	}
	return nil
}

// renderConfirmationHTML re-derives the human-readable summary from the
// stored combined string
func renderConfirmationHTML(order *models.Order) string {
	var b strings.Builder
	b.WriteString("<h2>Order Confirmation</h2>")
	fmt.Fprintf(&b, "<p><strong>Order No:</strong> %s</p>", order.OrderNumber)
	fmt.Fprintf(&b, "<p><strong>Total:</strong> ₹%.2f</p>", order.TotalCost)

	if order.PrintType != models.PrintTypeStationery {
		printType := "Black & White"
		if order.PrintType == models.PrintTypeColor {
			printType = "Color"
		}
		side := "Single Sided"
		if order.SideOption == "double" {
			side = "Back to Back"
		}
		binding := "No"
		if order.SpiralBinding {
			binding = "Yes"
		}
		fmt.Fprintf(&b, "<p><strong>Print Type:</strong> %s</p>", printType)
		fmt.Fprintf(&b, "<p><strong>Print Side:</strong> %s</p>", side)
		fmt.Fprintf(&b, "<p><strong>Spiral Binding:</strong> %s</p>", binding)
	}

	var documents, lineItems []string
	for _, token := range models.SplitFileNames(order.FileNames) {
		if models.IsLineItem(token) {
			lineItems = append(lineItems, token)
		} else {
			documents = append(documents, token)
		}
	}
	if len(documents) > 0 {
		b.WriteString("<p><strong>Files:</strong></p><ul>")
		for _, name := range documents {
			fmt.Fprintf(&b, "<li>%s</li>", name)
		}
		b.WriteString("</ul>")
	}
	if len(lineItems) > 0 {
		b.WriteString("<p><strong>Stationery Items:</strong></p><ul>")
		for _, name := range lineItems {
			fmt.Fprintf(&b, "<li>%s</li>", name)
		}
		b.WriteString("</ul>")
	}

	return b.String()
}

// CleanupOldOrders removes orders created before the retention window along
// with their stored print files, returning how many rows were purged. This
// is an out-of-band maintenance operation, not part of the request flow.
func CleanupOldOrders(retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, models.ValidationError("Retention window must be positive.")
	}

	db := config.GetDB()
	cutoff := time.Now().AddDate(0, 0, -retentionDays).Format(time.RFC3339)

	var stale []models.Order
	if err := db.Where("created_at < ?", cutoff).Find(&stale).Error; err != nil {
		return 0, fmt.Errorf("failed to find old orders: %w", err)
	}

	storage := GetStorageService()
	for i := range stale {
		for _, token := range models.SplitFileNames(stale[i].FileNames) {
			if models.IsLineItem(token) {
				continue
			}
			if err := storage.DeleteOrderFile(token); err != nil {
				log.Printf("Failed to delete stored file %q for %s: %v", token, stale[i].OrderNumber, err)
			}
		}
		if err := db.Delete(&models.Order{}, stale[i].ID).Error; err != nil {
			return i, fmt.Errorf("failed to delete order %s: %w", stale[i].OrderNumber, err)
		}
	}

	return len(stale), nil
}
