package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Print type values
const (
	PrintTypeBW         = "bw"
	PrintTypeColor      = "color"
	PrintTypeStationery = "stationery"
)

// Order status values
const (
	StatusNew            = "new"
	StatusInProcess      = "in process"
	StatusReadyToDeliver = "ready to deliver"
)

// TokenSeparator joins entries in the combined filename string. A document
// entry is a bare filename; a stationery entry is "<name> × <quantity>".
const (
	TokenSeparator   = ", "
	QuantityMark     = "×"
	quantitySepToken = " × "
)

// Order is the central aggregate. Every uploaded document name and every
// stationery "name × quantity" entry is stored denormalized in FileNames;
// totals are computed once at submission and only re-derived for display.
type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderNumber   string    `gorm:"uniqueIndex" json:"orderNumber"`
	UserEmail     string    `gorm:"index;not null" json:"userEmail"`
	FileNames     string    `json:"fileNames"`
	PrintType     string    `gorm:"not null" json:"printType"`
	SideOption    string    `json:"sideOption"`
	SpiralBinding bool      `gorm:"not null;default:false" json:"spiralBinding"`
	TotalPages    int       `gorm:"not null;default:0" json:"totalPages"`
	TotalCost     float64   `gorm:"type:numeric" json:"totalCost"`
	Status        string    `gorm:"not null;default:'new'" json:"status"`
	CreatedAt     string    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// AttachedFile is a single entry of a normalized order
type AttachedFile struct {
	Name string `json:"name"`
}

// NormalizedOrder is the stable external shape produced by the view pipeline
type NormalizedOrder struct {
	ID            uint           `json:"id"`
	OrderNumber   string         `json:"orderNumber"`
	UserEmail     string         `json:"userEmail"`
	PrintType     string         `json:"printType"`
	SideOption    string         `json:"sideOption"`
	SpiralBinding bool           `json:"spiralBinding"`
	TotalPages    int            `json:"totalPages"`
	TotalCost     float64        `json:"totalCost"`
	Status        string         `json:"status"`
	CreatedAt     string         `json:"createdAt"`
	AttachedFiles []AttachedFile `json:"attachedFiles"`
}

// FormatOrderNumber derives the human-readable order number from the numeric
// identifier: ORD + zero-padded id, 4 digits minimum, never truncated.
func FormatOrderNumber(id uint) string {
	return fmt.Sprintf("ORD%04d", id)
}

// ValidStatus reports whether s is one of the allowed order statuses
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInProcess, StatusReadyToDeliver:
		return true
	}
	return false
}

// LineItemToken builds the stored token for a stationery line item
func LineItemToken(name string, quantity int) string {
	if quantity < 1 {
		quantity = 1
	}
	return fmt.Sprintf("%s%s%d", name, quantitySepToken, quantity)
}

// SplitFileNames splits the combined filename string into its tokens,
// dropping empties so a blank column yields an empty slice.
func SplitFileNames(combined string) []string {
	parts := strings.Split(combined, TokenSeparator)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// JoinFileNames is the inverse of SplitFileNames
func JoinFileNames(tokens []string) string {
	return strings.Join(tokens, TokenSeparator)
}

// IsLineItem classifies a token: stationery line items carry the quantity
// mark, plain document names do not.
func IsLineItem(token string) bool {
	return strings.Contains(token, QuantityMark)
}

// LineItemQuantity extracts the quantity following the mark in a line-item
// token, falling back to 1 when it cannot be parsed.
func LineItemQuantity(token string) int {
	_, after, found := strings.Cut(token, QuantityMark)
	if !found {
		return 1
	}
	qty, err := strconv.Atoi(strings.TrimSpace(after))
	if err != nil || qty < 1 {
		return 1
	}
	return qty
}

// Normalize reverses the denormalized row into the external view shape.
// Documents come before line items; stationery orders re-derive their page
// count from line-item quantities. Safe on empty or malformed columns and
// idempotent for a given row.
func (o *Order) Normalize() NormalizedOrder {
	tokens := SplitFileNames(o.FileNames)
	documents := make([]AttachedFile, 0, len(tokens))
	lineItems := make([]AttachedFile, 0, len(tokens))
	quantitySum := 0
	for _, token := range tokens {
		if IsLineItem(token) {
			lineItems = append(lineItems, AttachedFile{Name: token})
			quantitySum += LineItemQuantity(token)
		} else {
			documents = append(documents, AttachedFile{Name: token})
		}
	}

	totalPages := o.TotalPages
	if o.PrintType == PrintTypeStationery {
		totalPages = quantitySum
	}

	return NormalizedOrder{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserEmail:     o.UserEmail,
		PrintType:     o.PrintType,
		SideOption:    o.SideOption,
		SpiralBinding: o.SpiralBinding,
		TotalPages:    totalPages,
		TotalCost:     o.TotalCost,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		AttachedFiles: append(documents, lineItems...),
	}
}
