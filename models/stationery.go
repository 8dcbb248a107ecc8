package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant is one color/SKU variation of a stationery product
type ProductVariant struct {
	Color    string `json:"color"`
	SKU      string `json:"sku"`
	ImageURL string `json:"imageUrl"`
}

// StationeryProduct is an item in the stationery catalog. Images and variants
// are stored as JSON columns; the discounted price is computed at read time
// and never persisted.
type StationeryProduct struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"not null" json:"name"`
	Description string           `json:"description"`
	Price       float64          `gorm:"not null" json:"price"`
	Discount    float64          `gorm:"not null;default:0" json:"discount"`
	Images      []string         `gorm:"serializer:json" json:"images"`
	Quantity    int              `gorm:"not null;default:0" json:"quantity"`
	SKU         string           `json:"sku"`
	Variants    []ProductVariant `gorm:"serializer:json" json:"variants"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"-"`
}

// TableName specifies the table name for the StationeryProduct model
func (StationeryProduct) TableName() string {
	return "stationery_products"
}

// EffectivePrice applies the discount percentage to the list price, rounded
// to 2 decimals.
func (p *StationeryProduct) EffectivePrice() float64 {
	price := decimal.NewFromFloat(p.Price)
	factor := decimal.NewFromInt(100).Sub(decimal.NewFromFloat(p.Discount)).Div(decimal.NewFromInt(100))
	effective, _ := price.Mul(factor).Round(2).Float64()
	return effective
}
