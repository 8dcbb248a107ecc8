package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vinayak3788/mvps-print-api/config"
	"github.com/vinayak3788/mvps-print-api/models"
)

// VariantMeta is the admin-supplied metadata for one product variant; its
// image arrives as a parallel file upload
type VariantMeta struct {
	Color string `json:"color"`
	SKU   string `json:"sku"`
}

// ParseVariantMeta decodes the serialized variants field of a product form
func ParseVariantMeta(raw string) ([]VariantMeta, error) {
	if raw == "" {
		return nil, nil
	}
	var meta []VariantMeta
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, models.ValidationError("Invalid variants payload.")
	}
	return meta, nil
}

// ImageUpload is one image file of a product form
type ImageUpload struct {
	Name    string
	Content []byte
}

// ProductInput carries the shared fields of add/update product forms
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Discount    float64
	SKU         string
	Quantity    int
}

func (in *ProductInput) validate() error {
	if in.Name == "" || in.Price == 0 || in.SKU == "" {
		return models.ValidationError("Name, Price & SKU are required")
	}
	return nil
}

// AddProduct uploads one image per variant, stores the variant records and
// inserts the product row. The variant image URLs double as the product's
// main image list.
func AddProduct(input ProductInput, meta []VariantMeta, images []ImageUpload) error {
	if err := input.validate(); err != nil {
		return err
	}
	if len(images) < len(meta) {
		return models.ValidationError("Missing image file for a variant.")
	}

	storage := GetStorageService()
	variants := make([]models.ProductVariant, 0, len(meta))
	for i, m := range meta {
		url, err := storage.UploadProductImage(images[i].Content, images[i].Name)
		if err != nil {
			return models.UpstreamError("Failed to store variant image.")
		}
		variants = append(variants, models.ProductVariant{Color: m.Color, SKU: m.SKU, ImageURL: url})
	}

	urls := make([]string, 0, len(variants))
	for _, v := range variants {
		urls = append(urls, v.ImageURL)
	}

	product := models.StationeryProduct{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
		Images:      urls,
		Quantity:    input.Quantity,
		SKU:         input.SKU,
		Variants:    variants,
	}
	if err := config.GetDB().Create(&product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct rewrites a product's fields and image list: the kept URLs
// plus any newly uploaded images, in that order.
func UpdateProduct(id uint, input ProductInput, keptURLs []string, images []ImageUpload) error {
	if err := input.validate(); err != nil {
		return err
	}

	db := config.GetDB()
	var product models.StationeryProduct
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrProductNotFound
		}
		return fmt.Errorf("failed to look up product: %w", err)
	}

	storage := GetStorageService()
	urls := append([]string{}, keptURLs...)
	for _, img := range images {
		url, err := storage.UploadProductImage(img.Content, img.Name)
		if err != nil {
			return models.UpstreamError("Failed to store product image.")
		}
		urls = append(urls, url)
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Discount = input.Discount
	product.Images = urls
	product.SKU = input.SKU
	product.Quantity = input.Quantity
	if err := db.Save(&product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product row
func DeleteProduct(id uint) error {
	result := config.GetDB().Delete(&models.StationeryProduct{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// UpdateProductSKU sets only the SKU of a product
func UpdateProductSKU(id uint, sku string) error {
	return updateProductColumn(id, "sku", sku)
}

// UpdateProductQuantity sets only the quantity on hand of a product
func UpdateProductQuantity(id uint, quantity int) error {
	return updateProductColumn(id, "quantity", quantity)
}

func updateProductColumn(id uint, column string, value interface{}) error {
	result := config.GetDB().Model(&models.StationeryProduct{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// ProductView is a product with its derived effective price
type ProductView struct {
	models.StationeryProduct
	EffectivePrice float64 `json:"effectivePrice"`
}

// ListProducts returns the catalog newest first, with the discounted price
// computed at read time
func ListProducts() ([]ProductView, error) {
	var products []models.StationeryProduct
	if err := config.GetDB().Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, ProductView{
			StationeryProduct: products[i],
			EffectivePrice:    products[i].EffectivePrice(),
		})
	}
	return views, nil
}
