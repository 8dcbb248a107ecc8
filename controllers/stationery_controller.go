package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vinayak3788/mvps-print-api/services"
	"github.com/vinayak3788/mvps-print-api/utils"
)

// readProductForm pulls the shared add/update fields out of a multipart form
func readProductForm(c *gin.Context) services.ProductInput {
	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)
	discount, _ := strconv.ParseFloat(c.PostForm("discount"), 64)
	quantity, _ := strconv.Atoi(c.PostForm("quantity"))
	return services.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
		Discount:    discount,
		SKU:         c.PostForm("sku"),
		Quantity:    quantity,
	}
}

// readImageUploads validates and reads a named set of uploaded images
func readImageUploads(c *gin.Context, field string) ([]services.ImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	headers := form.File[field]
	images := make([]services.ImageUpload, 0, len(headers))
	for _, fileHeader := range headers {
		if err := utils.ValidateImageFile(fileHeader); err != nil {
			return nil, err
		}
		content, err := utils.ReadUploadedFile(fileHeader)
		if err != nil {
			return nil, err
		}
		images = append(images, services.ImageUpload{Name: fileHeader.Filename, Content: content})
	}
	return images, nil
}

// AddProduct handles POST /api/admin/stationery/add - multipart form with
// product fields, a variants JSON array and variantImages[] files in the
// same order
func AddProduct(c *gin.Context) {
	input := readProductForm(c)

	meta, err := services.ParseVariantMeta(c.PostForm("variants"))
	if err != nil {
		respondError(c, err)
		return
	}

	images, err := readImageUploads(c, "variantImages")
	if err != nil {
		respondValidation(c, err.Error())
		return
	}

	if err := services.AddProduct(input, meta, images); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product added successfully"})
}

// UpdateProduct handles PUT /api/admin/stationery/update/:id - product
// fields plus an existing JSON array of kept image URLs and any new images[]
func UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondValidation(c, "Invalid product id.")
		return
	}

	var kept []string
	if existing := c.PostForm("existing"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &kept); err != nil {
			kept = nil
		}
	}

	images, err := readImageUploads(c, "images")
	if err != nil {
		respondValidation(c, err.Error())
		return
	}

	if err := services.UpdateProduct(uint(id), readProductForm(c), kept, images); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

// DeleteProduct handles DELETE /api/admin/stationery/delete/:id
func DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondValidation(c, "Invalid product id.")
		return
	}

	if err := services.DeleteProduct(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// UpdateProductSKU handles PUT /api/admin/stationery/product/:id/sku
func UpdateProductSKU(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondValidation(c, "Invalid product id.")
		return
	}

	var req struct {
		SKU string `json:"sku" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "SKU required.")
		return
	}

	if err := services.UpdateProductSKU(uint(id), req.SKU); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "SKU updated successfully"})
}

// UpdateProductQuantity handles PUT /api/admin/stationery/product/:id/quantity
func UpdateProductQuantity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondValidation(c, "Invalid product id.")
		return
	}

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondValidation(c, "Quantity required.")
		return
	}

	if err := services.UpdateProductQuantity(uint(id), *req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quantity updated successfully"})
}

// ListProducts handles GET /api/stationery/products - the public storefront
// catalog with the discounted price included
func ListProducts(c *gin.Context) {
	products, err := services.ListProducts()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}
