package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/vinayak3788/mvps-print-api/services"
	"github.com/vinayak3788/mvps-print-api/tests/testutil"
)

// setupControllerTest wires the in-memory database, test configuration and
// mock collaborators, and returns a router with the public API routes
func setupControllerTest(t *testing.T) (*gin.Engine, *gorm.DB, *services.MockStorageService, *services.MockMailerService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	storage := services.NewMockStorageService()
	storage.SetAsMockForTesting()
	mailer := services.NewMockMailerService()
	mailer.SetAsMockForTesting()

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/submit-order", SubmitOrder)
		api.POST("/submit-stationery-order", SubmitStationeryOrder)
		api.POST("/confirm-payment", ConfirmPayment)
		api.GET("/get-orders", GetOrders)
		api.POST("/update-order-status", UpdateOrderStatus)
		api.GET("/get-signed-url", GetSignedURL)
	}
	return router, db, storage, mailer
}

func performRequest(router *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func performJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	return performRequest(router, method, path, bytes.NewBuffer(body), "application/json")
}

// buildPrintOrderForm assembles the multipart body the storefront sends
func buildPrintOrderForm(t *testing.T, fields map[string]string, fileNames []string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		assert.NoError(t, writer.WriteField(key, value))
	}
	for _, name := range fileNames {
		part, err := writer.CreateFormFile("files", name)
		assert.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 test content"))
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSubmitOrderEndpoint(t *testing.T) {
	router, _, storage, _ := setupControllerTest(t)

	body, contentType := buildPrintOrderForm(t, map[string]string{
		"user":       "a@x.com",
		"printType":  "bw",
		"sideOption": "single",
		"totalCost":  "16.00",
		"createdAt":  "2026-08-01T10:00:00Z",
		"pageCounts": "[3,5]",
	}, []string{"notes.pdf", "slides.pdf"})

	w := performRequest(router, "POST", "/api/submit-order", body, contentType)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OrderNumber string  `json:"orderNumber"`
		TotalCost   float64 `json:"totalCost"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ORD0001", resp.OrderNumber)
	assert.Equal(t, 16.00, resp.TotalCost)

	assert.True(t, storage.FileExists("ORD0001_notes.pdf"))
	assert.True(t, storage.FileExists("ORD0001_slides.pdf"))

	// The listing endpoint returns the normalized view
	w = performRequest(router, "GET", "/api/get-orders?email=a@x.com", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Orders []struct {
			OrderNumber   string `json:"orderNumber"`
			TotalPages    int    `json:"totalPages"`
			AttachedFiles []struct {
				Name string `json:"name"`
			} `json:"attachedFiles"`
		} `json:"orders"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	if assert.Len(t, list.Orders, 1) {
		assert.Equal(t, "ORD0001", list.Orders[0].OrderNumber)
		assert.Equal(t, 8, list.Orders[0].TotalPages)
		assert.Len(t, list.Orders[0].AttachedFiles, 2)
	}
}

func TestSubmitOrderRejectsNonPDF(t *testing.T) {
	router, db, _, _ := setupControllerTest(t)

	body, contentType := buildPrintOrderForm(t, map[string]string{
		"user":      "a@x.com",
		"printType": "bw",
		"totalCost": "5.00",
		"createdAt": "2026-08-01T10:00:00Z",
	}, []string{"photo.png"})

	w := performRequest(router, "POST", "/api/submit-order", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	var count int64
	db.Table("orders").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubmitOrderRollbackOnUploadFailure(t *testing.T) {
	router, db, storage, _ := setupControllerTest(t)
	storage.FailUploads = true

	body, contentType := buildPrintOrderForm(t, map[string]string{
		"user":       "a@x.com",
		"printType":  "bw",
		"totalCost":  "5.00",
		"createdAt":  "2026-08-01T10:00:00Z",
		"pageCounts": "[2]",
	}, []string{"notes.pdf"})

	w := performRequest(router, "POST", "/api/submit-order", body, contentType)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "UPSTREAM_ERROR")

	// The provisional row must not survive the failed upload
	var count int64
	db.Table("orders").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubmitStationeryOrderEndpoint(t *testing.T) {
	router, _, _, _ := setupControllerTest(t)

	w := performJSON(router, "POST", "/api/submit-stationery-order", gin.H{
		"user":      "b@x.com",
		"totalCost": 75.00,
		"createdAt": "2026-08-02T09:00:00Z",
		"items": []gin.H{
			{"name": "Gel Pen", "quantity": 3},
			{"name": "Notebook", "quantity": 2},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OrderNumber string  `json:"orderNumber"`
		TotalCost   float64 `json:"totalCost"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ORD0001", resp.OrderNumber)
	assert.Equal(t, 75.00, resp.TotalCost)

	w = performRequest(router, "GET", "/api/get-orders", nil, "")
	var list struct {
		Orders []struct {
			PrintType     string `json:"printType"`
			TotalPages    int    `json:"totalPages"`
			AttachedFiles []struct {
				Name string `json:"name"`
			} `json:"attachedFiles"`
		} `json:"orders"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	if assert.Len(t, list.Orders, 1) {
		// A stationery order's page total is the item quantity sum
		assert.Equal(t, "stationery", list.Orders[0].PrintType)
		assert.Equal(t, 5, list.Orders[0].TotalPages)
		if assert.Len(t, list.Orders[0].AttachedFiles, 2) {
			assert.Equal(t, "Gel Pen × 3", list.Orders[0].AttachedFiles[0].Name)
		}
	}
}

func TestConfirmPaymentEndpoint(t *testing.T) {
	router, _, _, mailer := setupControllerTest(t)

	body, contentType := buildPrintOrderForm(t, map[string]string{
		"user":       "a@x.com",
		"printType":  "color",
		"totalCost":  "42.00",
		"createdAt":  "2026-08-01T10:00:00Z",
		"pageCounts": "[4]",
	}, []string{"report.pdf"})
	w := performRequest(router, "POST", "/api/submit-order", body, contentType)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, "POST", "/api/confirm-payment", gin.H{"orderNumber": "ORD0001"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Confirmation email sent.")

	sent := mailer.Sent()
	if assert.Len(t, sent, 1) {
		assert.Contains(t, sent[0].To, "a@x.com")
		assert.Contains(t, sent[0].Body, "ORD0001")
	}

	// Unknown order
	w = performJSON(router, "POST", "/api/confirm-payment", gin.H{"orderNumber": "ORD9999"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Missing order number
	w = performJSON(router, "POST", "/api/confirm-payment", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	router, db, _, _ := setupControllerTest(t)

	body, contentType := buildPrintOrderForm(t, map[string]string{
		"user":       "a@x.com",
		"printType":  "bw",
		"totalCost":  "5.00",
		"createdAt":  "2026-08-01T10:00:00Z",
		"pageCounts": "[1]",
	}, []string{"page.pdf"})
	w := performRequest(router, "POST", "/api/submit-order", body, contentType)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, "POST", "/api/update-order-status", gin.H{
		"orderId":   1,
		"newStatus": "in process",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var status string
	db.Table("orders").Where("id = ?", 1).Pluck("status", &status)
	assert.Equal(t, "in process", status)

	// Invalid status value
	w = performJSON(router, "POST", "/api/update-order-status", gin.H{
		"orderId":   1,
		"newStatus": "shipped",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown order
	w = performJSON(router, "POST", "/api/update-order-status", gin.H{
		"orderId":   42,
		"newStatus": "in process",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSignedURLEndpoint(t *testing.T) {
	router, _, storage, _ := setupControllerTest(t)

	_, err := storage.UploadOrderFile([]byte("pdf"), "notes.pdf", "ORD0001")
	assert.NoError(t, err)

	w := performRequest(router, "GET", "/api/get-signed-url?filename=ORD0001_notes.pdf", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		URL string `json:"url"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.Contains(resp.URL, "ORD0001_notes.pdf"))

	w = performRequest(router, "GET", "/api/get-signed-url", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
