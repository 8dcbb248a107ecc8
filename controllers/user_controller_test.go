package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/vinayak3788/mvps-print-api/middleware"
	"github.com/vinayak3788/mvps-print-api/models"
	"github.com/vinayak3788/mvps-print-api/tests/testutil"
)

func setupUserRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/ensure-user", EnsureUser)
		api.GET("/get-role", GetRole)
		api.GET("/get-profile", GetProfile)
		api.POST("/update-profile", UpdateProfile)
	}
	admin := api.Group("/admin")
	{
		admin.GET("/users", ListUsers)
		admin.POST("/update-role", UpdateRole)
		admin.POST("/block-user", BlockUser)
		admin.POST("/unblock-user", UnblockUser)
		admin.DELETE("/delete-user", DeleteUser)
	}
	return router, db
}

func TestEnsureUserEndpoint(t *testing.T) {
	router, db := setupUserRouter(t)

	w := performJSON(router, "POST", "/api/ensure-user", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Role    string `json:"role"`
		Blocked bool   `json:"blocked"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user", resp.Role)
	assert.False(t, resp.Blocked)

	// Repeat call is idempotent
	w = performJSON(router, "POST", "/api/ensure-user", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// The designated owner account comes up as a protected admin
	w = performJSON(router, "POST", "/api/ensure-user", gin.H{"email": "owner@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp.Role)

	// Malformed email
	w = performJSON(router, "POST", "/api/ensure-user", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRoleEndpoint(t *testing.T) {
	router, _ := setupUserRouter(t)

	w := performJSON(router, "POST", "/api/ensure-user", gin.H{"email": "owner@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "GET", "/api/get-role?email=owner@example.com", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)

	// Unknown accounts default to plain user
	w = performRequest(router, "GET", "/api/get-role?email=nobody@x.com", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"user"`)

	w = performRequest(router, "GET", "/api/get-role", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBlockProtectedAdminEndpoint(t *testing.T) {
	router, db := setupUserRouter(t)

	w := performJSON(router, "POST", "/api/ensure-user", gin.H{"email": "owner@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, "POST", "/api/admin/block-user", gin.H{"email": "owner@example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "PROTECTED_ADMIN")

	var user models.User
	assert.NoError(t, db.Where("email = ?", "owner@example.com").First(&user).Error)
	assert.False(t, user.Blocked)
	assert.Equal(t, "admin", user.Role)
}

func TestBlockUnblockDeleteEndpoints(t *testing.T) {
	router, db := setupUserRouter(t)

	w := performJSON(router, "POST", "/api/ensure-user", gin.H{"email": "b@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, "POST", "/api/admin/block-user", gin.H{"email": "b@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	var user models.User
	assert.NoError(t, db.Where("email = ?", "b@x.com").First(&user).Error)
	assert.True(t, user.Blocked)

	w = performJSON(router, "POST", "/api/admin/unblock-user", gin.H{"email": "b@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, db.Where("email = ?", "b@x.com").First(&user).Error)
	assert.False(t, user.Blocked)

	w = performJSON(router, "DELETE", "/api/admin/delete-user", gin.H{"email": "b@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	var count int64
	db.Model(&models.User{}).Where("email = ?", "b@x.com").Count(&count)
	assert.Equal(t, int64(0), count)

	// Acting on a missing user reports not found
	w = performJSON(router, "POST", "/api/admin/block-user", gin.H{"email": "b@x.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRoleEndpoint(t *testing.T) {
	router, db := setupUserRouter(t)

	w := performJSON(router, "POST", "/api/ensure-user", gin.H{"email": "b@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, "POST", "/api/admin/update-role", gin.H{"email": "b@x.com", "role": "admin"})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	assert.NoError(t, db.Where("email = ?", "b@x.com").First(&user).Error)
	assert.Equal(t, "admin", user.Role)

	w = performJSON(router, "POST", "/api/admin/update-role", gin.H{"email": "b@x.com", "role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfileEndpoint(t *testing.T) {
	router, _ := setupUserRouter(t)

	w := performJSON(router, "POST", "/api/ensure-user", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	// mobileVerified arrives as the string "1" from older clients
	w = performJSON(router, "POST", "/api/update-profile", gin.H{
		"email":          "a@x.com",
		"firstName":      "Asha",
		"lastName":       "Rao",
		"mobileNumber":   "9876543210",
		"mobileVerified": "1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "GET", "/api/get-profile?email=a@x.com", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Profile struct {
			FirstName      string `json:"firstName"`
			MobileNumber   *int64 `json:"mobileNumber"`
			MobileVerified bool   `json:"mobileVerified"`
		} `json:"profile"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Asha", resp.Profile.FirstName)
	if assert.NotNil(t, resp.Profile.MobileNumber) {
		assert.Equal(t, int64(9876543210), *resp.Profile.MobileNumber)
	}
	assert.True(t, resp.Profile.MobileVerified)
}

func TestAdminRouteRoleCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.SetupTestDB(t)

	db.Create(&models.User{Email: "admin@x.com", Role: models.RoleAdmin})
	db.Create(&models.User{Email: "user@x.com", Role: models.RoleUser})

	newRouter := func(email string) *gin.Engine {
		router := gin.New()
		router.GET("/api/admin/users",
			func(c *gin.Context) { testutil.SetMockAuthContext(c, email) },
			middleware.RequireAdmin(),
			ListUsers,
		)
		return router
	}

	w := performRequest(newRouter("admin@x.com"), "GET", "/api/admin/users", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user@x.com")

	w = performRequest(newRouter("user@x.com"), "GET", "/api/admin/users", nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestListUsersEndpoint(t *testing.T) {
	router, _ := setupUserRouter(t)

	for _, email := range []string{"b@x.com", "a@x.com"} {
		w := performJSON(router, "POST", "/api/ensure-user", gin.H{"email": email})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := performRequest(router, "GET", "/api/admin/users", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"users"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if assert.Len(t, resp.Users, 2) {
		assert.Equal(t, "a@x.com", resp.Users[0].Email)
		assert.Equal(t, "b@x.com", resp.Users[1].Email)
	}
}
