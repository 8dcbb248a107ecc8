package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vinayak3788/mvps-print-api/services"
)

// EnsureUserRequest is the body of the first-sign-in provisioning call
type EnsureUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// EnsureUser handles POST /api/ensure-user - creates the account row on
// first sign-in and returns its role
func EnsureUser(c *gin.Context) {
	var req EnsureUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Valid email required.")
		return
	}

	user, err := services.EnsureUser(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": user.Role, "blocked": user.Blocked})
}

// GetRole handles GET /api/get-role?email=
func GetRole(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondValidation(c, "Email required.")
		return
	}

	role, err := services.GetUserRole(email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": role})
}

// UpdateRoleRequest is the body of an admin role change
type UpdateRoleRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

// UpdateRole handles POST /api/admin/update-role
func UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Email and role required.")
		return
	}

	if err := services.UpdateUserRole(req.Email, req.Role); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully."})
}

// EmailRequest carries the single email field used by the block/unblock/
// delete operations
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// BlockUser handles POST /api/admin/block-user
func BlockUser(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Valid email required.")
		return
	}

	if err := services.BlockUser(req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User blocked."})
}

// UnblockUser handles POST /api/admin/unblock-user
func UnblockUser(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Valid email required.")
		return
	}

	if err := services.UnblockUser(req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unblocked."})
}

// DeleteUser handles DELETE /api/admin/delete-user
func DeleteUser(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Valid email required.")
		return
	}

	if err := services.DeleteUser(req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted."})
}

// GetProfile handles GET /api/get-profile?email=
func GetProfile(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondValidation(c, "Email required.")
		return
	}

	profile, err := services.GetProfile(email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile handles POST /api/update-profile - self-service or admin
// profile upsert. The mobileVerified field tolerates true/1/"1".
func UpdateProfile(c *gin.Context) {
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid profile payload.")
		return
	}

	if err := services.UpsertProfile(req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully."})
}

// ListUsers handles GET /api/admin/users - the admin dashboard user table
func ListUsers(c *gin.Context) {
	users, err := services.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
