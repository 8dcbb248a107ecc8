package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vinayak3788/mvps-print-api/models"
)

// respondError translates a service error into the standard error envelope.
// Domain errors carry their own code and a user-safe message; anything else
// is logged and reported as an internal failure without details.
func respondError(c *gin.Context, err error) {
	if domainErr, ok := models.AsDomainError(err); ok {
		status := http.StatusInternalServerError
		switch domainErr.Code {
		case models.CodeValidation:
			status = http.StatusBadRequest
		case models.CodeNotFound:
			status = http.StatusNotFound
		case models.CodeProtectedAdmin:
			status = http.StatusForbidden
		case models.CodeUpstream:
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			},
		})
		return
	}

	log.Printf("Internal error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    models.CodeDatabase,
			"message": "Internal server error.",
		},
	})
}

// respondValidation is a shortcut for request-shape failures detected in the
// controller itself
func respondValidation(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    models.CodeValidation,
			"message": message,
		},
	})
}
