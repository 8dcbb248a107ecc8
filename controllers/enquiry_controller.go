package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vinayak3788/mvps-print-api/config"
	"github.com/vinayak3788/mvps-print-api/models"
	"github.com/vinayak3788/mvps-print-api/services"
)

// EnquiryRequest is the contact-us form payload
type EnquiryRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// SendEnquiry handles POST /api/send-enquiry - mails the enquiry to the
// operator and copies the requester
func SendEnquiry(c *gin.Context) {
	var req EnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "All fields are required.")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Mobile == "" ||
		req.Email == "" || req.Subject == "" || req.Description == "" {
		respondValidation(c, "All fields are required.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s %s</p>", req.FirstName, req.LastName)
	fmt.Fprintf(&b, "<p><strong>Mobile:</strong> %s</p>", req.Mobile)
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", req.Email)
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>", req.Subject)
	description := strings.ReplaceAll(strings.TrimSpace(req.Description), "\n", "<br/>")
	fmt.Fprintf(&b, "<p><strong>Description:</strong><br/>%s</p>", description)

	operator := config.GetConfig().OperatorEmail
	subject := fmt.Sprintf("New Enquiry: %s", req.Subject)
	if err := services.GetMailerService().Send([]string{operator}, req.Email, subject, b.String()); err != nil {
		respondError(c, models.UpstreamError("Failed to send enquiry. Please try again later."))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
