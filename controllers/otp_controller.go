package controllers

import (
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/vinayak3788/mvps-print-api/models"
	"github.com/vinayak3788/mvps-print-api/services"
)

var tenDigits = regexp.MustCompile(`^\d{10}$`)

// SendOTPRequest is the body of an OTP send
type SendOTPRequest struct {
	MobileNumber string `json:"mobileNumber"`
}

// SendOTP handles POST /api/send-otp - asks the SMS provider to text a code
// and returns the verification session id
func SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || !tenDigits.MatchString(req.MobileNumber) {
		respondValidation(c, "Valid 10-digit mobile number required")
		return
	}

	sessionID, err := services.GetOTPService().SendOTP(req.MobileNumber)
	if err != nil {
		log.Printf("OTP send failed for ******%s: %v", req.MobileNumber[6:], err)
		respondError(c, models.UpstreamError("Failed to send OTP."))
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
}

// VerifyOTPRequest is the body of an OTP verification. Email is optional;
// when present and the code matches, the profile is marked mobile-verified.
type VerifyOTPRequest struct {
	SessionID string `json:"sessionId"`
	OTP       string `json:"otp"`
	Email     string `json:"email"`
}

// VerifyOTP handles POST /api/verify-otp
func VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" || req.OTP == "" {
		respondValidation(c, "Session ID and OTP are required")
		return
	}

	matched, err := services.GetOTPService().VerifyOTP(req.SessionID, req.OTP)
	if err != nil {
		log.Printf("OTP verification failed: %v", err)
		respondError(c, models.UpstreamError("Failed to verify OTP."))
		return
	}

	if matched && req.Email != "" {
		if err := services.MarkMobileVerified(req.Email); err != nil {
			// The OTP did match; a missing profile row is not the caller's
			// problem at this point
			log.Printf("Failed to mark mobile verified for %s: %v", req.Email, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"verified": matched})
}
