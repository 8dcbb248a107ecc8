package testutil

import (
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/vinayak3788/mvps-print-api/middleware"
)

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(subject, issuer, email string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Email: email,
		},
	}
}

// SetMockAuthContext injects the context values the JWT middleware would have
// set for an authenticated request
func SetMockAuthContext(c *gin.Context, email string) {
	claims := MockValidatedClaims("auth0|"+email, "https://test.example.com/", email)
	c.Set("user_email", email)
	c.Set("validated_claims", claims)
}
