package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appConfig "github.com/vinayak3788/mvps-print-api/config"
)

// OTPInterface defines the SMS one-time-password provider operations
type OTPInterface interface {
	// SendOTP asks the provider to text a code to a 10-digit mobile number
	// and returns the provider session id used for verification
	SendOTP(mobileNumber string) (string, error)

	// VerifyOTP checks a code against a session and reports whether it matched
	VerifyOTP(sessionID, otp string) (bool, error)
}

// providerResponse is the provider's wire shape for both operations
type providerResponse struct {
	Status  string `json:"Status"`
	Details string `json:"Details"`
	Message string `json:"Message"`
}

// TwoFactorService implements OTPInterface against the 2factor.in REST API
type TwoFactorService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var otpServiceInstance OTPInterface

// InitOTPService initializes the OTP provider client
func InitOTPService() OTPInterface {
	cfg := appConfig.GetConfig()
	otpServiceInstance = &TwoFactorService{
		baseURL: cfg.OTPBaseURL,
		apiKey:  cfg.OTPAPIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	return otpServiceInstance
}

// GetOTPService returns the initialized OTP service instance
func GetOTPService() OTPInterface {
	return otpServiceInstance
}

// SetOTPService sets the OTP service instance (primarily for testing)
func SetOTPService(service OTPInterface) {
	otpServiceInstance = service
}

func (s *TwoFactorService) call(url string) (*providerResponse, error) {
	resp, err := s.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("OTP provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OTP provider response: %w", err)
	}

	var parsed providerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unexpected OTP provider response: %w", err)
	}
	return &parsed, nil
}

// SendOTP triggers an auto-generated code to the given mobile number
func (s *TwoFactorService) SendOTP(mobileNumber string) (string, error) {
	url := fmt.Sprintf("%s/%s/SMS/+91%s/AUTOGEN", s.baseURL, s.apiKey, mobileNumber)
	parsed, err := s.call(url)
	if err != nil {
		return "", err
	}
	if parsed.Status != "Success" {
		if parsed.Message != "" {
			return "", fmt.Errorf("OTP service error: %s", parsed.Message)
		}
		return "", fmt.Errorf("OTP service error")
	}
	// Details holds the session id on success
	return parsed.Details, nil
}

// VerifyOTP checks the code the user typed against the provider session
func (s *TwoFactorService) VerifyOTP(sessionID, otp string) (bool, error) {
	url := fmt.Sprintf("%s/%s/SMS/VERIFY/%s/%s", s.baseURL, s.apiKey, sessionID, otp)
	parsed, err := s.call(url)
	if err != nil {
		return false, err
	}
	if parsed.Status != "Success" {
		if parsed.Message != "" {
			return false, fmt.Errorf("OTP service error: %s", parsed.Message)
		}
		return false, fmt.Errorf("OTP service error")
	}
	return parsed.Details == "OTP Matched", nil
}
