package services

import (
	"fmt"
	"sync"
)

// MockOTPService is an in-memory OTPInterface for testing
type MockOTPService struct {
	sessions map[string]string // session id -> expected otp
	nextID   int
	mu       sync.Mutex

	// FailRequests makes every provider call return an error
	FailRequests bool
}

// NewMockOTPService creates a new mock OTP service
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{
		sessions: make(map[string]string),
	}
}

// SetAsMockForTesting sets this mock as the global OTP service instance
func (m *MockOTPService) SetAsMockForTesting() {
	SetOTPService(m)
}

// SendOTP creates a session that accepts the fixed code "123456"
func (m *MockOTPService) SendOTP(mobileNumber string) (string, error) {
	if m.FailRequests {
		return "", fmt.Errorf("mock otp: provider unavailable")
	}

	m.mu.Lock()
	m.nextID++
	sessionID := fmt.Sprintf("mock-session-%d", m.nextID)
	m.sessions[sessionID] = "123456"
	m.mu.Unlock()

	return sessionID, nil
}

// VerifyOTP checks the code against the mock session
func (m *MockOTPService) VerifyOTP(sessionID, otp string) (bool, error) {
	if m.FailRequests {
		return false, fmt.Errorf("mock otp: provider unavailable")
	}

	m.mu.Lock()
	expected, exists := m.sessions[sessionID]
	m.mu.Unlock()

	if !exists {
		return false, fmt.Errorf("mock otp: unknown session %s", sessionID)
	}
	return otp == expected, nil
}
