package services

import (
	"fmt"
	"sync"
)

// SentMail records one delivery made through the mock mailer
type SentMail struct {
	To      []string
	Cc      string
	Subject string
	Body    string
}

// MockMailerService is an in-memory MailerInterface for testing
type MockMailerService struct {
	sent []SentMail
	mu   sync.Mutex

	// FailSends makes every send return an error
	FailSends bool
}

// NewMockMailerService creates a new mock mailer
func NewMockMailerService() *MockMailerService {
	return &MockMailerService{}
}

// SetAsMockForTesting sets this mock as the global mailer instance
func (m *MockMailerService) SetAsMockForTesting() {
	SetMailerService(m)
}

// Send records the message instead of delivering it
func (m *MockMailerService) Send(to []string, cc, subject, htmlBody string) error {
	if m.FailSends {
		return fmt.Errorf("mock mailer: send failed")
	}

	m.mu.Lock()
	m.sent = append(m.sent, SentMail{To: to, Cc: cc, Subject: subject, Body: htmlBody})
	m.mu.Unlock()
	return nil
}

// Sent returns a copy of all recorded deliveries
func (m *MockMailerService) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}
