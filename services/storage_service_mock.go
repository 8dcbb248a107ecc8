package services

import (
	"fmt"
	"sync"
)

// MockStorageService is an in-memory StorageInterface for testing
type MockStorageService struct {
	objects map[string][]byte // stored filename -> content
	mu      sync.RWMutex

	// FailUploads makes every upload return an error, for exercising the
	// ingestion rollback path
	FailUploads bool
}

// NewMockStorageService creates a new mock storage service
func NewMockStorageService() *MockStorageService {
	return &MockStorageService{
		objects: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global storage service instance
func (m *MockStorageService) SetAsMockForTesting() {
	SetStorageService(m)
}

// UploadOrderFile simulates storing a print file
func (m *MockStorageService) UploadOrderFile(content []byte, originalName, orderNumber string) (string, error) {
	if m.FailUploads {
		return "", fmt.Errorf("mock storage: upload failed for %s", originalName)
	}

	fileName := OrderFileName(originalName, orderNumber)
	m.mu.Lock()
	m.objects[fileName] = content
	m.mu.Unlock()

	return fileName, nil
}

// UploadProductImage simulates storing a product image
func (m *MockStorageService) UploadProductImage(content []byte, originalName string) (string, error) {
	if m.FailUploads {
		return "", fmt.Errorf("mock storage: upload failed for %s", originalName)
	}

	key := "stationery/mock_" + originalName
	m.mu.Lock()
	m.objects[key] = content
	m.mu.Unlock()

	return "https://test-bucket.s3.ap-south-1.amazonaws.com/" + key, nil
}

// GetPresignedURL simulates generating a short-lived retrieval link
func (m *MockStorageService) GetPresignedURL(fileName string) (string, error) {
	if fileName == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.objects[fileName]
	m.mu.RUnlock()
	if !exists {
		return "", fmt.Errorf("file not found in mock storage: %s", fileName)
	}

	return fmt.Sprintf("https://test-bucket.s3.ap-south-1.amazonaws.com/%s?mock=true", fileName), nil
}

// DeleteOrderFile simulates removing a stored file
func (m *MockStorageService) DeleteOrderFile(fileName string) error {
	if fileName == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.objects, fileName)
	m.mu.Unlock()

	return nil
}

// FileExists checks if a file exists in mock storage
func (m *MockStorageService) FileExists(fileName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.objects[fileName]
	return exists
}

// StoredFiles returns a copy of the stored objects (for testing assertions)
func (m *MockStorageService) StoredFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make(map[string][]byte, len(m.objects))
	for k, v := range m.objects {
		files[k] = v
	}
	return files
}

// Clear removes all files from mock storage
func (m *MockStorageService) Clear() {
	m.mu.Lock()
	m.objects = make(map[string][]byte)
	m.mu.Unlock()
}
