package services

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	appConfig "github.com/vinayak3788/mvps-print-api/config"
)

// stationeryFolder holds product images, separate from print uploads
const stationeryFolder = "stationery"

// signedURLTTL bounds how long a retrieval link stays valid
const signedURLTTL = 60 * time.Second

// StorageInterface defines the object storage operations the pipelines need.
// Print files are keyed "{orderNumber}_{base}.{ext}" so the key can be
// re-derived from the order row alone; product images get random keys.
type StorageInterface interface {
	UploadOrderFile(content []byte, originalName, orderNumber string) (string, error)
	UploadProductImage(content []byte, originalName string) (string, error)
	GetPresignedURL(fileName string) (string, error)
	DeleteOrderFile(fileName string) error
}

// StorageService implements StorageInterface on AWS S3
type StorageService struct {
	client *s3.Client
	bucket string
	folder string
	region string
}

var storageServiceInstance StorageInterface

// InitStorageService initializes the storage service with AWS credentials
func InitStorageService() (StorageInterface, error) {
	cfg := appConfig.GetConfig()
	if cfg.AWSS3Bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET_NAME is missing in environment")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	storageServiceInstance = &StorageService{
		client: s3.NewFromConfig(awsConfig),
		bucket: cfg.AWSS3Bucket,
		folder: cfg.AWSBucketFolder,
		region: cfg.AWSRegion,
	}

	return storageServiceInstance, nil
}

// GetStorageService returns the initialized storage service instance
func GetStorageService() StorageInterface {
	return storageServiceInstance
}

// SetStorageService sets the storage service instance (primarily for testing)
func SetStorageService(service StorageInterface) {
	storageServiceInstance = service
}

// OrderFileName derives the stored filename for a print upload from the
// order number and the original name. The order row records this name; the
// full key is folder-prefixed at upload and lookup time.
func OrderFileName(originalName, orderNumber string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	return fmt.Sprintf("%s_%s%s", orderNumber, base, ext)
}

func (s *StorageService) orderKey(fileName string) string {
	if s.folder == "" {
		return fileName
	}
	return s.folder + "/" + fileName
}

// UploadOrderFile stores a print file under the order-number key and returns
// the stored filename
func (s *StorageService) UploadOrderFile(content []byte, originalName, orderNumber string) (string, error) {
	fileName := OrderFileName(originalName, orderNumber)

	_, err := s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.orderKey(fileName)),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fileName, nil
}

// UploadProductImage stores a stationery product image under a random key
// and returns its public URL
func (s *StorageService) UploadProductImage(content []byte, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	key := fmt.Sprintf("%s/%s%s", stationeryFolder, uuid.NewString(), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// GetPresignedURL generates a short-lived URL for reading a stored print file
func (s *StorageService) GetPresignedURL(fileName string) (string, error) {
	if fileName == "" {
		return "", nil
	}

	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.orderKey(fileName)),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = signedURLTTL
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}

// DeleteOrderFile removes a stored print file
func (s *StorageService) DeleteOrderFile(fileName string) error {
	if fileName == "" {
		return nil
	}

	_, err := s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.orderKey(fileName)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}
