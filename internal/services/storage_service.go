// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/retailx/retailx-backend/internal/config"
)

// UploadsRoute is where locally stored files are served from.
const UploadsRoute = "/uploads"

// allowedImageTypes maps sniffed content types to stored extensions.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// NewStorageService uses S3 when a bucket and credentials are configured
// and the local upload directory otherwise.
func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" || config.AWS.S3Bucket == "" {
		if err := os.MkdirAll(config.Storage.UploadDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
		return &StorageService{config: config}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

func (s *StorageService) UsesS3() bool {
	return s.s3Client != nil
}

func (s *StorageService) maxSize() int64 {
	return int64(s.config.Storage.MaxUploadMB) * 1024 * 1024
}

// UploadProductImage stores an image under products/<seller>/ and returns
// its public URL. The type is sniffed from the content, not the name.
func (s *StorageService) UploadProductImage(ctx context.Context, sellerEmail string, file io.Reader) (*UploadResult, error) {
	fileBytes, err := io.ReadAll(io.LimitReader(file, s.maxSize()+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(fileBytes) == 0 {
		return nil, validationError("file is empty")
	}
	if int64(len(fileBytes)) > s.maxSize() {
		return nil, validationError("file exceeds %d MB", s.config.Storage.MaxUploadMB)
	}

	contentType := http.DetectContentType(fileBytes)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, validationError("file type %s is not allowed", contentType)
	}

	key := s.generateKey(sellerEmail, ext)

	if s.s3Client != nil {
		return s.uploadToS3(ctx, fileBytes, key, contentType)
	}
	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	dst := filepath.Join(s.config.Storage.UploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(dst, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:      strings.TrimRight(s.config.Storage.PublicBaseURL, "/") + path.Join(UploadsRoute, key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

// DeleteFile removes a previously uploaded object. Missing local files are
// not an error.
func (s *StorageService) DeleteFile(ctx context.Context, key string) error {
	if s.s3Client == nil {
		err := os.Remove(filepath.Join(s.config.Storage.UploadDir, filepath.FromSlash(path.Clean("/"+key))))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	logrus.WithField("key", key).Info("Deleted uploaded file")
	return nil
}

func (s *StorageService) generateKey(sellerEmail, ext string) string {
	owner := strings.NewReplacer("@", "_at_", "/", "_", "\\", "_", "..", "_").Replace(sellerEmail)
	if owner == "" {
		owner = "anonymous"
	}

	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("products/%s/%s_%s%s", owner, timestamp, uuid.NewString()[:8], ext)
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.AWS.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}
