package trade

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/agencydesk/backend/internal/domain/shared"
	"github.com/agencydesk/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// documentKeyPrefix is the object store prefix for order documents
const documentKeyPrefix = "documents"

// maxDocumentSize limits uploaded order documents to 10 MiB
const maxDocumentSize = 10 << 20

// ObjectStorageService defines the object storage operations used for
// order documents. Implemented by the infrastructure layer (S3 or stub).
type ObjectStorageService interface {
	// Upload stores an object under the given key
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// PublicURL returns the publicly reachable URL for a stored object
	PublicURL(storageKey string) string

	// DeleteObject removes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error
}

// DocumentUploadResult describes a stored order document
type DocumentUploadResult struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

// DocumentService stores order-related documents in object storage
type DocumentService struct {
	orderRepo trade.OrderRepository
	storage   ObjectStorageService
	logger    *zap.Logger
	now       func() time.Time
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(orderRepo trade.OrderRepository, storage ObjectStorageService, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		orderRepo: orderRepo,
		storage:   storage,
		logger:    logger,
		now:       time.Now,
	}
}

// Upload stores the file under documents/<name>_<orderID>_<timestamp>.<ext>
// and persists the reference on the order. Re-uploading replaces the order's
// document and removes the previous object. On failure no partial file
// reference is kept.
func (s *DocumentService) Upload(ctx context.Context, orderID uint, fileName, contentType string, data []byte) (*DocumentUploadResult, error) {
	if fileName == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "File name cannot be empty")
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "File is empty")
	}
	if len(data) > maxDocumentSize {
		return nil, shared.NewDomainError(shared.CodeValidation, "File exceeds the maximum allowed size")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	storageKey := s.buildStorageKey(fileName, orderID)
	if err := s.storage.Upload(ctx, storageKey, data, contentType); err != nil {
		s.logger.Error("document upload failed",
			zap.Uint("order_id", orderID),
			zap.String("storage_key", storageKey),
			zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePersistence, "Failed to store document")
	}

	url := s.storage.PublicURL(storageKey)
	prevKey := order.AttachDocument(storageKey, url)
	if err := s.orderRepo.UpdateDocument(ctx, orderID, storageKey, url); err != nil {
		if delErr := s.storage.DeleteObject(ctx, storageKey); delErr != nil {
			s.logger.Warn("orphaned document object left in storage",
				zap.String("storage_key", storageKey),
				zap.Error(delErr))
		}
		s.logger.Error("document reference write failed",
			zap.Uint("order_id", orderID),
			zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePersistence, "Failed to store document")
	}

	if prevKey != "" {
		if err := s.storage.DeleteObject(ctx, prevKey); err != nil {
			s.logger.Warn("stale document object left in storage",
				zap.String("storage_key", prevKey),
				zap.Error(err))
		}
	}

	return &DocumentUploadResult{
		FileName: filepath.Base(storageKey),
		URL:      url,
	}, nil
}

// buildStorageKey derives the object key from the original file name, the
// order ID and the upload timestamp.
func (s *DocumentService) buildStorageKey(fileName string, orderID uint) string {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(filepath.Base(fileName), ext)
	base = sanitizeFileName(base)
	return fmt.Sprintf("%s/%s_%d_%d%s", documentKeyPrefix, base, orderID, s.now().Unix(), ext)
}

// sanitizeFileName keeps object keys to a safe character set
func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "document"
	}
	return b.String()
}
