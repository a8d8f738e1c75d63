package service

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/Marga-Ghale/ora-identity-services/internal/models"
	"github.com/google/uuid"
)

// ============================================
// Image Service
// ============================================

const (
	DefaultPresignExpiry = 15 * time.Minute
	DefaultImageKeyTTL   = 30 * 24 * time.Hour
)

var (
	userIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,128}$`)
	imageIDPattern = regexp.MustCompile(`^([0-9a-fA-F-]{36})(\.[a-zA-Z0-9]+)?$`)
	unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// Presigner produces time-limited URLs for object uploads and downloads.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, metadata map[string]string, expiry time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// KeyIndex remembers the object key issued for an image id. Lookup returns
// "" with a nil error when the id is unknown.
type KeyIndex interface {
	SaveImageKey(ctx context.Context, imageID, key string, ttl time.Duration) error
	LookupImageKey(ctx context.Context, imageID string) (string, error)
}

type ImageService interface {
	GenerateUploadURL(ctx context.Context, req *models.UploadURLRequest) (*models.UploadURLResponse, error)
	GenerateDownloadURL(ctx context.Context, userID, imageID string) (*models.DownloadURLResponse, error)
}

type imageService struct {
	presigner Presigner
	index     KeyIndex
	expiry    time.Duration
	keyTTL    time.Duration
	now       func() time.Time
}

// NewImageService builds the image service. index may be nil. Indexed keys
// expire after keyTTL.
func NewImageService(presigner Presigner, index KeyIndex, expiry, keyTTL time.Duration) ImageService {
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}
	if keyTTL <= 0 {
		keyTTL = DefaultImageKeyTTL
	}
	return &imageService{
		presigner: presigner,
		index:     index,
		expiry:    expiry,
		keyTTL:    keyTTL,
		now:       time.Now,
	}
}

// GenerateUploadURL expects a request that already passed binding
// validation.
func (s *imageService) GenerateUploadURL(ctx context.Context, req *models.UploadURLRequest) (*models.UploadURLResponse, error) {
	imageID := uuid.NewString()
	sanitized := SanitizeFilename(req.Filename)
	key := req.UserID + "/" + imageID
	if ext := fileExtension(sanitized); ext != "" {
		key += "." + ext
	}

	metadata := map[string]string{
		"originalFilename": sanitized,
		"userId":           req.UserID,
		"uploadedAt":       s.now().UTC().Format(time.RFC3339),
	}

	logger.L().Infof("Generating upload URL for user: %s key: %s", req.UserID, key)
	url, err := s.presigner.PresignPut(ctx, key, req.ContentType, metadata, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	if s.index != nil {
		if err := s.index.SaveImageKey(ctx, imageID, key, s.keyTTL); err != nil {
			logger.L().Warnf("Failed to index image key %s: %v", key, err)
		}
	}

	return &models.UploadURLResponse{
		UploadURL: url,
		ImageID:   imageID,
		S3Key:     key,
		ExpiresIn: int(s.expiry.Seconds()),
	}, nil
}

func (s *imageService) GenerateDownloadURL(ctx context.Context, userID, imageID string) (*models.DownloadURLResponse, error) {
	bareID, ok := ParseImageID(imageID)
	if !ok || !ValidUserID(userID) {
		return nil, invalidf("userId and imageId must be valid")
	}

	key := userID + "/" + imageID
	if bareID == imageID && s.index != nil {
		indexed, err := s.index.LookupImageKey(ctx, bareID)
		switch {
		case err != nil:
			logger.L().Warnf("Failed to look up image key for %s: %v", bareID, err)
		case strings.HasPrefix(indexed, userID+"/"):
			key = indexed
		}
	}

	logger.L().Infof("Generating download URL for user: %s key: %s", userID, key)
	url, err := s.presigner.PresignGet(ctx, key, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}

	return &models.DownloadURLResponse{
		DownloadURL: url,
		S3Key:       key,
		ExpiresIn:   int(s.expiry.Seconds()),
	}, nil
}

// ValidUserID reports whether userID is 1-128 letters, digits, '_' or '-'.
func ValidUserID(userID string) bool {
	return userIDPattern.MatchString(userID)
}

// ParseImageID accepts a v4 UUID with an optional extension and returns the
// UUID part.
func ParseImageID(imageID string) (string, bool) {
	m := imageIDPattern.FindStringSubmatch(imageID)
	if m == nil {
		return "", false
	}
	id, err := uuid.Parse(m[1])
	if err != nil || id.Version() != 4 {
		return "", false
	}
	return m[1], true
}

// SanitizeFilename drops any directory part and replaces characters outside
// [a-zA-Z0-9._-] with '_'.
func SanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == "/" {
		base = ""
	}
	return unsafeFilename.ReplaceAllString(base, "_")
}

func fileExtension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i <= 0 || i == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}
