package models

// ============================================
// Image DTOs
// ============================================

type UploadURLRequest struct {
	UserID      string `json:"userId" binding:"required,notblank,userid"`
	Filename    string `json:"filename" binding:"required,notblank,max=255"`
	ContentType string `json:"contentType" binding:"required,oneof=image/jpeg image/jpg image/png image/gif image/webp image/svg+xml"`
}

type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ImageID   string `json:"imageId"`
	S3Key     string `json:"s3Key"`
	ExpiresIn int    `json:"expiresIn"`
}

type DownloadURLQuery struct {
	UserID  string `form:"userId" binding:"required,notblank,userid"`
	ImageID string `form:"imageId" binding:"required,notblank,imageid"`
}

type DownloadURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
	S3Key       string `json:"s3Key"`
	ExpiresIn   int    `json:"expiresIn"`
}
