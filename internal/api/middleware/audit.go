package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/Marga-Ghale/ora-identity-services/internal/repository"
	"github.com/gin-gonic/gin"
)

const auditTimeout = 5 * time.Second

// AuditRecorder writes audit events off the request path and tracks the
// writes still in flight so shutdown can drain them before the store closes.
type AuditRecorder struct {
	repo repository.AuditRepository
	wg   sync.WaitGroup
}

func NewAuditRecorder(repo repository.AuditRepository) *AuditRecorder {
	return &AuditRecorder{repo: repo}
}

// Middleware records every completed POST, PUT and DELETE. Failures are
// logged only.
func (a *AuditRecorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			return
		}

		event := &repository.AuditEvent{
			RequestID:  GetRequestID(c),
			UserID:     GetUserID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			Route:      c.FullPath(),
			Status:     c.Writer.Status(),
			OccurredAt: time.Now().UTC(),
		}

		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
			defer cancel()
			if err := a.repo.Create(ctx, event); err != nil {
				logger.L().Errorw("Failed to record audit event", "error", err, "requestId", event.RequestID, "path", event.Path)
			}
		}()
	}
}

// Wait blocks until every in-flight write has finished or ctx is done.
func (a *AuditRecorder) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
