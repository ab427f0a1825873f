package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// ExportRepository defines the interface for export object storage
type ExportRepository interface {
	Put(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// GenerateExportPath creates a unique object path for an exported forecast
func GenerateExportPath(start time.Time, horizonDays int) string {
	filename := fmt.Sprintf("%s_%dd_%s.csv", start.Format("2006-01-02"), horizonDays, uuid.New().String())
	return path.Join("forecasts", filename)
}
