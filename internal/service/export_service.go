package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/forecast"
	"github.com/prospera-app/prospera-backend/internal/repository/storage"
)

// exportURLExpiry is how long a download link for an export stays valid
const exportURLExpiry = 15 * time.Minute

// ErrExportUnavailable is returned when no export storage is configured
var ErrExportUnavailable = errors.New("export storage not configured")

// ExportService renders a projection to CSV and stores it as a downloadable
// object.
type ExportService struct {
	forecastService *ForecastService
	exportRepo      storage.ExportRepository
}

// NewExportService creates a new ExportService
func NewExportService(forecastService *ForecastService, exportRepo storage.ExportRepository) *ExportService {
	return &ExportService{
		forecastService: forecastService,
		exportRepo:      exportRepo,
	}
}

// ExportResult describes a stored forecast export
type ExportResult struct {
	Key         string `json:"key"`
	DownloadURL string `json:"downloadUrl"`
	Rows        int    `json:"rows"`
}

// ExportForecast projects the ledger and uploads the result as a CSV with
// one row per account per day.
func (s *ExportService) ExportForecast(ctx context.Context, start time.Time, horizonDays int) (*ExportResult, error) {
	if s.exportRepo == nil {
		return nil, ErrExportUnavailable
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if horizonDays > MaxHorizonDays {
		horizonDays = MaxHorizonDays
	}
	start = forecast.DateUTC(start)

	snapshots, err := s.forecastService.Forecast(start, horizonDays)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast for export: %w", err)
	}

	data, rows, err := renderCSV(snapshots)
	if err != nil {
		return nil, err
	}

	key := storage.GenerateExportPath(start, horizonDays)
	if _, err := s.exportRepo.Put(ctx, key, bytes.NewReader(data), "text/csv", int64(len(data))); err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}

	url, err := s.exportRepo.GeneratePresignedURL(ctx, key, exportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download URL: %w", err)
	}

	return &ExportResult{Key: key, DownloadURL: url, Rows: rows}, nil
}

// renderCSV flattens snapshots into one row per account per day. Account
// columns are sorted by name so output is stable across runs.
func renderCSV(snapshots []domain.DaySnapshot) ([]byte, int, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "account", "balance", "inflow", "outflow", "had_activity"}
	if err := w.Write(header); err != nil {
		return nil, 0, fmt.Errorf("failed to write CSV header: %w", err)
	}

	rows := 0
	for _, snapshot := range snapshots {
		names := make([]string, 0, len(snapshot.Accounts))
		for name := range snapshot.Accounts {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			day := snapshot.Accounts[name]
			record := []string{
				snapshot.Date.Format(time.DateOnly),
				name,
				day.Balance.StringFixed(2),
				day.TotalInflow.StringFixed(2),
				day.TotalOutflow.StringFixed(2),
				fmt.Sprintf("%t", day.HadActivity),
			}
			if err := w.Write(record); err != nil {
				return nil, 0, fmt.Errorf("failed to write CSV row: %w", err)
			}
			rows++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), rows, nil
}
