package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/prospera-app/prospera-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupExportService() (*ExportService, *testutil.MockAccountRepository, *testutil.MockExportRepository) {
	accountRepo := testutil.NewMockAccountRepository()
	itemRepo := testutil.NewMockItemRepository()
	revisionRepo := testutil.NewMockRevisionRepository()
	forecastService := NewForecastService(accountRepo, itemRepo, revisionRepo, 16, time.Minute)
	exportRepo := testutil.NewMockExportRepository()
	service := NewExportService(forecastService, exportRepo)
	return service, accountRepo, exportRepo
}

func TestExportForecast_WritesCSV(t *testing.T) {
	service, accountRepo, exportRepo := setupExportService()

	accountRepo.AddAccount(&domain.Account{
		Name:           "Checking",
		Template:       domain.TemplateChecking,
		AccountType:    domain.AccountTypeAsset,
		InitialBalance: decimal.NewFromInt(1000),
	})

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	result, err := service.ExportForecast(context.Background(), start, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Rows)
	assert.Contains(t, result.Key, "forecasts/2024-01-01_3d_")
	assert.Contains(t, result.DownloadURL, result.Key)

	data, ok := exportRepo.Objects[result.Key]
	require.True(t, ok, "export object not stored")

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4) // header + 3 days x 1 account
	assert.Equal(t, "date,account,balance,inflow,outflow,had_activity", lines[0])
	assert.Equal(t, "2024-01-01,Checking,1000.00,0.00,0.00,false", lines[1])
}

func TestExportForecast_StorageNotConfigured(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	forecastService := NewForecastService(accountRepo, testutil.NewMockItemRepository(), testutil.NewMockRevisionRepository(), 16, time.Minute)
	service := NewExportService(forecastService, nil)

	_, err := service.ExportForecast(context.Background(), time.Now(), 10)
	assert.ErrorIs(t, err, ErrExportUnavailable)
}

func TestExportForecast_PropagatesStorageError(t *testing.T) {
	service, accountRepo, exportRepo := setupExportService()

	accountRepo.AddAccount(&domain.Account{
		Name:           "Checking",
		Template:       domain.TemplateChecking,
		AccountType:    domain.AccountTypeAsset,
		InitialBalance: decimal.NewFromInt(100),
	})
	exportRepo.PutErr = assert.AnError

	_, err := service.ExportForecast(context.Background(), time.Now(), 5)
	assert.ErrorIs(t, err, assert.AnError)
}
