package service

import (
	"time"

	"github.com/prospera-app/prospera-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// DashboardService surfaces near-term projected activity for the dashboard's
// upcoming-expenses view.
type DashboardService struct {
	forecastService *ForecastService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(forecastService *ForecastService) *DashboardService {
	return &DashboardService{forecastService: forecastService}
}

// UpcomingDay is one projected day that carries activity
type UpcomingDay struct {
	Date      time.Time                            `json:"date"`
	Inflows   []domain.DayTransaction              `json:"inflows,omitempty"`
	Outflows  []domain.DayTransaction              `json:"outflows,omitempty"`
	NetFlow   decimal.Decimal                      `json:"netFlow"`
	Transfers map[string]domain.TransferAnnotation `json:"transfers,omitempty"`
}

// UpcomingActivity returns the projected days within the next horizonDays
// that have at least one firing item, with quiet days filtered out.
func (s *DashboardService) UpcomingActivity(horizonDays int) ([]UpcomingDay, error) {
	snapshots, err := s.forecastService.ForecastFromToday(horizonDays)
	if err != nil {
		return nil, err
	}

	var upcoming []UpcomingDay
	for _, snapshot := range snapshots {
		if len(snapshot.Inflows) == 0 && len(snapshot.Outflows) == 0 {
			continue
		}

		net := decimal.Zero
		for _, tx := range snapshot.Inflows {
			net = net.Add(tx.Amount)
		}
		for _, tx := range snapshot.Outflows {
			net = net.Sub(tx.Amount)
		}

		upcoming = append(upcoming, UpcomingDay{
			Date:      snapshot.Date,
			Inflows:   snapshot.Inflows,
			Outflows:  snapshot.Outflows,
			NetFlow:   net,
			Transfers: snapshot.Transfers,
		})
	}

	return upcoming, nil
}
