package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stockly-api/internal/domain"
	"github.com/vfg2006/stockly-api/internal/usecases/reporting"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
)

type fakeReporter struct {
	gotYear int
}

func (f *fakeReporter) Dashboard(context.Context, int64) (*domain.Dashboard, error) {
	return &domain.Dashboard{
		TotalProducts:       4,
		PendingOrders:       2,
		CurrentMonthRevenue: decimal.RequireFromString("120.00"),
		LastMonthRevenue:    decimal.Zero,
	}, nil
}

func (f *fakeReporter) RevenueByYear(_ context.Context, _ int64, year int) ([]*domain.MonthlyRevenue, error) {
	f.gotYear = year
	if year < 1 || year > 9999 {
		return nil, reporting.ErrInvalidYear
	}
	return []*domain.MonthlyRevenue{
		{ID: 1, Period: domain.Period{Year: year, Month: time.March}, Revenue: decimal.RequireFromString("80")},
	}, nil
}

func TestGetRevenue(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantYear   int
		wantCode   string
	}{
		{
			name:       "Deve usar o ano informado",
			target:     "/v1/revenue?year=2024",
			wantStatus: http.StatusOK,
			wantYear:   2024,
		},
		{
			name:       "Sem parâmetro usa o ano corrente",
			target:     "/v1/revenue",
			wantStatus: http.StatusOK,
			wantYear:   time.Now().UTC().Year(),
		},
		{
			name:       "Ano não numérico é rejeitado",
			target:     "/v1/revenue?year=dois-mil",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidYear,
		},
		{
			name:       "Ano fora do intervalo é rejeitado pelo serviço",
			target:     "/v1/revenue?year=0",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidYear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeReporter{}

			rec := serve(Reports(service), http.MethodGet, tt.target, "", ownerClaims())

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
				return
			}

			assert.Equal(t, tt.wantYear, service.gotYear)
			var rows []domain.MonthlyRevenue
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
			require.Len(t, rows, 1)
			assert.Equal(t, time.March, rows[0].Period.Month)
		})
	}
}

func TestGetDashboard(t *testing.T) {
	rec := serve(Reports(&fakeReporter{}), http.MethodGet, "/v1/dashboard", "", ownerClaims())

	require.Equal(t, http.StatusOK, rec.Code)

	var dashboard domain.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))
	assert.Equal(t, int64(2), dashboard.PendingOrders)
	assert.True(t, decimal.RequireFromString("120").Equal(dashboard.CurrentMonthRevenue))
}
