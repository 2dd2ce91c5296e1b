package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stockly-api/internal/config"
	"github.com/vfg2006/stockly-api/internal/domain"
	"github.com/vfg2006/stockly-api/internal/usecases/authenticating"
	"github.com/vfg2006/stockly-api/internal/usecases/ordering"
	"github.com/vfg2006/stockly-api/pkg/middleware"
)

type rejectingAuth struct {
	authenticating.Authenticator
}

func (rejectingAuth) ValidateToken(string) (*domain.Claims, error) {
	return nil, errors.New("token inválido")
}

type noOrders struct {
	ordering.Orderer
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newTestHandler(db pinger) http.Handler {
	cfg := &config.Config{Server: config.Server{AllowedOrigins: []string{"http://localhost:8081"}}}
	return NewHandler(cfg, Services{
		Authenticator: rejectingAuth{},
		Orders:        noOrders{},
		Database:      db,
	})
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		db         pinger
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Healthcheck é público",
			method:     http.MethodGet,
			path:       "/healthcheck",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Healthcheck reporta banco indisponível",
			method:     http.MethodGet,
			path:       "/healthcheck",
			db:         pinger{err: errors.New("conexão recusada")},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "Rota protegida sem token responde 401",
			method:     http.MethodGet,
			path:       "/v1/orders",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Método não suportado responde 405",
			method:     http.MethodPost,
			path:       "/healthcheck",
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "VAL_005",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestHandler(tt.db).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.CorrelationHeader))
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
		})
	}
}

func TestNewHandler_ReaproveitaCorrelationID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(middleware.CorrelationHeader, "req-123")
	rec := httptest.NewRecorder()

	newTestHandler(pinger{}).ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(middleware.CorrelationHeader))
}

func TestNew_ExigeServicosObrigatorios(t *testing.T) {
	_, err := New(&config.Config{}, Services{})
	require.Error(t, err)
}
