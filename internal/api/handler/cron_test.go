package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stockly-api/internal/domain"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
)

var operators = []int64{testOwner}

type fakeCronJob struct {
	triggered int
	drifts    []domain.LedgerDrift
}

func (f *fakeCronJob) TriggerManualSync() { f.triggered++ }

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"audit_running": false, "triggered": f.triggered, "drifts": f.drifts}
}

func TestRunCronJob(t *testing.T) {
	t.Run("Deve disparar a auditoria do faturamento", func(t *testing.T) {
		job := &fakeCronJob{}

		rec := serve(CronJobs(CronJobServices{LedgerAudit: job}, operators), http.MethodPost, "/v1/cron/ledger-audit/run", "", ownerClaims())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, job.triggered)
	})

	t.Run("Tipo desconhecido é rejeitado", func(t *testing.T) {
		job := &fakeCronJob{}

		rec := serve(CronJobs(CronJobServices{LedgerAudit: job}, operators), http.MethodPost, "/v1/cron/meta/run", "", ownerClaims())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec).Code)
		assert.Zero(t, job.triggered)
	})

	t.Run("Serviço não configurado é tratado como tipo inválido", func(t *testing.T) {
		rec := serve(CronJobs(CronJobServices{}, operators), http.MethodPost, "/v1/cron/ledger-audit/run", "", ownerClaims())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCronStatus(t *testing.T) {
	rec := serve(CronJobs(CronJobServices{LedgerAudit: &fakeCronJob{triggered: 2}}, operators), http.MethodGet, "/v1/cron/status", "", ownerClaims())

	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, float64(2), status[CronJobTypeLedgerAudit]["triggered"])
}

func TestCronJobs_RestritoAOperadores(t *testing.T) {
	job := &fakeCronJob{drifts: []domain.LedgerDrift{{
		OwnerID:  99,
		Period:   domain.Period{Year: 2026, Month: 10},
		Ledger:   decimal.RequireFromString("1234.56"),
		Expected: decimal.Zero,
	}}}
	routes := CronJobs(CronJobServices{LedgerAudit: job}, operators)
	otherOwner := &domain.Claims{UserID: 1, UserEmail: "outro@stockly.dev"}

	t.Run("Dono comum não vê divergências de outros donos", func(t *testing.T) {
		rec := serve(routes, http.MethodGet, "/v1/cron/status", "", otherOwner)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, apiErrors.ErrInsufficientPrivilege, decodeAPIError(t, rec).Code)
		assert.NotContains(t, rec.Body.String(), "1234.56")
	})

	t.Run("Dono comum não dispara a auditoria global", func(t *testing.T) {
		rec := serve(routes, http.MethodPost, "/v1/cron/ledger-audit/run", "", otherOwner)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Zero(t, job.triggered)
	})

	t.Run("Operador vê o status completo", func(t *testing.T) {
		rec := serve(routes, http.MethodGet, "/v1/cron/status", "", ownerClaims())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "1234.56")
	})

	t.Run("Sem operadores configurados ninguém acessa", func(t *testing.T) {
		rec := serve(CronJobs(CronJobServices{LedgerAudit: job}, nil), http.MethodGet, "/v1/cron/status", "", ownerClaims())

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
