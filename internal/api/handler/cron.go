package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
	"github.com/vfg2006/stockly-api/pkg/log"
)

// CronJobTypeLedgerAudit identifica a auditoria do faturamento mensal
const CronJobTypeLedgerAudit = "ledger-audit"

// CronJob é um agendamento que também pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron disponíveis para execução manual
type CronJobServices struct {
	LedgerAudit CronJob
}

func (s CronJobServices) byType(cronType string) (CronJob, bool) {
	switch cronType {
	case CronJobTypeLedgerAudit:
		return s.LedgerAudit, s.LedgerAudit != nil
	}
	return nil, false
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		job, ok := services.byType(cronType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: "+CronJobTypeLedgerAudit, nil)
			return
		}

		log.ForContext(r.Context()).Infof("Cron job %s disparada manualmente", cronType)
		job.TriggerManualSync()

		writeJSON(w, r, http.StatusOK, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.LedgerAudit != nil {
			status[CronJobTypeLedgerAudit] = services.LedgerAudit.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
