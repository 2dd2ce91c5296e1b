package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/stockly-api/internal/usecases/reporting"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
	"github.com/vfg2006/stockly-api/pkg/log"
)

func GetDashboard(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		dashboard, err := service.Dashboard(r.Context(), owner)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("owner_id", owner).Error("Erro ao montar painel")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar painel", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, dashboard)
	}
}

// GetRevenue lista o faturamento mensal do ano informado em ?year=; sem parâmetro usa o ano atual
func GetRevenue(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		year := time.Now().UTC().Year()
		if raw := r.URL.Query().Get("year"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidYear, "Ano inválido", map[string]any{"year": raw})
				return
			}
			year = parsed
		}

		rows, err := service.RevenueByYear(r.Context(), owner, year)
		if err != nil {
			if errors.Is(err, reporting.ErrInvalidYear) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidYear, err.Error(), map[string]any{"year": year})
				return
			}
			log.ForContext(r.Context()).WithError(err).WithField("owner_id", owner).Error("Erro ao buscar faturamento")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar faturamento", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, rows)
	}
}
