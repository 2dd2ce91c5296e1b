package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
	"github.com/vfg2006/stockly-api/pkg/log"
)

// RequireOwner garante que a rota só roda com um dono autenticado no contexto.
// Todos os dados são isolados por owner_id, então não há papéis.
func RequireOwner() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.UserID <= 0 {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(log.WithOwnerID(r.Context(), claims.UserID)))
		})
	}
}

// OperatorOnly restringe a rota aos donos listados em OPERATOR_IDS.
// Deve rodar depois de RequireOwner.
func OperatorOnly(operatorIDs []int64) func(http.Handler) http.Handler {
	allowed := make(map[int64]bool, len(operatorIDs))
	for _, id := range operatorIDs {
		allowed[id] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !allowed[claims.UserID] {
				log.ForContext(r.Context()).Warnf("Acesso negado a rota de operador para usuário ID=%d", claims.UserID)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
