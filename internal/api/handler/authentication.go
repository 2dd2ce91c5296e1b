package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/stockly-api/internal/domain"
	"github.com/vfg2006/stockly-api/internal/usecases/authenticating"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
	"github.com/vfg2006/stockly-api/pkg/log"
)

func Register(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.RegisterRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		user, err := service.Register(r.Context(), &req)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, user)
	}
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		token, err := service.Login(r.Context(), &req)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		user, err := service.GetUserProfile(r.Context(), owner)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	}
}

func UpdateMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		var req domain.UpdateProfileRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		user, err := service.UpdateProfile(r.Context(), owner, &req)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	}
}

// handleAuthError trata os erros de autenticação e retorna a resposta apropriada
func handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		if apiErrors.KindOf(authErr.Code) == apiErrors.KindInternal {
			log.ForContext(r.Context()).WithError(err).Error("Erro interno de autenticação")
			apiErrors.WriteError(w, authErr.Code, "Erro interno de autenticação", nil)
			return
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro inesperado de autenticação")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao autenticar", nil)
}
