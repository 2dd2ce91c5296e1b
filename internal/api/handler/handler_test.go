package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stockly-api/internal/api/handler/router"
	"github.com/vfg2006/stockly-api/internal/domain"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
	"github.com/vfg2006/stockly-api/pkg/middleware"
)

const testOwner int64 = 7

// serve executa a requisição pelo router real, com as claims já no contexto
func serve(routes []router.Route, method, target, body string, claims *domain.Claims) *httptest.ResponseRecorder {
	rt := router.New(router.WithRoutes(routes...))

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
	}

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func ownerClaims() *domain.Claims {
	return &domain.Claims{UserID: testOwner, UserEmail: "dono@stockly.dev"}
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}
