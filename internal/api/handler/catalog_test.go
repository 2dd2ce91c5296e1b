package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stockly-api/internal/domain"
	"github.com/vfg2006/stockly-api/internal/usecases/catalog"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
)

type fakeCataloger struct {
	catalog.Cataloger
	created *domain.CreateProductRequest
	updated *domain.UpdateClientRequest
	owner   int64
	target  int64
	err     error
}

func (f *fakeCataloger) CreateProduct(_ context.Context, ownerID int64, req *domain.CreateProductRequest) (*domain.Product, error) {
	f.created = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Product{ID: 1, OwnerID: ownerID, Name: req.Name, Price: req.Price, Quantity: req.Quantity}, nil
}

func (f *fakeCataloger) GetClient(context.Context, int64, int64) (*domain.Client, error) {
	return nil, f.err
}

func (f *fakeCataloger) UpdateClient(_ context.Context, ownerID, clientID int64, req *domain.UpdateClientRequest) (*domain.Client, error) {
	f.owner, f.target, f.updated = ownerID, clientID, req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Client{ID: clientID, OwnerID: ownerID, Name: *req.Name}, nil
}

func (f *fakeCataloger) DeleteClient(_ context.Context, ownerID, clientID int64) error {
	f.owner, f.target = ownerID, clientID
	return f.err
}

func TestCreateProduct(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Deve criar produto com preço decimal",
			body:       `{"name":"Camiseta","price":"49.90","quantity":10}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Nome obrigatório",
			body:       `{"price":"10","quantity":1}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "Estoque negativo é rejeitado",
			body:       `{"name":"Boné","price":"10","quantity":-1}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "Preço negativo vem do serviço",
			body:       `{"name":"Boné","price":"-1","quantity":1}`,
			serviceErr: catalog.ErrNegativePrice,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeCataloger{err: tt.serviceErr}

			rec := serve(Catalog(service), http.MethodPost, "/v1/products", tt.body, ownerClaims())

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
				return
			}

			require.NotNil(t, service.created)
			assert.True(t, decimal.RequireFromString("49.90").Equal(service.created.Price))
		})
	}
}

func TestGetClient_NaoEncontrado(t *testing.T) {
	service := &fakeCataloger{err: catalog.ErrClientNotFound}

	rec := serve(Catalog(service), http.MethodGet, "/v1/clients/5", "", ownerClaims())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrClientNotFound, decodeAPIError(t, rec).Code)
}

func TestUpdateClient(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Deve atualizar cliente do dono",
			target:     "/v1/clients/5",
			body:       `{"name":"Maria Souza"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Email inválido é rejeitado na validação",
			target:     "/v1/clients/5",
			body:       `{"name":"Maria","email":"sem-arroba"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "Nome vazio é rejeitado na validação",
			target:     "/v1/clients/5",
			body:       `{"name":""}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "Nome em branco vem do serviço",
			target:     "/v1/clients/5",
			body:       `{"name":"   "}`,
			serviceErr: catalog.ErrEmptyClientName,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "Cliente de outro dono",
			target:     "/v1/clients/5",
			body:       `{"name":"Maria"}`,
			serviceErr: catalog.ErrClientNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrClientNotFound,
		},
		{
			name:       "Identificador inválido",
			target:     "/v1/clients/abc",
			body:       `{"name":"Maria"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeCataloger{err: tt.serviceErr}

			rec := serve(Catalog(service), http.MethodPut, tt.target, tt.body, ownerClaims())

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
				return
			}

			assert.Equal(t, testOwner, service.owner)
			assert.Equal(t, int64(5), service.target)
			assert.Contains(t, rec.Body.String(), "Maria Souza")
		})
	}
}

func TestDeleteClient(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
		wantKind   apiErrors.Kind
	}{
		{
			name:       "Deve remover cliente sem pedidos",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Cliente com pedidos responde conflito tipado",
			serviceErr: fmt.Errorf("%w: pq: violates foreign key constraint", catalog.ErrClientHasOrders),
			wantStatus: http.StatusConflict,
			wantCode:   apiErrors.ErrClientInUse,
			wantKind:   apiErrors.KindConflict,
		},
		{
			name:       "Cliente inexistente",
			serviceErr: catalog.ErrClientNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrClientNotFound,
			wantKind:   apiErrors.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeCataloger{err: tt.serviceErr}

			rec := serve(Catalog(service), http.MethodDelete, "/v1/clients/5", "", ownerClaims())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, testOwner, service.owner)
			assert.Equal(t, int64(5), service.target)
			if tt.wantCode != "" {
				apiErr := decodeAPIError(t, rec)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				assert.Equal(t, tt.wantKind, apiErr.Kind)
				assert.NotContains(t, apiErr.Message, "foreign key")
				return
			}

			assert.Contains(t, rec.Body.String(), "Cliente removido com sucesso")
		})
	}
}
