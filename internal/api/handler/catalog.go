package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/stockly-api/internal/domain"
	"github.com/vfg2006/stockly-api/internal/usecases/catalog"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
	"github.com/vfg2006/stockly-api/pkg/log"
)

func CreateProduct(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		var req domain.CreateProductRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		product, err := service.CreateProduct(r.Context(), owner, &req)
		if err != nil {
			handleCatalogError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, product)
	}
}

func GetProduct(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		productID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		product, err := service.GetProduct(r.Context(), owner, productID)
		if err != nil {
			handleCatalogError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, product)
	}
}

func ListProducts(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		products, err := service.ListProducts(r.Context(), owner)
		if err != nil {
			handleCatalogError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, products)
	}
}

func CreateClient(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		var req domain.CreateClientRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		client, err := service.CreateClient(r.Context(), owner, &req)
		if err != nil {
			handleCatalogError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, client)
	}
}

func GetClient(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		clientID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		client, err := service.GetClient(r.Context(), owner, clientID)
		if err != nil {
			handleCatalogError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, client)
	}
}

func ListClients(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		clients, err := service.ListClients(r.Context(), owner)
		if err != nil {
			handleCatalogError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, clients)
	}
}

func UpdateClient(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		clientID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req domain.UpdateClientRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		client, err := service.UpdateClient(r.Context(), owner, clientID, &req)
		if err != nil {
			handleCatalogError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, client)
	}
}

func DeleteClient(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		clientID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := service.DeleteClient(r.Context(), owner, clientID); err != nil {
			handleCatalogError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"message": "Cliente removido com sucesso",
			"id":      clientID,
		})
	}
}

func handleCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		apiErrors.WriteError(w, apiErrors.ErrProductNotFound, err.Error(), nil)
	case errors.Is(err, catalog.ErrClientNotFound):
		apiErrors.WriteError(w, apiErrors.ErrClientNotFound, err.Error(), nil)
	case errors.Is(err, catalog.ErrClientHasOrders):
		apiErrors.WriteError(w, apiErrors.ErrClientInUse, "Cliente possui pedidos e não pode ser removido", nil)
	case errors.Is(err, catalog.ErrEmptyClientName):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), []ValidationDetail{{Field: "name", Message: "não pode ser vazio"}})
	case errors.Is(err, catalog.ErrNegativePrice):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), []ValidationDetail{{Field: "price", Message: "deve ser maior ou igual a 0"}})
	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro ao acessar catálogo")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao acessar catálogo", nil)
	}
}
