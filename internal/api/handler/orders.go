package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/stockly-api/internal/domain"
	"github.com/vfg2006/stockly-api/internal/usecases/ordering"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
	"github.com/vfg2006/stockly-api/pkg/log"
)

func CreateOrder(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		var req domain.CreateOrderRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		order, err := service.CreateOrder(r.Context(), owner, &req)
		if err != nil {
			handleOrderError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, order)
	}
}

func UpdateOrder(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		orderID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req domain.UpdateOrderRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		order, err := service.UpdateOrder(r.Context(), owner, orderID, &req)
		if err != nil {
			handleOrderError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, order)
	}
}

func ChangeOrderStatus(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		orderID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req domain.ChangeOrderStatusRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		order, err := service.ChangeStatus(r.Context(), owner, orderID, req.Status)
		if err != nil {
			handleOrderError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, order)
	}
}

func DeleteOrder(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		orderID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := service.DeleteOrder(r.Context(), owner, orderID); err != nil {
			handleOrderError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"message": "Pedido removido com sucesso",
			"id":      orderID,
		})
	}
}

func GetOrder(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		orderID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		order, err := service.GetOrder(r.Context(), owner, orderID)
		if err != nil {
			handleOrderError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, order)
	}
}

func ListOrders(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		var status *string
		if raw := r.URL.Query().Get("status"); raw != "" {
			status = &raw
		}

		orders, err := service.ListOrders(r.Context(), owner, status)
		if err != nil {
			handleOrderError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, orders)
	}
}

// handleOrderError converte OrderError no formato padrão da API
func handleOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var orderErr *ordering.OrderError
	if errors.As(err, &orderErr) {
		switch {
		case errors.Is(err, ordering.ErrConflict):
			log.ForContext(r.Context()).WithError(err).Warn("Conflito de concorrência ao processar pedido")
			apiErrors.WriteError(w, orderErr.Code, "Conflito de concorrência, tente novamente", nil)
		case orderErr.Kind == apiErrors.KindInternal:
			log.ForContext(r.Context()).WithError(err).Error("Erro ao processar pedido")
			apiErrors.WriteError(w, orderErr.Code, "Erro interno ao processar pedido", nil)
		default:
			var details any
			if orderErr.Details != "" {
				details = orderErr.Details
			}
			apiErrors.WriteError(w, orderErr.Code, orderErr.Err.Error(), details)
		}
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro inesperado ao processar pedido")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar pedido", nil)
}
