package handler

import (
	"net/http"

	"github.com/vfg2006/stockly-api/internal/api/handler/router"
	"github.com/vfg2006/stockly-api/internal/usecases/authenticating"
	"github.com/vfg2006/stockly-api/internal/usecases/catalog"
	"github.com/vfg2006/stockly-api/internal/usecases/ordering"
	"github.com/vfg2006/stockly-api/internal/usecases/reporting"
	"github.com/vfg2006/stockly-api/pkg/middleware"
)

var ownerOnly = []func(http.Handler) http.Handler{middleware.RequireOwner()}

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodPut,
			Handler:     UpdateMe(service),
			Middlewares: ownerOnly,
		},
	}
}

func Orders(service ordering.Orderer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/orders",
			Method:      http.MethodGet,
			Handler:     ListOrders(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/orders",
			Method:      http.MethodPost,
			Handler:     CreateOrder(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/orders/:id",
			Method:      http.MethodGet,
			Handler:     GetOrder(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/orders/:id",
			Method:      http.MethodPut,
			Handler:     UpdateOrder(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/orders/:id/status",
			Method:      http.MethodPut,
			Handler:     ChangeOrderStatus(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/orders/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteOrder(service),
			Middlewares: ownerOnly,
		},
	}
}

func Catalog(service catalog.Cataloger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/products",
			Method:      http.MethodGet,
			Handler:     ListProducts(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/products",
			Method:      http.MethodPost,
			Handler:     CreateProduct(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodGet,
			Handler:     GetProduct(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/clients",
			Method:      http.MethodGet,
			Handler:     ListClients(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/clients",
			Method:      http.MethodPost,
			Handler:     CreateClient(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodGet,
			Handler:     GetClient(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodPut,
			Handler:     UpdateClient(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteClient(service),
			Middlewares: ownerOnly,
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/revenue",
			Method:      http.MethodGet,
			Handler:     GetRevenue(service),
			Middlewares: ownerOnly,
		},
	}
}

// CronJobs expõe as jobs globais somente aos operadores
func CronJobs(services CronJobServices, operatorIDs []int64) []router.Route {
	operatorOnly := []func(http.Handler) http.Handler{
		middleware.RequireOwner(),
		middleware.OperatorOnly(operatorIDs),
	}

	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: operatorOnly,
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: operatorOnly,
		},
	}
}
