package handler

import (
	"net/http"

	"github.com/vendalytics/store-analytics-api/internal/api/handler/router"
	"github.com/vendalytics/store-analytics-api/internal/config"
	"github.com/vendalytics/store-analytics-api/internal/usecases/analyzing"
	"github.com/vendalytics/store-analytics-api/internal/usecases/authenticating"
	"github.com/vendalytics/store-analytics-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Analytics(service analyzing.Analyzer, guard *analyzing.StaleGuard, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/analytics/orders",
			Method:      http.MethodGet,
			Handler:     OrdersAnalytics(service, guard, cfg),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analytics/customers",
			Method:      http.MethodGet,
			Handler:     CustomersAnalytics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analytics/products",
			Method:      http.MethodGet,
			Handler:     ProductsAnalytics(service, cfg),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
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
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
