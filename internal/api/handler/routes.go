package handler

import (
	"net/http"

	"github.com/blushsalon/retention-api/internal/api/handler/router"
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

func Analysis(services AnalysisServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analysis",
			Method:  http.MethodPost,
			Handler: CreateAnalysis(services),
		},
		{
			Path:    "/v1/analysis/:id",
			Method:  http.MethodGet,
			Handler: GetAnalysis(services),
		},
		{
			Path:    "/v1/analysis/:id/customers",
			Method:  http.MethodGet,
			Handler: GetAnalysisCustomers(services),
		},
		{
			Path:    "/v1/analysis/:id/stylists",
			Method:  http.MethodGet,
			Handler: GetAnalysisStylists(services),
		},
		{
			Path:    "/v1/analysis/:id/segments",
			Method:  http.MethodGet,
			Handler: GetAnalysisSegments(services),
		},
		{
			Path:    "/v1/analysis/:id/stylists/:name/top-customers",
			Method:  http.MethodGet,
			Handler: GetTopCustomers(services),
		},
	}
}

func Export(services ExportServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analysis/:id/whatsapp-export",
			Method:  http.MethodGet,
			Handler: ExportWhatsAppList(services),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
