package handler

import (
	"net/http"

	"github.com/blushsalon/retention-api/internal/scheduler"
	"github.com/blushsalon/retention-api/pkg/apiErrors"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// CronJobType define el tipo de cron job que se ejecuta manualmente
const (
	CronJobTypeCleanup = "cleanup"
)

// CronJobServices contiene los servicios de cron disponibles para ejecución manual
type CronJobServices struct {
	AnalysisCleanupService *scheduler.AnalysisCleanupService
}

// RunCronJob ejecuta manualmente un cron job específico
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job no especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeCleanup:
			if services.AnalysisCleanupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Servicio de limpieza de análisis no disponible", nil)
				return
			}
			services.AnalysisCleanupService.TriggerManualPurge()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceptados: cleanup", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciado con éxito",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna el estado de los cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"cleanup": services.AnalysisCleanupService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
