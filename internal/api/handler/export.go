package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/blushsalon/retention-api/infrastructure/spreadsheet"
	"github.com/blushsalon/retention-api/pkg/apiErrors"
	"github.com/blushsalon/retention-api/pkg/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportServices agrupa las dependencias del handler de exportación
type ExportServices struct {
	Analysis AnalysisServices
	Writer   *spreadsheet.Writer
}

// ExportWhatsAppList arma el Excel de contacto por WhatsApp de una corrida.
// Sin min_days en la query aplica el mínimo configurado para exportación.
func ExportWhatsAppList(services ExportServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result := fetchAnalysis(w, r, services.Analysis)
		if result == nil {
			return
		}

		filters, err := parseCustomerFilters(r, services.Analysis.Retention.DefaultMinExportDays)
		if err != nil {
			logger.WithError(err).Warn("export: invalid customer filters")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		customers := services.Analysis.Reporter.FilterCustomers(result.Customers, filters)

		generatedAt := time.Now()
		buffer, err := services.Writer.BuildWhatsAppList(customers, generatedAt)
		if err != nil {
			logger.WithFields(log.Fields{
				"analysis_id": result.ID,
				"error":       err.Error(),
			}).Error("export: failed to build workbook")

			apiErrors.WriteError(w, apiErrors.ErrExportFailure, "Error al generar la lista de WhatsApp", nil)
			return
		}

		logger.WithFields(log.Fields{
			"analysis_id": result.ID,
			"customers":   len(customers),
		}).Info("export: whatsapp list generated")

		filename := fmt.Sprintf("lista_whatsapp_%s.xlsx", generatedAt.Format("20060102_1504"))

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Length", fmt.Sprint(buffer.Len()))

		if _, err := buffer.WriteTo(w); err != nil {
			logger.WithField("analysis_id", result.ID).WithError(err).Error("export: failed to stream workbook")
		}
	})
}
