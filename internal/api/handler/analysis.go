package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/blushsalon/retention-api/infrastructure/repository"
	"github.com/blushsalon/retention-api/infrastructure/spreadsheet"
	"github.com/blushsalon/retention-api/internal/config"
	"github.com/blushsalon/retention-api/internal/domain"
	"github.com/blushsalon/retention-api/internal/usecases/analyzing"
	"github.com/blushsalon/retention-api/internal/usecases/reporting"
	"github.com/blushsalon/retention-api/pkg/apiErrors"
	"github.com/blushsalon/retention-api/pkg/log"
	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxUploadBytes limita el tamaño del archivo de ventas aceptado
const maxUploadBytes = 20 << 20

// uploadFieldName es el campo multipart que transporta el archivo Excel
const uploadFieldName = "file"

// AnalysisServices agrupa las dependencias de los handlers de análisis
type AnalysisServices struct {
	Reader     *spreadsheet.Reader
	Analyzer   analyzing.Analyzer
	Repository repository.AnalysisRepository
	Reporter   reporting.Reporter
	Retention  config.Retention
}

// CreateAnalysis recibe el Excel de ventas, corre el pipeline completo y
// persiste el resultado bajo un identificador de corrida
func CreateAnalysis(services AnalysisServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("analysis: receiving sales dataset upload")

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			logger.WithError(err).Warn("analysis: invalid multipart request")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Request multipart inválido", nil)
			return
		}

		file, header, err := r.FormFile(uploadFieldName)
		if err != nil {
			logger.WithError(err).Warn("analysis: missing upload file field")
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Archivo de ventas ausente en el campo 'file'", nil)
			return
		}
		defer file.Close()

		logger.WithFields(log.Fields{
			"filename": header.Filename,
			"size":     header.Size,
		}).Info("analysis: parsing uploaded workbook")

		records, err := services.Reader.Read(file)
		if err != nil {
			writeDatasetError(w, logger, err)
			return
		}

		result, err := services.Analyzer.Analyze(records, time.Now())
		if err != nil {
			if errors.Is(err, analyzing.ErrEmptyDataset) {
				logger.Warn("analysis: dataset empty after filtering")
				apiErrors.WriteError(w, apiErrors.ErrEmptyDataset, "El dataset quedó vacío después del filtrado", nil)
				return
			}

			logger.WithError(err).Error("analysis: pipeline failed")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error al procesar el análisis", nil)
			return
		}

		if err := services.Repository.Save(result); err != nil {
			logger.WithError(err).Error("analysis: failed to persist result")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error al guardar el análisis", nil)
			return
		}

		logger.WithFields(log.Fields{
			"analysis_id": result.ID,
			"customers":   len(result.Customers),
		}).Info("analysis: run completed")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("analysis: failed to encode response")
		}
	})
}

// GetAnalysis retorna el resumen completo de una corrida
func GetAnalysis(services AnalysisServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result := fetchAnalysis(w, r, services)
		if result == nil {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithField("analysis_id", result.ID).WithError(err).Error("analysis: failed to encode response")
		}
	})
}

// GetAnalysisCustomers retorna los perfiles de clientes de una corrida,
// filtrados por segmento, estilista y días mínimos sin visita
func GetAnalysisCustomers(services AnalysisServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result := fetchAnalysis(w, r, services)
		if result == nil {
			return
		}

		filters, err := parseCustomerFilters(r, 0)
		if err != nil {
			logger.WithError(err).Warn("analysis: invalid customer filters")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		customers := services.Reporter.FilterCustomers(result.Customers, filters)

		response := map[string]any{
			"analysis_id": result.ID,
			"total":       len(customers),
			"clientes":    customers,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithField("analysis_id", result.ID).WithError(err).Error("analysis: failed to encode response")
		}
	})
}

// GetAnalysisStylists retorna las métricas por estilista de una corrida
func GetAnalysisStylists(services AnalysisServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result := fetchAnalysis(w, r, services)
		if result == nil {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result.Stylists); err != nil {
			logger.WithField("analysis_id", result.ID).WithError(err).Error("analysis: failed to encode response")
		}
	})
}

// GetAnalysisSegments retorna la tabla cruzada estilista x segmento
func GetAnalysisSegments(services AnalysisServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result := fetchAnalysis(w, r, services)
		if result == nil {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result.Crosstab); err != nil {
			logger.WithField("analysis_id", result.ID).WithError(err).Error("analysis: failed to encode response")
		}
	})
}

// GetTopCustomers retorna los mejores clientes de un estilista por cantidad
// de visitas. El nombre "todos" agrega sobre el salón completo.
func GetTopCustomers(services AnalysisServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result := fetchAnalysis(w, r, services)
		if result == nil {
			return
		}

		stylist := httprouter.ParamsFromContext(r.Context()).ByName("name")
		if strings.EqualFold(stylist, "todos") {
			stylist = ""
		}

		limit := services.Retention.TopCustomersLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				logger.WithField("limit", raw).Warn("analysis: invalid limit parameter")
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parámetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		top := services.Reporter.TopCustomers(result.Customers, stylist, limit)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(top); err != nil {
			logger.WithField("analysis_id", result.ID).WithError(err).Error("analysis: failed to encode response")
		}
	})
}

// fetchAnalysis resuelve la corrida del path y escribe el error si no existe.
// Retorna nil cuando la respuesta ya fue emitida.
func fetchAnalysis(w http.ResponseWriter, r *http.Request, services AnalysisServices) *domain.AnalysisResult {
	logger := log.ForContext(r.Context())

	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if id == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID de análisis obligatorio", nil)
		return nil
	}

	result, err := services.Repository.GetByID(id)
	if err != nil {
		logger.WithField("analysis_id", id).WithError(err).Error("analysis: failed to load result")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error al consultar el análisis", nil)
		return nil
	}

	if result == nil {
		logger.WithField("analysis_id", id).Warn("analysis: run not found or expired")
		apiErrors.WriteError(w, apiErrors.ErrAnalysisNotFound, "Análisis inexistente o vencido", map[string]any{
			"analysis_id": id,
		})
		return nil
	}

	return result
}

// parseCustomerFilters arma los filtros de clientes desde la query string.
// minDaysDefault se aplica cuando el parámetro min_days está ausente.
func parseCustomerFilters(r *http.Request, minDaysDefault int) (*domain.CustomerFilters, error) {
	filters := &domain.CustomerFilters{
		MinDaysSinceVisit: minDaysDefault,
	}

	if raw := r.URL.Query().Get("segments"); raw != "" {
		for _, value := range strings.Split(raw, ",") {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			filters.Segments = append(filters.Segments, domain.Segment(value))
		}
	}

	if raw := r.URL.Query().Get("stylists"); raw != "" {
		for _, value := range strings.Split(raw, ",") {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			filters.Stylists = append(filters.Stylists, value)
		}
	}

	if raw := r.URL.Query().Get("min_days"); raw != "" {
		minDays, err := strconv.Atoi(raw)
		if err != nil || minDays < 0 {
			return nil, errors.New("parámetro min_days inválido")
		}
		filters.MinDaysSinceVisit = minDays
	}

	return filters, nil
}

// writeDatasetError traduce las fallas estructurales del dataset a códigos de API
func writeDatasetError(w http.ResponseWriter, logger log.Logger, err error) {
	switch {
	case errors.Is(err, spreadsheet.ErrMissingColumn):
		logger.WithError(err).Warn("analysis: dataset missing required column")
		apiErrors.WriteError(w, apiErrors.ErrMissingColumn, err.Error(), nil)
	case errors.Is(err, spreadsheet.ErrMissingSheet), errors.Is(err, spreadsheet.ErrUnreadableDataset):
		logger.WithError(err).Warn("analysis: unreadable dataset")
		apiErrors.WriteError(w, apiErrors.ErrUnreadableDataset, err.Error(), nil)
	default:
		logger.WithError(err).Error("analysis: unexpected dataset failure")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error al leer el archivo de ventas", nil)
	}
}
