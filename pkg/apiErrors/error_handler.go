package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de error estandarizados de la API
const (
	// Errores de validación (requests mal formados)
	ErrInvalidRequest      = "VAL_001" // Request inválido
	ErrMissingRequiredData = "VAL_002" // Datos obligatorios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de datos inválido

	// Errores de análisis (fallas estructurales del dataset)
	ErrUnreadableDataset = "ANL_001" // Archivo ilegible o con formato desconocido
	ErrMissingColumn     = "ANL_002" // Columna obligatoria ausente
	ErrEmptyDataset      = "ANL_003" // Dataset vacío después del filtrado
	ErrAnalysisNotFound  = "ANL_004" // Corrida inexistente o vencida

	// Errores del servidor
	ErrInternalServer = "SRV_001" // Error interno del servidor
	ErrExportFailure  = "SRV_002" // Falla al construir el artefacto de exportación
)

// Mapeo de códigos de error a status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrUnreadableDataset:   http.StatusBadRequest,
	ErrMissingColumn:       http.StatusBadRequest,
	ErrEmptyDataset:        http.StatusBadRequest,
	ErrAnalysisNotFound:    http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExportFailure:       http.StatusInternalServerError,
}

// APIError representa un error de API estandarizado
type APIError struct {
	Code    string `json:"code"`              // Código de error para el cliente
	Message string `json:"message,omitempty"` // Mensaje descriptivo (opcional)
	Details any    `json:"details,omitempty"` // Detalles adicionales (opcional)
}

// WriteError escribe el error estandarizado en la respuesta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError crea un error de API a partir de un error Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Error desconocido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
