package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	repomocks "github.com/blushsalon/retention-api/infrastructure/repository/mocks"
	"github.com/blushsalon/retention-api/infrastructure/spreadsheet"
	"github.com/blushsalon/retention-api/internal/api/handler/router"
	"github.com/blushsalon/retention-api/internal/config"
	"github.com/blushsalon/retention-api/internal/domain"
	"github.com/blushsalon/retention-api/internal/usecases/analyzing"
	analyzingmocks "github.com/blushsalon/retention-api/internal/usecases/analyzing/mocks"
	"github.com/blushsalon/retention-api/internal/usecases/reporting"
	"github.com/blushsalon/retention-api/pkg/apiErrors"
)

func testRetention() config.Retention {
	return config.Retention{
		ActiveWindowDays:     60,
		OccasionalMaxDays:    90,
		VIPMinVisits:         10,
		TopCustomersLimit:    5,
		DefaultMinExportDays: 30,
	}
}

func testServices(t *testing.T, ctrl *gomock.Controller) (AnalysisServices, *analyzingmocks.MockAnalyzer, *repomocks.MockAnalysisRepository) {
	t.Helper()

	analyzer := analyzingmocks.NewMockAnalyzer(ctrl)
	repo := repomocks.NewMockAnalysisRepository(ctrl)

	salon := config.Salon{
		DisplayOrder: []string{"Julio Luna", "Jhon", "Yuri", "Susy", "Vero", "Otros"},
	}

	services := AnalysisServices{
		Reader:     spreadsheet.NewReader(config.Dataset{SheetName: "Hoja1", HeaderOffset: 2}),
		Analyzer:   analyzer,
		Repository: repo,
		Reporter:   reporting.NewService(salon, testRetention()),
		Retention:  testRetention(),
	}

	return services, analyzer, repo
}

func analysisRouter(services AnalysisServices) router.Router {
	return router.New(
		router.WithRoutes(Analysis(services)...),
		router.WithRoutes(Export(ExportServices{Analysis: services, Writer: spreadsheet.NewWriter()})...),
	)
}

func sampleResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		ID:         "run12345",
		AnalyzedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Customers: []*domain.CustomerProfile{
			{
				Name:           "Ana Torres",
				Phone:          "999111222",
				StylistGroup:   "Jhon",
				VisitCount:     2,
				DaysSinceVisit: 40,
				Segment:        domain.SegmentOcasional,
				Message:        "Hola Ana!",
			},
			{
				Name:           "Rosa Quispe",
				Phone:          "988777666",
				StylistGroup:   "Julio Luna",
				VisitCount:     1,
				DaysSinceVisit: 120,
				Segment:        domain.SegmentPerdido,
				Message:        "Hola Rosa!",
			},
		},
		Summary: &domain.AnalysisSummary{TotalCustomers: 2},
	}
}

func decodeAPIError(t *testing.T, body *bytes.Buffer) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(body).Decode(&apiErr))
	return apiErr
}

func uploadBody(t *testing.T, rows [][]interface{}) (*bytes.Buffer, string) {
	t.Helper()

	workbook := excelize.NewFile()
	defer workbook.Close()

	workbook.SetSheetName("Sheet1", "Hoja1")
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow("Hoja1", cell, &row))
	}

	fileBuffer, err := workbook.WriteToBuffer()
	require.NoError(t, err)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	part, err := form.CreateFormFile(uploadFieldName, "ventas.xlsx")
	require.NoError(t, err)
	_, err = part.Write(fileBuffer.Bytes())
	require.NoError(t, err)
	require.NoError(t, form.Close())

	return body, form.FormDataContentType()
}

func salesRows() [][]interface{} {
	return [][]interface{}{
		{"REPORTE DE VENTAS"},
		{""},
		{"CLIENTE", "EMPLEADO", "FECHA", "PRODUCTO / SERVICIO", "TOTAL", "TELEF"},
		{"Ana Torres", "Jhon", "2026-05-10", "CORTE", "50", "999111222"},
	}
}

func TestCreateAnalysis(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services, analyzer, repo := testServices(t, ctrl)
	rt := analysisRouter(services)

	t.Run("Corrida exitosa responde 201 con el resultado", func(t *testing.T) {
		result := sampleResult()
		analyzer.EXPECT().
			Analyze(gomock.Len(1), gomock.Any()).
			Return(result, nil)
		repo.EXPECT().Save(result).Return(nil)

		body, contentType := uploadBody(t, salesRows())
		req := httptest.NewRequest(http.MethodPost, "/v1/analysis", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response domain.AnalysisResult
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, "run12345", response.ID)
		assert.Len(t, response.Customers, 2)
	})

	t.Run("Sin archivo responde 400", func(t *testing.T) {
		body := &bytes.Buffer{}
		form := multipart.NewWriter(body)
		require.NoError(t, form.WriteField("otro", "campo"))
		require.NoError(t, form.Close())

		req := httptest.NewRequest(http.MethodPost, "/v1/analysis", body)
		req.Header.Set("Content-Type", form.FormDataContentType())
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeAPIError(t, recorder.Body).Code)
	})

	t.Run("Dataset vacío responde 400 con su código", func(t *testing.T) {
		analyzer.EXPECT().
			Analyze(gomock.Any(), gomock.Any()).
			Return(nil, analyzing.ErrEmptyDataset)

		body, contentType := uploadBody(t, salesRows())
		req := httptest.NewRequest(http.MethodPost, "/v1/analysis", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apiErrors.ErrEmptyDataset, decodeAPIError(t, recorder.Body).Code)
	})

	t.Run("Columna ausente responde 400 con su código", func(t *testing.T) {
		body, contentType := uploadBody(t, [][]interface{}{
			{""},
			{""},
			{"CLIENTE", "EMPLEADO", "FECHA", "TOTAL", "TELEF"},
			{"Ana", "Jhon", "2026-05-10", "50", "999"},
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/analysis", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apiErrors.ErrMissingColumn, decodeAPIError(t, recorder.Body).Code)
	})
}

func TestGetAnalysis(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services, _, repo := testServices(t, ctrl)
	rt := analysisRouter(services)

	t.Run("Corrida existente responde 200", func(t *testing.T) {
		repo.EXPECT().GetByID("run12345").Return(sampleResult(), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis/run12345", nil)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response domain.AnalysisResult
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, "run12345", response.ID)
	})

	t.Run("Corrida inexistente responde 404", func(t *testing.T) {
		repo.EXPECT().GetByID("noexiste").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis/noexiste", nil)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, apiErrors.ErrAnalysisNotFound, decodeAPIError(t, recorder.Body).Code)
	})
}

func TestGetAnalysisCustomers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services, _, repo := testServices(t, ctrl)
	rt := analysisRouter(services)

	t.Run("Aplica los filtros de la query", func(t *testing.T) {
		repo.EXPECT().GetByID("run12345").Return(sampleResult(), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis/run12345/customers?segments=Perdido&min_days=60", nil)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Total    int                       `json:"total"`
			Clientes []*domain.CustomerProfile `json:"clientes"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, 1, response.Total)
		require.Len(t, response.Clientes, 1)
		assert.Equal(t, "Rosa Quispe", response.Clientes[0].Name)
	})

	t.Run("min_days ilegible responde 400", func(t *testing.T) {
		repo.EXPECT().GetByID("run12345").Return(sampleResult(), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis/run12345/customers?min_days=muchos", nil)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, recorder.Body).Code)
	})
}

func TestGetTopCustomers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services, _, repo := testServices(t, ctrl)
	rt := analysisRouter(services)

	t.Run("Por estilista con límite explícito", func(t *testing.T) {
		repo.EXPECT().GetByID("run12345").Return(sampleResult(), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis/run12345/stylists/Jhon/top-customers?limit=1", nil)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var top []*domain.CustomerProfile
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&top))
		require.Len(t, top, 1)
		assert.Equal(t, "Ana Torres", top[0].Name)
	})

	t.Run("Límite ilegible responde 400", func(t *testing.T) {
		repo.EXPECT().GetByID("run12345").Return(sampleResult(), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis/run12345/stylists/Jhon/top-customers?limit=cero", nil)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestExportWhatsAppList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services, _, repo := testServices(t, ctrl)
	rt := analysisRouter(services)

	t.Run("Descarga el workbook con el mínimo de días por defecto", func(t *testing.T) {
		repo.EXPECT().GetByID("run12345").Return(sampleResult(), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis/run12345/whatsapp-export", nil)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, xlsxContentType, recorder.Header().Get("Content-Type"))
		assert.Contains(t, recorder.Header().Get("Content-Disposition"), "lista_whatsapp_")

		workbook, err := excelize.OpenReader(recorder.Body)
		require.NoError(t, err)
		defer workbook.Close()

		// Ambos clientes superan los 30 días por defecto; el de mayor
		// ausencia va primero
		name, err := workbook.GetCellValue("Lista WhatsApp", "A4")
		require.NoError(t, err)
		assert.Equal(t, "Rosa Quispe", name)

		name, err = workbook.GetCellValue("Lista WhatsApp", "A5")
		require.NoError(t, err)
		assert.Equal(t, "Ana Torres", name)
	})

	t.Run("Corrida inexistente responde 404", func(t *testing.T) {
		repo.EXPECT().GetByID("noexiste").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis/noexiste/whatsapp-export", nil)
		recorder := httptest.NewRecorder()

		rt.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
