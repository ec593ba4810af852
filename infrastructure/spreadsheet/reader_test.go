package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/blushsalon/retention-api/internal/config"
)

func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	workbook := excelize.NewFile()
	defer workbook.Close()

	workbook.SetSheetName("Sheet1", sheet)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow(sheet, cell, &row))
	}

	buffer, err := workbook.WriteToBuffer()
	require.NoError(t, err)

	return buffer
}

func testReader() *Reader {
	return NewReader(config.Dataset{
		SheetName:    "Hoja1",
		HeaderOffset: 2,
	})
}

func TestReader_Read(t *testing.T) {
	header := []interface{}{"CLIENTE", "EMPLEADO", "FECHA", "PRODUCTO / SERVICIO", "CLASE", "TOTAL", "TELEF"}

	t.Run("Lee las filas en su orden original", func(t *testing.T) {
		buffer := buildWorkbook(t, "Hoja1", [][]interface{}{
			{"REPORTE DE VENTAS"},
			{"BLUSH SALON"},
			header,
			{"Ana Torres", "Jhon", "2026-03-10", "CORTE", "", "S/ 50.00", "999111222"},
			{"Rosa Quispe", "Yuri", "10/03/2026", "SHAMPOO REDKEN", "PRODUCTO", "1,250.50", "988777666"},
		})

		records, err := testReader().Read(buffer)

		require.NoError(t, err)
		require.Len(t, records, 2)

		ana := records[0]
		assert.Equal(t, "Ana Torres", ana.Customer)
		assert.Equal(t, "Jhon", ana.Staff)
		require.NotNil(t, ana.Date)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *ana.Date)
		assert.Equal(t, 50.0, ana.Total)
		assert.Equal(t, "999111222", ana.Phone)

		rosa := records[1]
		require.NotNil(t, rosa.Date)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *rosa.Date)
		assert.Equal(t, "PRODUCTO", rosa.ItemClass)
		assert.Equal(t, 1250.5, rosa.Total)
	})

	t.Run("Fecha ilegible queda nula para el forward-fill", func(t *testing.T) {
		buffer := buildWorkbook(t, "Hoja1", [][]interface{}{
			{""},
			{""},
			header,
			{"Ana", "Jhon", "sin fecha", "CORTE", "", "50", "999"},
		})

		records, err := testReader().Read(buffer)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Nil(t, records[0].Date)
	})

	t.Run("Monto ilegible degrada a cero", func(t *testing.T) {
		buffer := buildWorkbook(t, "Hoja1", [][]interface{}{
			{""},
			{""},
			header,
			{"Ana", "Jhon", "2026-03-10", "CORTE", "", "gratis", "999"},
		})

		records, err := testReader().Read(buffer)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Zero(t, records[0].Total)
	})

	t.Run("Omite filas completamente vacías", func(t *testing.T) {
		buffer := buildWorkbook(t, "Hoja1", [][]interface{}{
			{""},
			{""},
			header,
			{"Ana", "Jhon", "2026-03-10", "CORTE", "", "50", "999"},
			{"", "", "", "", "", "", ""},
			{"Rosa", "Yuri", "2026-03-11", "TINTE", "", "120", "988"},
		})

		records, err := testReader().Read(buffer)

		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("La columna CLASE es opcional", func(t *testing.T) {
		buffer := buildWorkbook(t, "Hoja1", [][]interface{}{
			{""},
			{""},
			{"CLIENTE", "EMPLEADO", "FECHA", "PRODUCTO / SERVICIO", "TOTAL", "TELEF"},
			{"Ana", "Jhon", "2026-03-10", "CORTE", "50", "999"},
		})

		records, err := testReader().Read(buffer)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Empty(t, records[0].ItemClass)
	})

	t.Run("Columna obligatoria ausente es error estructural", func(t *testing.T) {
		buffer := buildWorkbook(t, "Hoja1", [][]interface{}{
			{""},
			{""},
			{"CLIENTE", "EMPLEADO", "FECHA", "PRODUCTO / SERVICIO", "TOTAL"},
			{"Ana", "Jhon", "2026-03-10", "CORTE", "50"},
		})

		records, err := testReader().Read(buffer)

		assert.Nil(t, records)
		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), "TELEF")
	})

	t.Run("Hoja inexistente es error estructural", func(t *testing.T) {
		buffer := buildWorkbook(t, "Otra Hoja", [][]interface{}{
			{""},
			{""},
			header,
		})

		_, err := testReader().Read(buffer)

		assert.ErrorIs(t, err, ErrMissingSheet)
	})

	t.Run("Archivo que no es xlsx es ilegible", func(t *testing.T) {
		_, err := testReader().Read(bytes.NewBufferString("esto no es un workbook"))

		assert.ErrorIs(t, err, ErrUnreadableDataset)
	})

	t.Run("Archivo sin filas suficientes para el encabezado", func(t *testing.T) {
		buffer := buildWorkbook(t, "Hoja1", [][]interface{}{
			{"REPORTE"},
		})

		_, err := testReader().Read(buffer)

		assert.ErrorIs(t, err, ErrUnreadableDataset)
	})
}
