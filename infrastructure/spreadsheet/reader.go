// Package spreadsheet implementa la frontera con los archivos xlsx: lee el
// histórico de ventas que exporta el sistema de caja y escribe la lista de
// contacto descargable. Acá solo vive formato, nada de lógica de negocio.
package spreadsheet

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/blushsalon/retention-api/internal/config"
	"github.com/blushsalon/retention-api/internal/domain"
	"github.com/blushsalon/retention-api/pkg/log"
	"github.com/blushsalon/retention-api/pkg/utils"
)

// Fallas estructurales de lectura: se reportan completas al cliente, sin
// resultados parciales.
var (
	ErrUnreadableDataset = errors.New("no se pudo leer el archivo de ventas")
	ErrMissingSheet      = errors.New("la hoja esperada no existe en el archivo")
	ErrMissingColumn     = errors.New("falta una columna obligatoria en el encabezado")
)

// Columnas del exporte del sistema de caja. CLASE es opcional.
const (
	columnCustomer = "CLIENTE"
	columnStaff    = "EMPLEADO"
	columnDate     = "FECHA"
	columnItem     = "PRODUCTO / SERVICIO"
	columnClass    = "CLASE"
	columnTotal    = "TOTAL"
	columnPhone    = "TELEF"
)

// Reader carga el dataset tabular desde un workbook xlsx.
type Reader struct {
	sheetName    string
	headerOffset int
}

func NewReader(cfg config.Dataset) *Reader {
	return &Reader{
		sheetName:    cfg.SheetName,
		headerOffset: cfg.HeaderOffset,
	}
}

// Read abre el workbook y devuelve las filas crudas en su orden original.
// El exporte real trae filas de metadata antes de la tabla; headerOffset
// indica cuántas saltar antes del encabezado.
func (r *Reader) Read(file io.Reader) ([]*domain.TransactionRecord, error) {
	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableDataset, err.Error())
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(r.sheetName)
	if err != nil {
		return nil, errors.Wrapf(ErrMissingSheet, "hoja %q: %v", r.sheetName, err)
	}

	if len(rows) <= r.headerOffset {
		return nil, errors.Wrapf(ErrUnreadableDataset,
			"el archivo tiene %d filas y el encabezado se espera en la fila %d", len(rows), r.headerOffset+1)
	}

	columns, err := mapColumns(rows[r.headerOffset])
	if err != nil {
		return nil, err
	}

	records := make([]*domain.TransactionRecord, 0, len(rows)-r.headerOffset-1)
	for _, row := range rows[r.headerOffset+1:] {
		if isEmptyRow(row) {
			continue
		}
		records = append(records, buildRecord(row, columns))
	}

	log.L.WithFields(log.Fields{
		"hoja":  r.sheetName,
		"filas": len(records),
	}).Debug("Dataset de ventas leído")

	return records, nil
}

// columnIndexes guarda la posición de cada columna en el encabezado real.
// classIdx queda en -1 cuando el exporte no trae la columna CLASE.
type columnIndexes struct {
	customer, staff, date, item, total, phone int
	class                                     int
}

func mapColumns(header []string) (*columnIndexes, error) {
	indexOf := func(name string) int {
		for i, cell := range header {
			if strings.EqualFold(strings.TrimSpace(cell), name) {
				return i
			}
		}
		return -1
	}

	columns := &columnIndexes{
		customer: indexOf(columnCustomer),
		staff:    indexOf(columnStaff),
		date:     indexOf(columnDate),
		item:     indexOf(columnItem),
		total:    indexOf(columnTotal),
		phone:    indexOf(columnPhone),
		class:    indexOf(columnClass),
	}

	required := map[string]int{
		columnCustomer: columns.customer,
		columnStaff:    columns.staff,
		columnDate:     columns.date,
		columnItem:     columns.item,
		columnTotal:    columns.total,
		columnPhone:    columns.phone,
	}
	for name, idx := range required {
		if idx < 0 {
			return nil, errors.Wrapf(ErrMissingColumn, "columna %q", name)
		}
	}

	return columns, nil
}

func buildRecord(row []string, columns *columnIndexes) *domain.TransactionRecord {
	record := &domain.TransactionRecord{
		Customer: cell(row, columns.customer),
		Staff:    cell(row, columns.staff),
		Item:     cell(row, columns.item),
		Phone:    cell(row, columns.phone),
	}

	if columns.class >= 0 {
		record.ItemClass = cell(row, columns.class)
	}

	// Una fecha que no se puede interpretar cuenta como faltante y queda
	// sujeta al forward-fill del normalizador, no es un error.
	if date, err := utils.ParseDate(cell(row, columns.date)); err == nil && date != nil {
		record.Date = date
	}

	record.Total = parseAmount(cell(row, columns.total))

	return record
}

// parseAmount tolera el formato del exporte: símbolo de moneda y comas de
// miles. Un monto ilegible degrada a 0 en vez de abortar la corrida.
func parseAmount(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "S/")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
