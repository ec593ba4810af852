package spreadsheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/blushsalon/retention-api/internal/domain"
)

const whatsappSheet = "Lista WhatsApp"

// exportHeaders fija el contrato con el consumidor del archivo: estas seis
// columnas, en este orden exacto.
var exportHeaders = []string{"CLIENTE", "TELEFONO", "ESTILISTA", "DIAS SIN VISITA", "SEGMENTO", "MENSAJE"}

var exportColumnWidths = map[string]float64{
	"A": 35, // cliente
	"B": 15, // teléfono
	"C": 15, // estilista
	"D": 12, // días sin visita
	"E": 15, // segmento
	"F": 80, // mensaje
}

// Writer serializa la lista de contacto filtrada en un workbook con el
// formato que el salón ya conoce: título, encabezado rosado y mensajes con
// ajuste de texto. Los clientes llegan ya filtrados y ordenados.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// BuildWhatsAppList arma el artefacto xlsx en memoria.
func (w *Writer) BuildWhatsAppList(customers []*domain.CustomerProfile, generatedAt time.Time) (*bytes.Buffer, error) {
	workbook := excelize.NewFile()
	defer workbook.Close()

	workbook.SetSheetName("Sheet1", whatsappSheet)

	titleStyle, err := workbook.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "error al crear el estilo del título")
	}

	headerStyle, err := workbook.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E91E63"}},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error al crear el estilo del encabezado")
	}

	cellStyle, err := workbook.NewStyle(&excelize.Style{
		Border: thinBorder(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error al crear el estilo de las celdas")
	}

	messageStyle, err := workbook.NewStyle(&excelize.Style{
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "error al crear el estilo de los mensajes")
	}

	// Título
	if err := workbook.MergeCell(whatsappSheet, "A1", "F1"); err != nil {
		return nil, errors.Wrap(err, "error al combinar las celdas del título")
	}
	title := fmt.Sprintf("LISTA WHATSAPP - BLUSH SALON - %s", generatedAt.Format("02/01/2006"))
	workbook.SetCellValue(whatsappSheet, "A1", title)
	workbook.SetCellStyle(whatsappSheet, "A1", "A1", titleStyle)

	// Encabezados en la fila 3
	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		workbook.SetCellValue(whatsappSheet, cell, header)
		workbook.SetCellStyle(whatsappSheet, cell, cell, headerStyle)
	}

	// Datos desde la fila 4
	for i, customer := range customers {
		row := i + 4
		values := []interface{}{
			customer.Name,
			customer.Phone,
			customer.StylistGroup,
			customer.DaysSinceVisit,
			string(customer.Segment),
			customer.Message,
		}

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			workbook.SetCellValue(whatsappSheet, cell, value)

			style := cellStyle
			if col == len(values)-1 {
				style = messageStyle
			}
			workbook.SetCellStyle(whatsappSheet, cell, cell, style)
		}
	}

	for col, width := range exportColumnWidths {
		workbook.SetColWidth(whatsappSheet, col, col, width)
	}

	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "error al serializar el workbook")
	}

	return buffer, nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
}
