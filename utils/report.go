package utils

import (
	"bytes"
	"fmt"
	"time"

	"restaurant_pos/model"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Sheet1"

var orderReportHeader = []any{
	"Número", "Data", "Tipo", "Status", "Pagamento", "Cliente", "Telefone",
	"Subtotal", "Taxa de entrega", "Desconto", "Total",
}

// OrdersReport renders orders as an xlsx workbook, one row per order.
func OrdersReport(orders []model.Order) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(reportSheet, "A1", &orderReportHeader); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(orderReportHeader))
	if err := f.SetCellStyle(reportSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(reportSheet, "A", lastCol, 16); err != nil {
		return nil, err
	}

	for i, o := range orders {
		var name, phone string
		if o.Customer != nil {
			name, phone = o.Customer.Name, o.Customer.Phone
		}
		row := []any{
			o.OrderNumber,
			o.CreatedAt.Format(time.DateTime),
			o.TipoPedido,
			o.Status,
			o.PaymentStatus,
			name,
			phone,
			o.Subtotal.InexactFloat64(),
			o.DeliveryFee.InexactFloat64(),
			o.Discount.InexactFloat64(),
			o.Total.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.WriteToBuffer()
}
