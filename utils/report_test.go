package utils

import (
	"testing"

	"restaurant_pos/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestOrdersReport(t *testing.T) {
	orders := []model.Order{
		{
			OrderNumber: 7,
			TipoPedido:  "ENTREGA",
			Status:      "PENDENTE",
			Customer:    &model.Customer{Name: "Ana", Phone: "5511987654321"},
			Subtotal:    decimal.RequireFromString("30.00"),
			DeliveryFee: decimal.RequireFromString("5.50"),
			Total:       decimal.RequireFromString("35.50"),
		},
	}

	buf, err := OrdersReport(orders)
	if err != nil {
		t.Fatalf("OrdersReport: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[1][0] != "7" || rows[1][5] != "Ana" || rows[1][10] != "35.5" {
		t.Fatalf("unexpected row: %v", rows[1])
	}
}
