package receipt

import (
	"bytes"
	"fmt"
	"strings"

	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	paperWidth = 80.0
	margin     = 4.0
	lineHeight = 4.5
	qrSize     = 32.0
)

var tipoLabels = map[string]string{
	"BALCAO":   "Balcão",
	"RETIRADA": "Retirada",
	"ENTREGA":  "Entrega",
	"COMANDA":  "Comanda",
}

// Renderer draws 80mm thermal-roll receipts.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) Render(data *model.PrintData) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: paperWidth, Ht: pageHeight(data)},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width := paperWidth - 2*margin

	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(width, 5, tr(data.Restaurant.Name), "", "C", false)
	pdf.SetFont("Helvetica", "", 8)
	if data.Restaurant.Address != "" {
		pdf.MultiCell(width, lineHeight, tr(data.Restaurant.Address), "", "C", false)
	}
	if data.Restaurant.Phone != "" {
		pdf.CellFormat(width, lineHeight, tr("Tel: "+data.Restaurant.Phone), "", 1, "C", false, 0, "")
	}
	separator(pdf, width)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(width, 7, fmt.Sprintf("PEDIDO #%d", data.OrderNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(width, lineHeight, tr(tipoLabel(data.TipoPedido)+"  "+data.CreatedAt.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")

	if c := data.Customer; c != nil {
		separator(pdf, width)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(width, lineHeight, tr(c.Name), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		if c.Phone != "" {
			pdf.CellFormat(width, lineHeight, c.Phone, "", 1, "L", false, 0, "")
		}
		if addr := joinNonEmpty(" - ", c.Address, c.Neighborhood); addr != "" {
			pdf.MultiCell(width, lineHeight, tr(addr), "", "L", false)
		}
	}

	separator(pdf, width)
	for _, it := range data.Items {
		pdf.SetFont("Helvetica", "B", 9)
		label := fmt.Sprintf("%dx %s", it.Quantity, it.Name)
		pdf.CellFormat(width-20, lineHeight, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, lineHeight, money(it.LineTotal), "", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		for _, a := range it.Addons {
			pdf.CellFormat(width, lineHeight, tr(fmt.Sprintf("  + %dx %s (%s)", a.Quantity, a.Name, money(a.Price))), "", 1, "L", false, 0, "")
		}
		if it.Notes != "" {
			pdf.MultiCell(width, lineHeight, tr("  Obs: "+it.Notes), "", "L", false)
		}
	}

	separator(pdf, width)
	totalLine(pdf, width, "Subtotal", data.Subtotal, false)
	if data.DeliveryFee.IsPositive() {
		totalLine(pdf, width, "Taxa de entrega", data.DeliveryFee, false)
	}
	if data.Discount.IsPositive() {
		totalLine(pdf, width, "Desconto", data.Discount.Neg(), false)
	}
	totalLine(pdf, width, "TOTAL", data.Total, true)
	if data.PaymentMethod != "" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(width, lineHeight, tr("Pagamento: "+data.PaymentMethod), "", 1, "L", false, 0, "")
	}
	if data.Notes != "" {
		pdf.MultiCell(width, lineHeight, tr("Obs: "+data.Notes), "", "L", false)
	}

	if data.QRPayload != "" {
		png, err := utils.GenerateQRCode(data.QRPayload, 256)
		if err != nil {
			return nil, fmt.Errorf("qr code: %w", err)
		}
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
		pdf.Ln(2)
		pdf.ImageOptions("qr", (paperWidth-qrSize)/2, pdf.GetY(), qrSize, qrSize, true, opts, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(width, lineHeight, "Acompanhe seu pedido", "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pageHeight sizes the roll to the content so the receipt is one page.
func pageHeight(data *model.PrintData) float64 {
	lines := 16
	if data.Customer != nil {
		lines += 4
	}
	for _, it := range data.Items {
		lines += 1 + len(it.Addons)
		if it.Notes != "" {
			lines += 2
		}
	}
	if data.Notes != "" {
		lines += 3
	}
	h := 30 + float64(lines)*lineHeight
	if data.QRPayload != "" {
		h += qrSize + 10
	}
	return h
}

func separator(pdf *fpdf.Fpdf, width float64) {
	pdf.Ln(1)
	y := pdf.GetY()
	pdf.SetDashPattern([]float64{1, 1}, 0)
	pdf.Line(margin, y, margin+width, y)
	pdf.SetDashPattern([]float64{}, 0)
	pdf.Ln(2)
}

func totalLine(pdf *fpdf.Fpdf, width float64, label string, value decimal.Decimal, bold bool) {
	style, size := "", 8.0
	if bold {
		style, size = "B", 11
	}
	pdf.SetFont("Helvetica", style, size)
	pdf.CellFormat(width-25, lineHeight+1, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(25, lineHeight+1, money(value), "", 1, "R", false, 0, "")
}

// money formats as Brazilian currency: R$ 1.234,50.
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := "R$ " + b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

func tipoLabel(tipo string) string {
	if l, ok := tipoLabels[tipo]; ok {
		return l
	}
	return tipo
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
