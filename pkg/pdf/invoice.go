package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// InvoiceData carries everything the invoice template needs, pre-joined from
// the booking and its car, customer and owner.
type InvoiceData struct {
	BookingID     string
	CarTitle      string
	CarNumber     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	OwnerName     string
	OwnerEmail    string
	StartDate     time.Time
	EndDate       time.Time
	Days          int
	PricePerDay   float64
	Subtotal      float64
	ServiceFee    float64
	Total         float64
	PaymentMethod string
	PaymentStatus string
	Currency      string
}

// RenderInvoice produces an A4 booking invoice.
func RenderInvoice(data *InvoiceData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 12, "Carzi")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice for booking %s", data.BookingID))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Issued on %s", time.Now().Format("02 Jan 2006")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Booking details")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Car", fmt.Sprintf("%s (%s)", data.CarTitle, data.CarNumber)},
		{"Customer", fmt.Sprintf("%s / %s / %s", data.CustomerName, data.CustomerEmail, data.CustomerPhone)},
		{"Owner", fmt.Sprintf("%s / %s", data.OwnerName, data.OwnerEmail)},
		{"From", data.StartDate.Format("02 Jan 2006")},
		{"To", data.EndDate.Format("02 Jan 2006")},
		{"Payment method", data.PaymentMethod},
		{"Payment status", data.PaymentStatus},
	}
	for _, row := range rows {
		pdf.CellFormat(45, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Charges")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 7, fmt.Sprintf("%s x %d day(s) @ %.2f %s", data.CarTitle, data.Days, data.PricePerDay, data.Currency), "B", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("%.2f %s", data.Subtotal, data.Currency), "B", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, "Service fee", "B", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("%.2f %s", data.ServiceFee, data.Currency), "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 9, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, fmt.Sprintf("%.2f %s", data.Total, data.Currency), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	return buf.Bytes(), nil
}
