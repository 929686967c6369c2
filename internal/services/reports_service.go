package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"caravanas/internal/repositories"
	"caravanas/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReportsService renders the printable financial documents: the trip
// collections report and the per-payment receipt. Os números vêm sempre do
// agregador; aqui é só apresentação.
type ReportsService struct {
	TripRepo      repositories.TripRepository
	PassengerRepo repositories.PassengerRepository
	PaymentRepo   repositories.PaymentRepository
	Roster        RosterService
	RequestID     string
}

// TripFinancePDF builds the collections report for one trip.
func (s ReportsService) TripFinancePDF(tripID int64) ([]byte, string, error) {
	trip, err := s.TripRepo.GetByID(tripID)
	if err != nil {
		return nil, "", storeErr("load trip", err)
	}
	summary, err := s.Roster.AggregateRoster(tripID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "reports", "trip_finance", fmt.Sprintf("trip_id=%d", tripID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Relatório Financeiro", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RELATORIO FINANCEIRO")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Caravana      : %s", safe(trip.Name, "-")),
		fmt.Sprintf("Destino       : %s", safe(trip.Destination, "-")),
		fmt.Sprintf("Data          : %s", safe(trip.DepartureDate, "-")),
		fmt.Sprintf("Emitido em    : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Totais")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	totals := []string{
		fmt.Sprintf("Receita prevista : %s", utils.FormatBRL(summary.TotalRevenue)),
		fmt.Sprintf("Arrecadado       : %s", utils.FormatBRL(summary.TotalCollected)),
		fmt.Sprintf("Pendente         : %s", utils.FormatBRL(summary.TotalPending)),
		fmt.Sprintf("Passageiros      : %d (pendentes: %d)", summary.PassengerCount, summary.PendingCount),
		fmt.Sprintf("Inadimplencia    : %.0f%%", summary.DelinquencyRate*100),
	}
	for _, l := range totals {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	if len(summary.Pending) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Pendencias")
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 10)
		for _, e := range summary.Pending {
			line := fmt.Sprintf("%s (%s) - deve %s ha %d dias",
				safe(e.Name, "-"), safe(e.Phone, "-"),
				utils.FormatBRL(e.PendingTotal), e.DaysSinceRegistration)
			pdf.MultiCell(0, 5, line, "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("FINANCEIRO_%d_%s.pdf", trip.ID, safeFilenamePart(trip.Name))
	return buf.Bytes(), filename, nil
}

// ReceiptPDF builds a receipt for one categorized payment.
func (s ReportsService) ReceiptPDF(paymentID int64) ([]byte, string, error) {
	pay, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, "", storeErr("load payment", err)
	}
	p, err := s.PassengerRepo.GetByID(pay.PassengerID)
	if err != nil {
		return nil, "", storeErr("load passenger", err)
	}

	utils.LogEvent(s.RequestID, "reports", "receipt", fmt.Sprintf("payment_id=%d", paymentID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Recibo", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RECIBO DE PAGAMENTO")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Recibo nº     : REC-%d", pay.ID),
		fmt.Sprintf("Passageiro    : %s", safe(p.ClientName, "-")),
		fmt.Sprintf("Telefone      : %s", safe(p.ClientPhone, "-")),
		fmt.Sprintf("Categoria     : %s", safe(pay.Category, "-")),
		fmt.Sprintf("Forma         : %s", safe(pay.Method, "-")),
		fmt.Sprintf("Data          : %s", safe(pay.PaidAt, "-")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Valor: "+utils.FormatBRL(pay.Amount))
	pdf.Ln(12)

	if strings.TrimSpace(pay.Notes) != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Obs: "+pay.Notes, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECIBO_%d_%s.pdf", pay.ID, safeFilenamePart(p.ClientName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
