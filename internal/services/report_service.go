package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/sigelp/backend/internal/config"
	"github.com/sigelp/backend/internal/models"
)

type ReportService struct {
	cfg *config.Config
}

func NewReportService(cfg *config.Config) *ReportService { return &ReportService{cfg: cfg} }

// GenerateTicketPDF renders a printable A4 sheet for a ticket, with a QR
// code linking back to its tracking page
func (s *ReportService) GenerateTicketPDF(ticket *models.Ticket) ([]byte, error) {
	trackingURL := fmt.Sprintf("%s/tickets/%s", s.cfg.FrontendURL, ticket.TicketNumber)

	png, err := qrcode.Encode(trackingURL, qrcode.Medium, 512)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "SIGELP - Ticket de Atencion")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, ticket.TicketNumber)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	area := "-"
	if ticket.Area != nil {
		area = ticket.Area.Name
	}
	resolved := "-"
	if ticket.ResolvedAt != nil {
		resolved = ticket.ResolvedAt.Format("02/01/2006 15:04")
	}
	lines := []string{
		fmt.Sprintf("Solicitante: %s", ticket.RequesterName()),
		fmt.Sprintf("Responsable: %s", ticket.ResponsiblePerson),
		fmt.Sprintf("Area: %s", area),
		fmt.Sprintf("Estado: %s", ticket.Status),
		fmt.Sprintf("Creado: %s", ticket.CreatedAt.Format("02/01/2006 15:04")),
		fmt.Sprintf("Resuelto: %s", resolved),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)
	pdf.MultiCell(0, 6, fmt.Sprintf("Observaciones:\n%s", ticket.Notes), "", "L", false)

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr", opt, bytes.NewReader(png))

	x := (210.0 - 80.0) / 2.0
	y := pdf.GetY() + 10
	pdf.ImageOptions("qr", x, y, 80, 80, false, opt, 0, "")

	pdf.SetY(y + 85)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generado el %s", time.Now().Format("02/01/2006 15:04")))

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
