package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"itinerary/internal/domain/models"
	"itinerary/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ItineraryDocsService renders a booking's grouped itinerary as a PDF.
type ItineraryDocsService struct {
	Itinerary ItineraryService
	RequestID string
}

func (s ItineraryDocsService) GenerateItineraryPDF(bookingCode string) ([]byte, string, error) {
	svc := s.Itinerary
	if svc.RequestID == "" {
		svc.RequestID = s.RequestID
	}
	groups, summary, err := svc.BookingItinerary(bookingCode)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_itinerary", fmt.Sprintf("booking=%s groups=%d", bookingCode, len(groups)))
	return buildItineraryPDF(strings.TrimSpace(bookingCode), groups, summary)
}

func buildItineraryPDF(bookingCode string, groups []models.ItemGroup, summary models.ItinerarySummary) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Itinerary", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ITINERARY")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Booking   : "+safe(bookingCode, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Generated : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	for i, g := range groups {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("%d) %s  %s", i+1, g.Main.ItemID, itemLabel(g.Main)))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, "    "+itemSchedule(g.Main)+"  "+utils.FormatAmount(g.Totals.Main, g.Main.GrossCurrency))
		pdf.Ln(6)

		for _, ex := range g.Extras {
			pdf.Cell(0, 6, fmt.Sprintf("    + %s  %s  %s", ex.ItemID, itemLabel(ex), utils.FormatAmount(ex.Gross(), ex.GrossCurrency)))
			pdf.Ln(6)
		}

		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 6, "    Subtotal: "+utils.FormatAmount(g.Totals.Combined, g.Main.GrossCurrency))
		pdf.Ln(8)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Items: %d   Extras: %d   Grand total: %s",
		summary.TotalMainItems, summary.TotalExtras, utils.FormatMoney(summary.GrandTotal)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Totals are summed as-is per item; amounts in different currencies are not converted.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ITINERARY_%s.pdf", safeFilenamePart(bookingCode))
	return buf.Bytes(), filename, nil
}

func itemLabel(t models.TripItem) string {
	parts := []string{}
	if v := strings.TrimSpace(t.Description); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(t.Location); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(t.ProductCode); v != "" {
		parts = append(parts, "("+v+")")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func itemSchedule(t models.TripItem) string {
	from := strings.TrimSpace(t.StartDate + " " + t.StartTime)
	to := strings.TrimSpace(t.EndDate + " " + t.EndTime)
	switch {
	case from != "" && to != "":
		return from + " -> " + to
	case from != "":
		return from
	case to != "":
		return "until " + to
	default:
		return "-"
	}
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
