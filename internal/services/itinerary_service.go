package services

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	intconfig "itinerary/internal/config"
	"itinerary/internal/domain"
	"itinerary/internal/domain/models"
	"itinerary/internal/repositories"
	"itinerary/internal/utils"
)

// ItineraryService composes the itinerary read pipeline (fetch ->
// classify -> group -> totals) and the write operations around it.
type ItineraryService struct {
	Items     repositories.TripItemRepository
	DB        *sql.DB
	RequestID string
}

func (s ItineraryService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ItineraryService) items() repositories.TripItemRepository {
	if s.Items.DB != nil {
		return s.Items
	}
	return repositories.TripItemRepository{DB: s.db()}
}

// BookingItinerary returns the grouped itinerary for one booking plus
// its summary. A booking with no rows yields an empty group list.
func (s ItineraryService) BookingItinerary(bookingCode string) ([]models.ItemGroup, models.ItinerarySummary, error) {
	code := strings.TrimSpace(bookingCode)
	if code == "" {
		return nil, models.ItinerarySummary{}, domain.ValidationError{Field: "booking", Msg: "booking code is required"}
	}

	items, err := s.items().FetchItems(code)
	if err != nil {
		return nil, models.ItinerarySummary{}, err
	}

	groups := GroupItems(items)
	summary := AnnotateTotals(groups)
	utils.LogEvent(s.RequestID, "itinerary", "fetch", fmt.Sprintf("booking=%s groups=%d extras=%d", code, summary.TotalMainItems, summary.TotalExtras))
	return groups, summary, nil
}

// GroupItems partitions a (sequence, item_id)-ordered item list into
// groups of one main item plus its extras. Group order follows the main
// items' read order. An extra whose parent is missing is dropped; with
// duplicate main ids the first group wins.
func GroupItems(items []models.TripItem) []models.ItemGroup {
	for i := range items {
		items[i].Classify()
	}

	groups := make([]models.ItemGroup, 0, len(items))
	for _, it := range items {
		if models.IsExtraID(it.ItemID) {
			continue
		}
		groups = append(groups, models.ItemGroup{Main: it, Extras: []models.TripItem{}})
	}

	for _, it := range items {
		if !models.IsExtraID(it.ItemID) {
			continue
		}
		for gi := range groups {
			if groups[gi].Main.ItemID == it.ParentID {
				groups[gi].Extras = append(groups[gi].Extras, it)
				break
			}
		}
	}

	return groups
}

// AnnotateTotals fills per-group totals in place and returns the booking
// summary. Absent gross amounts count as zero; currencies are not
// converted or checked.
func AnnotateTotals(groups []models.ItemGroup) models.ItinerarySummary {
	summary := models.ItinerarySummary{TotalMainItems: len(groups)}
	for gi := range groups {
		g := &groups[gi]
		g.Totals.Main = g.Main.Gross()
		g.Totals.Extras = 0
		for _, ex := range g.Extras {
			g.Totals.Extras += ex.Gross()
		}
		g.Totals.Combined = g.Totals.Main + g.Totals.Extras

		summary.TotalExtras += len(g.Extras)
		summary.GrandTotal += g.Totals.Combined
	}
	return summary
}

// SetSequence stores a new display-order value for one item. Both fields
// must be non-empty; the value itself is passed through verbatim.
func (s ItineraryService) SetSequence(itemID, sequence string) error {
	id := strings.TrimSpace(itemID)
	seq := strings.TrimSpace(sequence)
	if id == "" {
		return domain.ValidationError{Field: "item_id", Msg: "item id is required"}
	}
	if seq == "" {
		return domain.ValidationError{Field: "sequence", Msg: "sequence is required"}
	}

	if err := s.items().UpdateSequence(id, seq); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "itinerary", "update_sequence", fmt.Sprintf("item=%s sequence=%s", id, seq))
	return nil
}

// DeleteMainItem removes a main item and its whole prefix-matched family
// for the booking. Deleting an already-deleted id returns 0 without error.
func (s ItineraryService) DeleteMainItem(bookingCode, itemID string) (int64, error) {
	code := strings.TrimSpace(bookingCode)
	id := strings.TrimSpace(itemID)
	if id == "" {
		return 0, domain.ValidationError{Field: "item_id", Msg: "item id is required"}
	}
	if code == "" {
		return 0, domain.ValidationError{Field: "booking", Msg: "booking code is required"}
	}

	count, err := s.items().CascadeDeleteMain(code, id)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "itinerary", "delete_item", fmt.Sprintf("booking=%s item=%s deleted=%d", code, id, count))
	return count, nil
}

// TripItemInput carries a raw create payload. Defaults when absent:
// identifier and booking fall back to empty strings (accepted, not
// rejected), text fields to "", dates and amounts to NULL,
// bed_configuration to NULL. A non-numeric bed_configuration is the one
// hard input error.
type TripItemInput struct {
	ItemID      string
	BookingCode string
	Sequence    string

	StartDate   string
	EndDate     string
	StartTime   string
	EndTime     string
	Location    string
	SupplierRef string
	ProductCode string
	Description string

	BedConfiguration string

	GrossAmount   string
	GrossCurrency string
	NetAmount     string
	NetCurrency   string
}

// CreateItem validates and stores a new itinerary line.
func (s ItineraryService) CreateItem(in TripItemInput) (models.TripItem, error) {
	item := models.TripItem{
		ItemID:      strings.TrimSpace(in.ItemID),
		BookingCode: strings.TrimSpace(in.BookingCode),
		Sequence:    strings.TrimSpace(in.Sequence),
		StartDate:   strings.TrimSpace(in.StartDate),
		EndDate:     strings.TrimSpace(in.EndDate),
		StartTime:   strings.TrimSpace(in.StartTime),
		EndTime:     strings.TrimSpace(in.EndTime),
		Location:    strings.TrimSpace(in.Location),
		SupplierRef: strings.TrimSpace(in.SupplierRef),
		ProductCode: strings.TrimSpace(in.ProductCode),
		Description: strings.TrimSpace(in.Description),

		GrossCurrency: strings.TrimSpace(in.GrossCurrency),
		NetCurrency:   strings.TrimSpace(in.NetCurrency),
	}

	if raw := strings.TrimSpace(in.BedConfiguration); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return item, domain.ValidationError{Field: "bed_configuration", Msg: "must be numeric", Err: err}
		}
		item.BedConfiguration = &n
	}

	item.GrossAmount = parseAmount(in.GrossAmount)
	item.NetAmount = parseAmount(in.NetAmount)
	item.Classify()

	if err := s.items().Insert(item); err != nil {
		return item, err
	}
	utils.LogEvent(s.RequestID, "itinerary", "create_item", fmt.Sprintf("booking=%s item=%s", item.BookingCode, item.ItemID))
	return item, nil
}

// parseAmount keeps amounts optional: blank or unparseable input is
// stored as NULL and later read back as zero by the totals.
func parseAmount(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
