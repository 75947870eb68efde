package services

import (
	"testing"

	"itinerary/internal/domain"
	"itinerary/internal/domain/models"
	"itinerary/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func amount(v float64) *float64 { return &v }

func TestGroupItemsPartition(t *testing.T) {
	items := []models.TripItem{
		{ItemID: "A1"},
		{ItemID: "A1_a"},
		{ItemID: "B2"},
		{ItemID: "A1_b"},
		{ItemID: "B2_a"},
		{ItemID: "C3_a"}, // orphan: no main C3 in the set
	}

	groups := GroupItems(items)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Main.ItemID != "A1" || groups[1].Main.ItemID != "B2" {
		t.Fatalf("group order should follow main read order, got %s, %s", groups[0].Main.ItemID, groups[1].Main.ItemID)
	}
	if len(groups[0].Extras) != 2 {
		t.Fatalf("A1 should own 2 extras, got %d", len(groups[0].Extras))
	}
	if groups[0].Extras[0].ItemID != "A1_a" || groups[0].Extras[1].ItemID != "A1_b" {
		t.Fatalf("extras should keep read order, got %s, %s", groups[0].Extras[0].ItemID, groups[0].Extras[1].ItemID)
	}
	if len(groups[1].Extras) != 1 || groups[1].Extras[0].ItemID != "B2_a" {
		t.Fatalf("B2 extras wrong: %+v", groups[1].Extras)
	}
}

func TestGroupItemsOrphanExcludedFromSummary(t *testing.T) {
	items := []models.TripItem{
		{ItemID: "A1", GrossAmount: amount(10)},
		{ItemID: "C3_a", GrossAmount: amount(999)},
	}

	groups := GroupItems(items)
	summary := AnnotateTotals(groups)
	if summary.TotalExtras != 0 {
		t.Fatalf("orphan extra must not count, got total_extras=%d", summary.TotalExtras)
	}
	if summary.GrandTotal != 10 {
		t.Fatalf("orphan gross must not count, got grand_total=%v", summary.GrandTotal)
	}
}

func TestGroupItemsDuplicateMainFirstWins(t *testing.T) {
	items := []models.TripItem{
		{ItemID: "A1", Location: "first"},
		{ItemID: "A1", Location: "second"},
		{ItemID: "A1_a"},
	}

	groups := GroupItems(items)
	if len(groups) != 2 {
		t.Fatalf("duplicate mains each anchor a group, got %d", len(groups))
	}
	if len(groups[0].Extras) != 1 {
		t.Fatalf("extra should attach to the first matching group")
	}
	if len(groups[1].Extras) != 0 {
		t.Fatalf("second duplicate group must stay empty")
	}
}

func TestAnnotateTotals(t *testing.T) {
	groups := GroupItems([]models.TripItem{
		{ItemID: "A1", GrossAmount: amount(100)},
		{ItemID: "A1_a", GrossAmount: amount(25)},
		{ItemID: "A1_b"}, // null gross counts as 0
		{ItemID: "B2"},   // null gross main
		{ItemID: "B2_a", GrossAmount: amount(5)},
	})

	summary := AnnotateTotals(groups)

	if groups[0].Totals.Main != 100 || groups[0].Totals.Extras != 25 || groups[0].Totals.Combined != 125 {
		t.Fatalf("A1 totals wrong: %+v", groups[0].Totals)
	}
	if groups[1].Totals.Main != 0 || groups[1].Totals.Combined != 5 {
		t.Fatalf("B2 totals wrong: %+v", groups[1].Totals)
	}
	for _, g := range groups {
		if g.Totals.Combined != g.Totals.Main+g.Totals.Extras {
			t.Fatalf("combined != main+extras for %s", g.Main.ItemID)
		}
	}
	if summary.TotalMainItems != 2 || summary.TotalExtras != 3 {
		t.Fatalf("summary counts wrong: %+v", summary)
	}
	if summary.GrandTotal != 130 {
		t.Fatalf("grand_total = %v, want 130", summary.GrandTotal)
	}
}

func TestBookingItineraryEndToEnd(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT item_id").WithArgs("K9Q2").
		WillReturnRows(itemRows().
			AddRow("A1", "1", "2026-09-01", "", "10:00", "", "Lisbon", "SUP1", "FLT", "Flight out", nil, 100.0, "EUR", nil, "").
			AddRow("A1_a", "1", "", "", "", "", "", "", "XBG", "Extra bag", nil, 25.0, "EUR", nil, ""))

	svc := ItineraryService{Items: repositories.TripItemRepository{DB: db}}
	groups, summary, err := svc.BookingItinerary("K9Q2")
	if err != nil {
		t.Fatalf("BookingItinerary error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	got := groups[0].Totals
	if got.Main != 100 || got.Extras != 25 || got.Combined != 125 {
		t.Fatalf("totals wrong: %+v", got)
	}
	if summary.GrandTotal != 125 || summary.TotalMainItems != 1 || summary.TotalExtras != 1 {
		t.Fatalf("summary wrong: %+v", summary)
	}
	if groups[0].Extras[0].ParentID != "A1" {
		t.Fatalf("extra parent not cached, got %q", groups[0].Extras[0].ParentID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingItineraryEmptyBookingCode(t *testing.T) {
	svc := ItineraryService{}
	_, _, err := svc.BookingItinerary("  ")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetSequenceValidation(t *testing.T) {
	svc := ItineraryService{}
	if err := svc.SetSequence("", "2"); !domain.IsValidation(err) {
		t.Fatalf("missing item_id must fail validation, got %v", err)
	}
	if err := svc.SetSequence("A1", ""); !domain.IsValidation(err) {
		t.Fatalf("missing sequence must fail validation, got %v", err)
	}
}

func TestSetSequenceStoresVerbatim(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// non-numeric values are accepted and passed through unchanged
	mock.ExpectExec("UPDATE trip_items SET sequence").
		WithArgs("soon", "A1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := ItineraryService{Items: repositories.TripItemRepository{DB: db}}
	if err := svc.SetSequence("A1", "soon"); err != nil {
		t.Fatalf("SetSequence error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteMainItemValidation(t *testing.T) {
	svc := ItineraryService{}
	if _, err := svc.DeleteMainItem("K9Q2", ""); !domain.IsValidation(err) {
		t.Fatalf("missing item_id must fail validation, got %v", err)
	}
	if _, err := svc.DeleteMainItem("", "A1"); !domain.IsValidation(err) {
		t.Fatalf("missing booking must fail validation, got %v", err)
	}
}

func TestCreateItemBedConfiguration(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := ItineraryService{Items: repositories.TripItemRepository{DB: db}}

	// non-numeric bed configuration is the one hard input error and must
	// fail before any storage call
	if _, err := svc.CreateItem(TripItemInput{ItemID: "A1", BookingCode: "K9Q2", BedConfiguration: "twin"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("storage touched on invalid input: %v", err)
	}

	mock.ExpectExec("INSERT INTO trip_items").
		WithArgs("A1", "K9Q2", nil, nil, nil, "", "", "", "", "", "", int64(3), 100.0, "EUR", nil, "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	item, err := svc.CreateItem(TripItemInput{
		ItemID:           "A1",
		BookingCode:      "K9Q2",
		BedConfiguration: "3",
		GrossAmount:      "100",
		GrossCurrency:    "EUR",
	})
	if err != nil {
		t.Fatalf("CreateItem error: %v", err)
	}
	if item.BedConfiguration == nil || *item.BedConfiguration != 3 {
		t.Fatalf("bed configuration not parsed: %+v", item.BedConfiguration)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateItemLenientDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// absent identifier and booking default to empty strings, not a reject
	mock.ExpectExec("INSERT INTO trip_items").
		WithArgs("", "", nil, nil, nil, "", "", "", "", "", "", nil, nil, "", nil, "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	svc := ItineraryService{Items: repositories.TripItemRepository{DB: db}}
	if _, err := svc.CreateItem(TripItemInput{GrossAmount: "not-a-number"}); err != nil {
		t.Fatalf("lenient create failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"item_id", "sequence",
		"start_date", "end_date", "start_time", "end_time",
		"location", "supplier_ref", "product_code", "description",
		"bed_configuration",
		"gross_amount", "gross_currency", "net_amount", "net_currency",
	})
}
