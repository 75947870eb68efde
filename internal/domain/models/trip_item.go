package models

// TripItem is one itinerary line belonging to a booking. Extras are tied
// to their main item purely by identifier shape: an item id ending in
// "_" plus one lowercase letter is an extra of the id with that suffix
// stripped. The store has no foreign key for this relationship.
type TripItem struct {
	ItemID      string `json:"item_id"`
	BookingCode string `json:"booking"`
	Sequence    string `json:"sequence"`

	// ParentID is derived from ItemID once after fetch; empty for main items.
	ParentID string `json:"parent_id,omitempty"`

	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Location    string `json:"location,omitempty"`
	SupplierRef string `json:"supplier_ref,omitempty"`
	ProductCode string `json:"product_code,omitempty"`
	Description string `json:"description,omitempty"`

	BedConfiguration *int64 `json:"bed_configuration,omitempty"`

	GrossAmount   *float64 `json:"gross_amount,omitempty"`
	GrossCurrency string   `json:"gross_currency,omitempty"`
	NetAmount     *float64 `json:"net_amount,omitempty"`
	NetCurrency   string   `json:"net_currency,omitempty"`
}

// IsExtraID reports whether id names an extra: a trailing underscore
// followed by exactly one lowercase ASCII letter. Anything else
// ("_ab", trailing digits, no underscore) is a main item.
func IsExtraID(id string) bool {
	n := len(id)
	if n < 2 {
		return false
	}
	if id[n-2] != '_' {
		return false
	}
	c := id[n-1]
	return c >= 'a' && c <= 'z'
}

// MainIDOf strips the extra suffix. Only meaningful when IsExtraID is true.
func MainIDOf(id string) string {
	return id[:len(id)-2]
}

// Classify caches the derived parent id on the item. Main items keep
// ParentID empty (they are self-parented).
func (t *TripItem) Classify() {
	if IsExtraID(t.ItemID) {
		t.ParentID = MainIDOf(t.ItemID)
	} else {
		t.ParentID = ""
	}
}

// Gross returns the gross amount with absent values counted as zero.
func (t TripItem) Gross() float64 {
	if t.GrossAmount == nil {
		return 0
	}
	return *t.GrossAmount
}

// GroupTotals carries the per-group money sums. Amounts are summed as
// plain numbers; currency mismatch across items is not validated.
type GroupTotals struct {
	Main     float64 `json:"main"`
	Extras   float64 `json:"extras"`
	Combined float64 `json:"combined"`
}

// ItemGroup is one main item plus its extras in read order.
type ItemGroup struct {
	Main   TripItem    `json:"main"`
	Extras []TripItem  `json:"extras"`
	Totals GroupTotals `json:"totals"`
}

// ItinerarySummary aggregates a whole booking.
type ItinerarySummary struct {
	TotalMainItems int     `json:"total_main_items"`
	TotalExtras    int     `json:"total_extras"`
	GrandTotal     float64 `json:"grand_total"`
}
