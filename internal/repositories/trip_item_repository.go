package repositories

import (
	"database/sql"
	"strings"

	intconfig "itinerary/internal/config"
	intdb "itinerary/internal/db"
	"itinerary/internal/domain/models"
)

type TripItemRepository struct {
	DB *sql.DB
}

func (r TripItemRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// FetchItems returns all itinerary lines for a booking ordered by
// (sequence, item_id). An unknown booking yields an empty slice, not an
// error.
func (r TripItemRepository) FetchItems(bookingCode string) ([]models.TripItem, error) {
	rows, err := r.db().Query(`
		SELECT item_id, COALESCE(sequence, 0),
		       COALESCE(start_date, ''), COALESCE(end_date, ''),
		       COALESCE(start_time, ''), COALESCE(end_time, ''),
		       COALESCE(location, ''), COALESCE(supplier_ref, ''),
		       COALESCE(product_code, ''), COALESCE(description, ''),
		       bed_configuration,
		       gross_amount, COALESCE(gross_currency, ''),
		       net_amount, COALESCE(net_currency, '')
		FROM trip_items
		WHERE booking_code = ?
		ORDER BY sequence ASC, item_id ASC
	`, bookingCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripItem{}
	for rows.Next() {
		var (
			t      models.TripItem
			bedRef sql.NullInt64
			grossN sql.NullFloat64
			netN   sql.NullFloat64
		)
		if err := rows.Scan(
			&t.ItemID, &t.Sequence,
			&t.StartDate, &t.EndDate,
			&t.StartTime, &t.EndTime,
			&t.Location, &t.SupplierRef,
			&t.ProductCode, &t.Description,
			&bedRef,
			&grossN, &t.GrossCurrency,
			&netN, &t.NetCurrency,
		); err != nil {
			return nil, err
		}
		t.BookingCode = bookingCode
		t.BedConfiguration = intdb.IntPtr(bedRef)
		t.GrossAmount = intdb.FloatPtr(grossN)
		t.NetAmount = intdb.FloatPtr(netN)
		out = append(out, t)
	}
	return out, rows.Err()
}

// Insert stores a new itinerary line. Duplicate identifiers are not
// deduplicated here; if the store rejects one, the failure is returned
// as-is.
func (r TripItemRepository) Insert(item models.TripItem) error {
	_, err := r.db().Exec(`
		INSERT INTO trip_items (
		  item_id, booking_code, sequence,
		  start_date, end_date, start_time, end_time,
		  location, supplier_ref, product_code, description,
		  bed_configuration,
		  gross_amount, gross_currency, net_amount, net_currency
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ItemID, item.BookingCode, intdb.NullIfEmpty(item.Sequence),
		intdb.NullIfEmpty(item.StartDate), intdb.NullIfEmpty(item.EndDate),
		item.StartTime, item.EndTime,
		item.Location, item.SupplierRef, item.ProductCode, item.Description,
		item.BedConfiguration,
		item.GrossAmount, item.GrossCurrency, item.NetAmount, item.NetCurrency,
	)
	return err
}

// UpdateSequence sets the display-order value for one item. The value is
// stored verbatim; no range checks. A concurrent delete may make this
// touch zero rows, which is not an error.
func (r TripItemRepository) UpdateSequence(itemID, sequence string) error {
	_, err := r.db().Exec(`UPDATE trip_items SET sequence = ? WHERE item_id = ?`, sequence, itemID)
	return err
}

// CascadeDeleteMain removes a main item together with every row of the
// booking whose item_id starts with the main id as a literal prefix.
// That sweep is deliberately broader than the extra-suffix pattern:
// deleting "XY12" also removes an unrelated "XY12Z". Returns the number
// of rows removed; 0 when nothing matched.
func (r TripItemRepository) CascadeDeleteMain(bookingCode, mainItemID string) (int64, error) {
	res, err := r.db().Exec(`
		DELETE FROM trip_items
		WHERE booking_code = ? AND (item_id = ? OR item_id LIKE ?)
	`, bookingCode, mainItemID, escapeLikePrefix(mainItemID)+"%")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// escapeLikePrefix makes the LIKE pattern match the id literally, so
// "A_B" does not also sweep "AXB".
func escapeLikePrefix(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
