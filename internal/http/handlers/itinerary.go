package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"itinerary/internal/http/middleware"
	"itinerary/internal/services"

	"github.com/gin-gonic/gin"
)

func itinerarySvc(c *gin.Context) services.ItineraryService {
	return services.ItineraryService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/trip-details?booking=<code>
func GetTripDetails(c *gin.Context) {
	respondTripDetails(c, c.Query("booking"))
}

// GET /api/bookings/:code/itinerary
func GetBookingItinerary(c *gin.Context) {
	respondTripDetails(c, c.Param("code"))
}

func respondTripDetails(c *gin.Context, bookingCode string) {
	groups, summary, err := itinerarySvc(c).BookingItinerary(bookingCode)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"grouped_items": groups,
		"summary":       summary,
	})
}

// tripItemPayload is the raw create payload. Every field is optional and
// tolerated in loose typing; absent item_id/booking default to empty
// strings rather than rejecting the request.
type tripItemPayload struct {
	ItemID     Stringish `json:"item_id"`
	Booking    Stringish `json:"booking"`
	BookingAlt Stringish `json:"booking_code"`
	Sequence   Stringish `json:"sequence"`

	StartDate   Stringish `json:"start_date"`
	EndDate     Stringish `json:"end_date"`
	StartTime   Stringish `json:"start_time"`
	EndTime     Stringish `json:"end_time"`
	Location    Stringish `json:"location"`
	SupplierRef Stringish `json:"supplier_ref"`
	ProductCode Stringish `json:"product_code"`
	Description Stringish `json:"description"`

	BedConfiguration Stringish `json:"bed_configuration"`

	GrossAmount   Stringish `json:"gross_amount"`
	GrossCurrency Stringish `json:"gross_currency"`
	NetAmount     Stringish `json:"net_amount"`
	NetCurrency   Stringish `json:"net_currency"`
}

// POST /api/save-trip-item
//
// Dispatches on the form-encoded "action" field: update_sequence and
// delete_item are form posts; a body without an action is treated as a
// raw new-item payload.
func SaveTripItem(c *gin.Context) {
	switch strings.TrimSpace(c.PostForm("action")) {
	case "update_sequence":
		updateSequence(c)
	case "delete_item":
		deleteItem(c)
	case "":
		createTripItem(c)
	default:
		respondError(c, http.StatusBadRequest, "unknown action")
	}
}

func updateSequence(c *gin.Context) {
	if err := itinerarySvc(c).SetSequence(c.PostForm("item_id"), c.PostForm("sequence")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sequence updated successfully",
	})
}

func deleteItem(c *gin.Context) {
	count, err := itinerarySvc(c).DeleteMainItem(c.PostForm("booking"), c.PostForm("item_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Deleted %d items successfully", count),
	})
}

func createTripItem(c *gin.Context) {
	var p tripItemPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	in := services.TripItemInput{
		ItemID:      p.ItemID.String(),
		BookingCode: firstNonEmpty(p.Booking, p.BookingAlt),
		Sequence:    p.Sequence.String(),

		StartDate:   p.StartDate.String(),
		EndDate:     p.EndDate.String(),
		StartTime:   p.StartTime.String(),
		EndTime:     p.EndTime.String(),
		Location:    p.Location.String(),
		SupplierRef: p.SupplierRef.String(),
		ProductCode: p.ProductCode.String(),
		Description: p.Description.String(),

		BedConfiguration: p.BedConfiguration.String(),

		GrossAmount:   p.GrossAmount.String(),
		GrossCurrency: p.GrossCurrency.String(),
		NetAmount:     p.NetAmount.String(),
		NetCurrency:   p.NetCurrency.String(),
	}

	if _, err := itinerarySvc(c).CreateItem(in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/bookings/:code/itinerary-pdf
func GetItineraryPDF(c *gin.Context) {
	docs := services.ItineraryDocsService{RequestID: middleware.GetRequestID(c)}
	data, filename, err := docs.GenerateItineraryPDF(c.Param("code"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
