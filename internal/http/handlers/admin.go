package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"charter/internal/domain"
	"charter/internal/domain/models"
)

func (h Handler) AdminListBookings(c *gin.Context) {
	vehicleID, ok := queryID(c, "vehicle_id")
	if !ok {
		return
	}
	destinationID, ok := queryID(c, "destination_id")
	if !ok {
		return
	}
	f := models.BookingFilter{
		Query:         c.Query("q"),
		Status:        strings.TrimSpace(c.Query("status")),
		VehicleID:     vehicleID,
		DestinationID: destinationID,
		PickupDate:    strings.TrimSpace(c.Query("pickup_date")),
		IsReturnTrip:  queryBool(c, "is_return_trip"),
	}
	rows, page, err := h.admin(c).SearchBookings(c.Request.Context(), f, pageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "pagination": page, "status": http.StatusOK})
}

func (h Handler) AdminGetBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	b, err := h.admin(c).GetBooking(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Booking fetched successfully", b)
}

func (h Handler) AdminSetBookingStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.StatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	status, err := h.admin(c).SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "booking_status": status, "status": http.StatusOK})
}

func (h Handler) AdminAdvanceBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	status, err := h.admin(c).AdvanceStatus(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "booking_status": status, "status": http.StatusOK})
}

// AdminBookingSlip returns the printable booking slip (inline PDF).
func (h Handler) AdminBookingSlip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := h.docs(c).GenerateBookingSlip(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h Handler) AdminListCustomers(c *gin.Context) {
	f := models.CustomerFilter{Query: c.Query("q"), Country: c.Query("country")}
	rows, page, err := h.admin(c).SearchCustomers(c.Request.Context(), f, pageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "pagination": page, "status": http.StatusOK})
}

func (h Handler) AdminListMessages(c *gin.Context) {
	rows, err := h.admin(c).ListMessages(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Messages fetched successfully", rows)
}

func (h Handler) AdminCreateDestination(c *gin.Context) {
	var in models.DestinationInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := h.admin(c).CreateDestination(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Destination created successfully", d)
}

func (h Handler) AdminUpdateDestination(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in models.DestinationInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := h.admin(c).UpdateDestination(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Destination updated successfully", d)
}

func (h Handler) AdminCreateVehicle(c *gin.Context) {
	var in models.VehicleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	v, err := h.admin(c).CreateVehicle(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Vehicle created successfully", v.View())
}

func (h Handler) AdminUpdateVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in models.VehicleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	v, err := h.admin(c).UpdateVehicle(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Vehicle updated successfully", v.View())
}

func (h Handler) AdminUpsertPrice(c *gin.Context) {
	var in models.PriceInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := h.admin(c).UpsertPrice(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Price saved successfully", p)
}

func (h Handler) AdminDeletePrice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.admin(c).DeletePrice(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Price deleted successfully", "status": http.StatusOK})
}

func (h Handler) AdminCreateTestimonial(c *gin.Context) {
	var in models.Testimonial
	if !BindJSONOrError(c, &in) {
		return
	}
	id, err := h.admin(c).CreateTestimonial(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, "Testimonial created successfully", gin.H{"id": id})
}

// AdminSyncNewsletter pushes verified subscribers to the Brevo contact list.
func (h Handler) AdminSyncNewsletter(c *gin.Context) {
	synced, total, err := h.newsletter(c).SyncVerified(c.Request.Context())
	if err != nil && synced == 0 && total > 0 {
		RespondDomainError(c, domain.UpstreamError{Service: "brevo", Msg: "Newsletter sync failed", Err: err})
		return
	}
	if err != nil && total == 0 {
		RespondDomainError(c, domain.InternalError{Msg: "Error loading subscribers", Err: err})
		return
	}
	respondData(c, http.StatusOK, "Newsletter synced", gin.H{"synced": synced, "total": total})
}
