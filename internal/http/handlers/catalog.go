package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charter/internal/domain"
)

func (h Handler) ListDestinations(c *gin.Context) {
	out, err := h.catalog().ListDestinations(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Destinations fetched successfully", out)
}

func (h Handler) GetDestination(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	d, err := h.catalog().GetDestination(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Destination fetched successfully", d)
}

// ListVehicles returns every vehicle, or only those priced for ?destination_id.
func (h Handler) ListVehicles(c *gin.Context) {
	destinationID, ok := queryID(c, "destination_id")
	if !ok {
		return
	}
	out, err := h.catalog().ListVehicles(c.Request.Context(), destinationID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	message := "Vehicles fetched successfully"
	if destinationID == 0 {
		message = "All vehicles fetched successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        out.Vehicles,
		"destination": out.Destination,
		"message":     message,
		"status":      http.StatusOK,
	})
}

func (h Handler) TripByDestination(c *gin.Context) {
	destinationID, ok := queryID(c, "destination_id")
	if !ok {
		return
	}
	if destinationID == 0 {
		RespondDomainError(c, domain.Required("destination_id"))
		return
	}
	trip, err := h.catalog().TripForDestination(c.Request.Context(), destinationID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Trip Details fetched successfully", trip)
}

func (h Handler) TripByBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "booking_id")
	if !ok {
		return
	}
	trip, err := h.catalog().TripForBooking(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Trip Details fetched successfully", trip)
}

func (h Handler) ListPrices(c *gin.Context) {
	vehicleID, ok := queryID(c, "vehicle_id")
	if !ok {
		return
	}
	destinationID, ok := queryID(c, "destination_id")
	if !ok {
		return
	}
	out, err := h.catalog().ListPrices(c.Request.Context(), vehicleID, destinationID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Prices fetched successfully", out)
}

func (h Handler) GetPrice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.catalog().GetPrice(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Price fetched successfully", p)
}

func (h Handler) ListTestimonials(c *gin.Context) {
	out, err := h.catalog().ListTestimonials(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Testimonials fetched successfully", out)
}
