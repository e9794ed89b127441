package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charter/internal/domain"
	"charter/internal/domain/models"
	"charter/internal/http/middleware"
)

func (h Handler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.bookings(c).Create(c.Request.Context(), req)
	if err != nil {
		if domain.IsUpstream(err) && res.BookingID > 0 {
			// booking is committed; only the admin notification failed
			c.JSON(http.StatusBadGateway, gin.H{
				"error":      err.Error(),
				"message":    err.Error(),
				"code":       "upstream_error",
				"status":     http.StatusBadGateway,
				"booking_id": res.BookingID,
				"request_id": middleware.GetRequestID(c),
			})
			return
		}
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, "Booking created successfully", gin.H{"booking_id": res.BookingID})
}

func (h Handler) CreateContact(c *gin.Context) {
	var req models.ContactRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if _, err := h.contact(c).Submit(c.Request.Context(), req); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, "Contact message created successfully", nil)
}
