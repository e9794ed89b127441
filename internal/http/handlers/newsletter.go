package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charter/internal/domain/models"
	"charter/internal/services"
)

func (h Handler) Subscribe(c *gin.Context) {
	var req models.NewsletterRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	state, err := h.newsletter(c).Subscribe(c.Request.Context(), req.Email.String())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if state == services.SubscriptionVerified {
		c.JSON(http.StatusOK, gin.H{"message": "Email is already subscribed", "status": http.StatusOK})
		return
	}
	respondCreated(c, "Please check your email to confirm your subscription", nil)
}

func (h Handler) VerifySubscription(c *gin.Context) {
	n, err := h.newsletter(c).Verify(c.Request.Context(), c.Param("token"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Subscription verified successfully", n)
}

// Unsubscribe accepts {token} or {email} in the body; the mailed link sends ?token= instead.
func (h Handler) Unsubscribe(c *gin.Context) {
	var req models.UnsubscribeRequest
	if token := c.Query("token"); token != "" {
		req.Token = models.FlexString(token)
	} else if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.newsletter(c).Unsubscribe(c.Request.Context(), req); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully", "status": http.StatusOK})
}
