package public

import (
	"github.com/2063ti/flugede-gadgets-store/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SubscribeRequest is the newsletter signup payload.
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe adds an email to the newsletter. Re-subscribing is a no-op.
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if _, err := h.EngagementService.Subscribe(req.Email); err != nil {
		respondError(c, response.CodeInternal, "subscription failed", err)
		return
	}
	response.Success(c, gin.H{"subscribed": true})
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact stores a contact form message.
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if _, err := h.EngagementService.SubmitContact(req.Name, req.Email, req.Subject, req.Message); err != nil {
		respondError(c, response.CodeInternal, "message submission failed", err)
		return
	}
	response.Success(c, gin.H{"submitted": true})
}
